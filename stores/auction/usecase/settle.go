package usecase

import (
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

func (im *impl) Settle(c ctx.Ctx, settler domain.Address) (*auction.Outcome, error) {
	var out *auction.Outcome
	err := im.run(c, "settle", func(tx *txn) error {
		if err := im.authorizer.AuthorizeAccount(tx.c, settler); err != nil {
			return err
		}
		var err error
		out, err = im.settle(tx, settler)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// settle closes the current auction. It is also reached from a late first
// bid, in which case the bidder settles.
func (im *impl) settle(tx *txn, settler domain.Address) (*auction.Outcome, error) {
	a := im.current
	if a == nil {
		return nil, domain.ErrNoAuctionActive
	}

	if !a.HasEnded(tx.now) {
		return nil, domain.ErrAuctionNotEnded
	}
	if !a.HasBids() {
		return nil, domain.ErrNoBidsPlaced
	}
	im.emit(tx, auction.AuctionSettled{Auction: a.Clone(), Settler: settler})
	winner := *a.HighestBidder
	out := &auction.Outcome{}

	item, err := im.items.WithdrawById(a.ItemId)
	if err != nil {
		return nil, xerrors.Errorf("take auctioned item %s: %w", a.ItemId, err)
	}
	if winner.Equals(settler) {
		out.Item = &item
	} else {
		tx.deliver(winner, item, true)
	}

	proceeds := im.highestBid.WithdrawAll()
	reward := domain.NewFunds(proceeds.Resource, im.params.Reward(proceeds.Amount))
	rest := domain.NewFunds(proceeds.Resource, proceeds.Amount.Sub(reward.Amount))
	out.Reward = &reward

	pool, err := im.pools.Resolve(im.params.Pool)
	if err != nil {
		return nil, xerrors.Errorf("resolve pool %s: %w", im.params.Pool, err)
	}
	received, err := pool.Swap(tx.c, rest)
	if err != nil {
		tx.c.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.Id,
			"sent":      rest.Amount,
		}).Error("pool.Swap failed")
		return nil, xerrors.Errorf("swap proceeds of auction %d: %w", a.Id, err)
	}
	if err := im.proceeds.Put(received); err != nil {
		return nil, xerrors.Errorf("deposit swapped proceeds: %w", err)
	}
	im.totalBought = im.totalBought.Add(received.Amount)
	im.emit(tx, auction.ProceedsConverted{
		AuctionId: a.Id,
		Sent:      rest,
		Received:  received,
	})

	closed := a.Clone()
	if _, ok := im.archive[closed.Id]; ok {
		return nil, domain.ErrAuctionArchived
	}
	im.archive[closed.Id] = closed
	tx.archive(closed)
	im.current = nil

	tx.c.WithFields(log.Fields{
		"auctionId": closed.Id,
		"winner":    winner,
		"settler":   settler,
		"bid":       proceeds.Amount,
		"reward":    reward.Amount,
		"received":  received.Amount,
	}).Info("auction settled")
	im.metrics.BumpSum("settle.count", 1)
	sent, _ := rest.Amount.Float64()
	im.metrics.BumpSum("proceeds.sent", sent)

	if im.canStart() {
		if err := im.start(tx); err != nil {
			return nil, err
		}
	}
	return out, nil
}
