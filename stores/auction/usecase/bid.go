package usecase

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

func (im *impl) Bid(c ctx.Ctx, funds domain.Funds, bidder domain.Address) (*auction.Outcome, error) {
	var out *auction.Outcome
	err := im.run(c, "bid", func(tx *txn) error {
		var err error
		out, err = im.bid(tx, funds, bidder)
		return err
	})
	if err != nil {
		im.metrics.BumpSum("bid.rejected", 1)
		return nil, err
	}
	im.metrics.BumpSum("bid.accepted", 1)
	return out, nil
}

func (im *impl) bid(tx *txn, funds domain.Funds, bidder domain.Address) (*auction.Outcome, error) {
	if err := im.authorizer.AuthorizeAccount(tx.c, bidder); err != nil {
		return nil, err
	}
	a := im.current
	if a == nil {
		return nil, domain.ErrNoAuctionActive
	}
	now := tx.now
	highest := a.Highest()

	// recorded before validation; a rejected bid is rolled back with the rest
	recorded := a.Record(funds.Amount, bidder, now, tx.hash)
	im.emit(tx, auction.BidRecorded{Bid: recorded, Auction: a.Clone()})

	if funds.Resource != im.params.BidResource {
		return nil, domain.ErrInvalidBidCurrency
	}
	if funds.Amount.Sub(highest).LessThan(im.params.MinimumBidIncrease) {
		return nil, domain.ErrBidTooLow
	}

	first := !a.HasBids()
	if !first {
		if a.HasEnded(now) {
			return nil, domain.ErrAuctionEnded
		}
		refund := im.highestBid.WithdrawAll()
		tx.deliver(*a.HighestBidder, refund, true)
	}

	if !a.HasEnded(now) {
		if extended := now.Add(im.params.Buffer()); !extended.Before(a.EndTime) {
			a.Extend(extended)
		}
	}

	amount := funds.Amount
	a.HighestBid = &amount
	a.HighestBidder = &bidder
	if err := im.highestBid.Put(funds); err != nil {
		return nil, err
	}

	if first && a.HasEnded(now) {
		return im.settle(tx, bidder)
	}
	return &auction.Outcome{}, nil
}
