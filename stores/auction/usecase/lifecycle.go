package usecase

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

func (im *impl) StartNewAuction(c ctx.Ctx) error {
	return im.run(c, "start", im.start)
}

// start moves the engine from idle to a fresh auction on the oldest pending item.
func (im *impl) start(tx *txn) error {
	if im.current != nil {
		return domain.ErrAuctionAlreadyActive
	}
	if len(im.pending) == 0 {
		return domain.ErrNoItemsAvailable
	}
	if !im.params.Enabled {
		return domain.ErrAuctionsDisabled
	}

	itemId := im.pending[0]
	im.pending = im.pending[1:]

	a := auction.New(im.nextAuctionId, itemId, tx.now, im.params.Duration())
	im.current = a
	im.nextAuctionId++

	im.emit(tx, auction.AuctionStarted{
		AuctionId: a.Id,
		ItemId:    a.ItemId,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	})
	tx.c.WithFields(log.Fields{
		"auctionId": a.Id,
		"itemId":    a.ItemId,
		"endTime":   a.EndTime,
	}).Info("auction started")
	return nil
}

// canStart reports whether settlement should roll straight into the next auction.
func (im *impl) canStart() bool {
	return len(im.pending) > 0 && im.params.Enabled
}
