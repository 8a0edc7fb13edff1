package usecase

import (
	"errors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

// CurrentAuction returns a copy of the current auction, or nil when idle.
func (im *impl) CurrentAuction(c ctx.Ctx) (*auction.Auction, error) {
	var a *auction.Auction
	err := im.read(c, func() error {
		a = im.current.Clone()
		return nil
	})
	return a, err
}

func (im *impl) CompletedAuction(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	var a *auction.Auction
	err := im.read(c, func() error {
		if archived, ok := im.archive[id]; ok {
			a = archived.Clone()
		}
		return nil
	})
	if err != nil || a != nil {
		return a, err
	}
	if im.archiveRepo == nil {
		return nil, domain.ErrAuctionNotFound
	}

	a, err = im.archiveRepo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAuctionNotFound) {
		return nil, domain.ErrAuctionNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("archiveRepo.FindOne failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) ProfitAmount(c ctx.Ctx) (domain.Funds, error) {
	var f domain.Funds
	err := im.read(c, func() error {
		f = domain.NewFunds(im.proceeds.Resource(), im.proceeds.Amount())
		return nil
	})
	return f, err
}

func (im *impl) TotalProceedsBought(c ctx.Ctx) (domain.Funds, error) {
	var f domain.Funds
	err := im.read(c, func() error {
		f = domain.NewFunds(im.params.ProceedsResource, im.totalBought)
		return nil
	})
	return f, err
}

func (im *impl) PendingItems(c ctx.Ctx) ([]domain.ItemId, error) {
	var ids []domain.ItemId
	err := im.read(c, func() error {
		ids = make([]domain.ItemId, len(im.pending))
		copy(ids, im.pending)
		return nil
	})
	return ids, err
}

func (im *impl) Params(c ctx.Ctx) (auction.Params, error) {
	var p auction.Params
	err := im.read(c, func() error {
		p = im.params
		return nil
	})
	return p, err
}
