package usecase

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

// owner runs fn as an operation restricted to the owner role.
func (im *impl) owner(c ctx.Ctx, op string, fn func(tx *txn) error) error {
	return im.run(c, op, func(tx *txn) error {
		if err := im.authorizer.AuthorizeOwner(tx.c); err != nil {
			return err
		}
		return fn(tx)
	})
}

func (im *impl) WithdrawProfits(c ctx.Ctx) (domain.Funds, error) {
	var profits domain.Funds
	err := im.owner(c, "withdrawProfits", func(tx *txn) error {
		profits = im.proceeds.WithdrawAll()
		tx.c.WithField("amount", profits.Amount).Info("profits withdrawn")
		return nil
	})
	return profits, err
}

func (im *impl) UpdatePoolAddress(c ctx.Ctx, pool domain.Address) error {
	return im.owner(c, "updatePool", func(tx *txn) error {
		if pool.IsEmpty() {
			return domain.ErrInvalidAddress
		}
		if _, err := im.pools.Resolve(pool); err != nil {
			return err
		}
		tx.c.WithFields(log.Fields{"from": im.params.Pool, "to": pool}).Info("pool updated")
		im.params.Pool = pool
		return nil
	})
}

func (im *impl) UpdateAuctionDuration(c ctx.Ctx, minutes int64) error {
	return im.owner(c, "updateDuration", func(tx *txn) error {
		if err := auction.ValidateDuration(minutes, im.params.BufferMinutes); err != nil {
			return err
		}
		im.params.DurationMinutes = minutes
		return nil
	})
}

func (im *impl) UpdateAuctionBuffer(c ctx.Ctx, minutes int64) error {
	return im.owner(c, "updateBuffer", func(tx *txn) error {
		if err := auction.ValidateBuffer(im.params.DurationMinutes, minutes); err != nil {
			return err
		}
		im.params.BufferMinutes = minutes
		return nil
	})
}

func (im *impl) UpdateMinimumBidIncrease(c ctx.Ctx, increase decimal.Decimal) error {
	return im.owner(c, "updateMinimumBidIncrease", func(tx *txn) error {
		if err := auction.ValidateMinimumBidIncrease(increase); err != nil {
			return err
		}
		im.params.MinimumBidIncrease = increase
		return nil
	})
}

func (im *impl) FlipStatus(c ctx.Ctx) (bool, error) {
	var enabled bool
	err := im.owner(c, "flipStatus", func(tx *txn) error {
		im.params.Enabled = !im.params.Enabled
		enabled = im.params.Enabled
		tx.c.WithField("enabled", enabled).Info("auction status flipped")
		return nil
	})
	return enabled, err
}

// DepositSideAsset takes custody of an item of the configured side resource.
func (im *impl) DepositSideAsset(c ctx.Ctx, item domain.Item) error {
	return im.owner(c, "depositSideAsset", func(tx *txn) error {
		if im.params.SideResource.IsEmpty() || item.Resource != im.params.SideResource {
			return domain.ErrInvalidSideAsset
		}
		return im.side.Put(item)
	})
}

func (im *impl) WithdrawSideAsset(c ctx.Ctx, id domain.ItemId) (domain.Item, error) {
	var item domain.Item
	err := im.owner(c, "withdrawSideAsset", func(tx *txn) error {
		var err error
		item, err = im.side.WithdrawById(id)
		if errors.Is(err, domain.ErrItemNotInVault) {
			return domain.ErrSideAssetNotFound
		}
		return err
	})
	return item, err
}
