package usecase

import (
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/validator"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

func (im *impl) MintItems(c ctx.Ctx, data []domain.ItemData) ([]domain.ItemId, error) {
	var ids []domain.ItemId
	err := im.owner(c, "mint", func(tx *txn) error {
		ids = make([]domain.ItemId, 0, len(data))
		for i, d := range data {
			if err := validator.Struct(d); err != nil {
				return xerrors.Errorf("item %d: %v: %w", i, err, domain.ErrInvalidItemData)
			}
			item := domain.Item{
				Resource: im.params.ItemResource,
				Id:       domain.IntegerItemId(im.nextItemId),
				Data:     d,
			}
			if err := im.items.Put(item); err != nil {
				return err
			}
			im.pending = append(im.pending, item.Id)
			im.emit(tx, auction.ItemMinted{Item: item})
			ids = append(ids, item.Id)
			im.nextItemId++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.WithField("ids", ids).Info("items minted")
	return ids, nil
}

func (im *impl) DeleteItem(c ctx.Ctx, id domain.ItemId) error {
	return im.owner(c, "delete", func(tx *txn) error {
		pos := -1
		for i, pendingId := range im.pending {
			if pendingId == id {
				pos = i
				break
			}
		}
		if pos < 0 {
			return domain.ErrItemNotAvailable
		}
		if im.current != nil && im.current.ItemId == id {
			return domain.ErrItemUnderAuction
		}

		pending := make([]domain.ItemId, 0, len(im.pending)-1)
		pending = append(pending, im.pending[:pos]...)
		im.pending = append(pending, im.pending[pos+1:]...)
		if _, err := im.items.WithdrawById(id); err != nil {
			return err
		}
		tx.c.WithField("itemId", id).Info("item burned")
		return nil
	})
}
