package locker

import (
	"time"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

// Locker is the store-now, claim-later mailbox for parties that are not the
// caller of the operation delivering to them.
type Locker interface {
	// Store holds asset for recipient. tryDirect asks the locker to hand the
	// asset over right away when the recipient can accept it.
	Store(c ctx.Ctx, recipient domain.Address, asset domain.Asset, tryDirect bool) error
	// Claim hands over and forgets everything held for recipient. A second
	// claim returns nothing.
	Claim(c ctx.Ctx, recipient domain.Address) ([]domain.Asset, error)
	Pending(c ctx.Ctx, recipient domain.Address) ([]domain.Asset, error)
}

type UseCase interface {
	// ClaimDeliveries claims for recipient; the caller must control recipient.
	ClaimDeliveries(c ctx.Ctx, recipient domain.Address) ([]Parcel, error)
	PendingDeliveries(c ctx.Ctx, recipient domain.Address) ([]Parcel, error)
}

// Service is a Locker that also serves the claim endpoints.
type Service interface {
	Locker
	UseCase
}

// Parcel is the stored form of an asset.
type Parcel struct {
	Kind      domain.AssetKind `json:"kind"`
	Funds     *domain.Funds    `json:"funds,omitempty"`
	Item      *domain.Item     `json:"item,omitempty"`
	TryDirect bool             `json:"tryDirect"`
	StoredAt  time.Time        `json:"storedAt"`
}

func NewParcel(asset domain.Asset, tryDirect bool, at time.Time) Parcel {
	p := Parcel{Kind: asset.Kind(), TryDirect: tryDirect, StoredAt: at}
	switch a := asset.(type) {
	case domain.Funds:
		p.Funds = &a
	case domain.Item:
		p.Item = &a
	}
	return p
}

func (p Parcel) Asset() domain.Asset {
	if p.Funds != nil {
		return *p.Funds
	}
	if p.Item != nil {
		return *p.Item
	}
	return nil
}

func Assets(parcels []Parcel) []domain.Asset {
	assets := make([]domain.Asset, 0, len(parcels))
	for _, p := range parcels {
		if a := p.Asset(); a != nil {
			assets = append(assets, a)
		}
	}
	return assets
}

// Repository is the keyed parcel store behind a Locker.
type Repository interface {
	Append(c ctx.Ctx, recipient domain.Address, parcel Parcel) error
	List(c ctx.Ctx, recipient domain.Address) ([]Parcel, error)
	// Take returns and removes everything held for recipient atomically.
	Take(c ctx.Ctx, recipient domain.Address) ([]Parcel, error)
}
