package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

// State is the committed engine state as persisted after every operation.
type State struct {
	Current         *Auction        `json:"current"`
	Params          Params          `json:"params"`
	NextItemId      uint64          `json:"nextItemId"`
	NextAuctionId   uint64          `json:"nextAuctionId"`
	PendingItems    []domain.ItemId `json:"pendingItems"`
	Items           []domain.Item   `json:"items"`
	HighestBidVault decimal.Decimal `json:"highestBidVault"`
	Proceeds        decimal.Decimal `json:"proceeds"`
	TotalBought     decimal.Decimal `json:"totalBought"`
	SideAssets      []domain.Item   `json:"sideAssets"`
	EventSeq        uint64          `json:"eventSeq"`
	// Unarchived are settled auctions not yet stored in the ArchiveRepo.
	Unarchived []*Auction `json:"unarchived,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type StateRepo interface {
	// Load returns domain.ErrNotFound when nothing was saved yet.
	Load(c ctx.Ctx) (*State, error)
	Save(c ctx.Ctx, state *State) error
}

// ArchiveRepo stores completed auctions. Entries are never overwritten.
type ArchiveRepo interface {
	// Insert fails with domain.ErrAuctionArchived when id is already stored.
	Insert(c ctx.Ctx, a *Auction) error
	FindOne(c ctx.Ctx, id uint64) (*Auction, error)
	Count(c ctx.Ctx) (int, error)
}
