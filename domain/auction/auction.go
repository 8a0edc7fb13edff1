package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

// Bid is one bid attempt recorded into an auction's history.
type Bid struct {
	Seq       uint64          `json:"seq"`
	Amount    decimal.Decimal `json:"amount"`
	Bidder    domain.Address  `json:"bidder"`
	Timestamp time.Time       `json:"timestamp"`
	TxHash    domain.TxHash   `json:"txHash"`
}

// BidHistory is ordered by sequence number, starting at 1.
type BidHistory []Bid

func (h BidHistory) Get(seq uint64) (Bid, bool) {
	if seq == 0 || seq > uint64(len(h)) {
		return Bid{}, false
	}
	return h[seq-1], true
}

func (h BidHistory) Last() (Bid, bool) {
	return h.Get(uint64(len(h)))
}

// Auction is the unit of sale, either current or archived.
type Auction struct {
	Id            uint64           `json:"id"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       time.Time        `json:"endTime"`
	ItemId        domain.ItemId    `json:"itemId"`
	HighestBid    *decimal.Decimal `json:"highestBid"`
	HighestBidder *domain.Address  `json:"highestBidder"`
	BidCount      uint64           `json:"bidCount"`
	BidHistory    BidHistory       `json:"bidHistory"`
}

func New(id uint64, itemId domain.ItemId, start time.Time, duration time.Duration) *Auction {
	return &Auction{
		Id:         id,
		StartTime:  start,
		EndTime:    start.Add(duration),
		ItemId:     itemId,
		BidHistory: BidHistory{},
	}
}

// Highest returns the highest bid, or zero before the first valid bid.
func (a *Auction) Highest() decimal.Decimal {
	if a.HighestBid == nil {
		return decimal.Zero
	}
	return *a.HighestBid
}

func (a *Auction) HasBids() bool {
	return a.HighestBidder != nil
}

func (a *Auction) HasEnded(now time.Time) bool {
	return !now.Before(a.EndTime)
}

// Record appends a bid under the next sequence number.
func (a *Auction) Record(amount decimal.Decimal, bidder domain.Address, at time.Time, tx domain.TxHash) Bid {
	bid := Bid{
		Seq:       a.BidCount + 1,
		Amount:    amount,
		Bidder:    bidder,
		Timestamp: at,
		TxHash:    tx,
	}
	a.BidHistory = append(a.BidHistory, bid)
	a.BidCount++
	return bid
}

// Extend moves the end time to t if t is later.
func (a *Auction) Extend(t time.Time) {
	if t.After(a.EndTime) {
		a.EndTime = t
	}
}

func (a *Auction) Clone() *Auction {
	if a == nil {
		return nil
	}
	c := *a
	if a.HighestBid != nil {
		bid := *a.HighestBid
		c.HighestBid = &bid
	}
	if a.HighestBidder != nil {
		bidder := *a.HighestBidder
		c.HighestBidder = &bidder
	}
	c.BidHistory = make(BidHistory, len(a.BidHistory))
	copy(c.BidHistory, a.BidHistory)
	return &c
}

// Outcome is what an operation hands back to its caller directly.
type Outcome struct {
	Reward *domain.Funds `json:"reward,omitempty"`
	Item   *domain.Item  `json:"item,omitempty"`
}

type UseCase interface {
	StartNewAuction(c ctx.Ctx) error
	Bid(c ctx.Ctx, funds domain.Funds, bidder domain.Address) (*Outcome, error)
	Settle(c ctx.Ctx, settler domain.Address) (*Outcome, error)

	MintItems(c ctx.Ctx, data []domain.ItemData) ([]domain.ItemId, error)
	DeleteItem(c ctx.Ctx, id domain.ItemId) error

	WithdrawProfits(c ctx.Ctx) (domain.Funds, error)
	UpdatePoolAddress(c ctx.Ctx, pool domain.Address) error
	UpdateAuctionDuration(c ctx.Ctx, minutes int64) error
	UpdateAuctionBuffer(c ctx.Ctx, minutes int64) error
	UpdateMinimumBidIncrease(c ctx.Ctx, increase decimal.Decimal) error
	// FlipStatus toggles whether new auctions may start and returns the new value.
	FlipStatus(c ctx.Ctx) (bool, error)
	DepositSideAsset(c ctx.Ctx, item domain.Item) error
	WithdrawSideAsset(c ctx.Ctx, id domain.ItemId) (domain.Item, error)

	CurrentAuction(c ctx.Ctx) (*Auction, error)
	CompletedAuction(c ctx.Ctx, id uint64) (*Auction, error)
	ProfitAmount(c ctx.Ctx) (domain.Funds, error)
	TotalProceedsBought(c ctx.Ctx) (domain.Funds, error)
	PendingItems(c ctx.Ctx) ([]domain.ItemId, error)
	Params(c ctx.Ctx) (Params, error)
}
