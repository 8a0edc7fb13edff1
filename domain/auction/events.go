package auction

import (
	"time"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

type EventType string

const (
	EventItemMinted        EventType = "ItemMinted"
	EventAuctionStarted    EventType = "AuctionStarted"
	EventAuctionSettled    EventType = "AuctionSettled"
	EventBidRecorded       EventType = "BidRecorded"
	EventProceedsConverted EventType = "ProceedsConverted"
)

type Event interface {
	Type() EventType
}

type ItemMinted struct {
	Item domain.Item `json:"item"`
}

func (ItemMinted) Type() EventType { return EventItemMinted }

type AuctionStarted struct {
	AuctionId uint64        `json:"auctionId"`
	ItemId    domain.ItemId `json:"itemId"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
}

func (AuctionStarted) Type() EventType { return EventAuctionStarted }

// AuctionSettled carries the auction as it was before settlement touched it.
type AuctionSettled struct {
	Auction *Auction       `json:"auction"`
	Settler domain.Address `json:"settler"`
}

func (AuctionSettled) Type() EventType { return EventAuctionSettled }

// BidRecorded carries the auction as it was before the bid was validated.
type BidRecorded struct {
	Bid     Bid      `json:"bid"`
	Auction *Auction `json:"auction"`
}

func (BidRecorded) Type() EventType { return EventBidRecorded }

type ProceedsConverted struct {
	AuctionId uint64       `json:"auctionId"`
	Sent      domain.Funds `json:"sent"`
	Received  domain.Funds `json:"received"`
}

func (ProceedsConverted) Type() EventType { return EventProceedsConverted }

// Envelope is the wire form of an event.
type Envelope struct {
	Type      EventType `json:"type"`
	Seq       uint64    `json:"seq"`
	EmittedAt time.Time `json:"emittedAt"`
	Payload   Event     `json:"payload"`
}

// Publisher delivers events outside the engine. Delivery is fire-and-forget:
// the engine logs a failed publish and moves on.
type Publisher interface {
	Publish(c ctx.Ctx, events []Envelope) error
}
