package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctionState     Table = "auction_state"
	TableCompletedAuction Table = "completed_auctions"
	TableAuctionEvents    Table = "auction_events"
)
