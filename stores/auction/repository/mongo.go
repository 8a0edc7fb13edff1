package repository

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/service/query"
)

const stateKey = "engine"

// Indexes are the mongo indexes the repositories rely on.
var Indexes = []query.Index{
	{Table: domain.TableCompletedAuction, Keys: bson.D{{Key: "id", Value: 1}}, Unique: true},
	{Table: domain.TableAuctionEvents, Keys: bson.D{{Key: "seq", Value: 1}}, Unique: true},
}

// stateDoc holds the state as a json snapshot; the counters are copied out
// for inspection.
type stateDoc struct {
	Key           string    `bson:"key"`
	NextItemId    uint64    `bson:"nextItemId"`
	NextAuctionId uint64    `bson:"nextAuctionId"`
	EventSeq      uint64    `bson:"eventSeq"`
	UpdatedAt     time.Time `bson:"updatedAt"`
	Snapshot      string    `bson:"snapshot"`
}

type mongoState struct {
	q query.Mongo
}

func NewMongoState(q query.Mongo) auction.StateRepo {
	return &mongoState{q: q}
}

func (r *mongoState) Load(c ctx.Ctx) (*auction.State, error) {
	doc := stateDoc{}
	if err := r.q.FindOne(c, domain.TableAuctionState, bson.M{"key": stateKey}, &doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	state := &auction.State{}
	if err := json.Unmarshal([]byte(doc.Snapshot), state); err != nil {
		c.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return state, nil
}

func (r *mongoState) Save(c ctx.Ctx, state *auction.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}
	doc := stateDoc{
		Key:           stateKey,
		NextItemId:    state.NextItemId,
		NextAuctionId: state.NextAuctionId,
		EventSeq:      state.EventSeq,
		UpdatedAt:     state.UpdatedAt,
		Snapshot:      string(raw),
	}
	if err := r.q.Upsert(c, domain.TableAuctionState, bson.M{"key": stateKey}, doc); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"eventSeq": state.EventSeq,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

type bidDoc struct {
	Seq       uint64    `bson:"seq"`
	Amount    string    `bson:"amount"`
	Bidder    string    `bson:"bidder"`
	Timestamp time.Time `bson:"timestamp"`
	TxHash    string    `bson:"txHash"`
}

type auctionDoc struct {
	Id            uint64    `bson:"id"`
	StartTime     time.Time `bson:"startTime"`
	EndTime       time.Time `bson:"endTime"`
	ItemId        string    `bson:"itemId"`
	HighestBid    *string   `bson:"highestBid,omitempty"`
	HighestBidder *string   `bson:"highestBidder,omitempty"`
	BidCount      uint64    `bson:"bidCount"`
	Bids          []bidDoc  `bson:"bids"`
}

func toAuctionDoc(a *auction.Auction) auctionDoc {
	doc := auctionDoc{
		Id:        a.Id,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		ItemId:    a.ItemId.String(),
		BidCount:  a.BidCount,
		Bids:      make([]bidDoc, 0, len(a.BidHistory)),
	}
	if a.HighestBid != nil {
		s := a.HighestBid.String()
		doc.HighestBid = &s
	}
	if a.HighestBidder != nil {
		s := string(*a.HighestBidder)
		doc.HighestBidder = &s
	}
	for _, b := range a.BidHistory {
		doc.Bids = append(doc.Bids, bidDoc{
			Seq:       b.Seq,
			Amount:    b.Amount.String(),
			Bidder:    string(b.Bidder),
			Timestamp: b.Timestamp,
			TxHash:    string(b.TxHash),
		})
	}
	return doc
}

func (doc auctionDoc) toAuction() (*auction.Auction, error) {
	a := &auction.Auction{
		Id:         doc.Id,
		StartTime:  doc.StartTime.UTC(),
		EndTime:    doc.EndTime.UTC(),
		ItemId:     domain.ItemId(doc.ItemId),
		BidCount:   doc.BidCount,
		BidHistory: make(auction.BidHistory, 0, len(doc.Bids)),
	}
	if doc.HighestBid != nil {
		d, err := decimal.NewFromString(*doc.HighestBid)
		if err != nil {
			return nil, err
		}
		a.HighestBid = &d
	}
	if doc.HighestBidder != nil {
		bidder := domain.Address(*doc.HighestBidder)
		a.HighestBidder = &bidder
	}
	for _, b := range doc.Bids {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			return nil, err
		}
		a.BidHistory = append(a.BidHistory, auction.Bid{
			Seq:       b.Seq,
			Amount:    amount,
			Bidder:    domain.Address(b.Bidder),
			Timestamp: b.Timestamp.UTC(),
			TxHash:    domain.TxHash(b.TxHash),
		})
	}
	return a, nil
}

type mongoArchive struct {
	q query.Mongo
}

func NewMongoArchive(q query.Mongo) auction.ArchiveRepo {
	return &mongoArchive{q: q}
}

func (r *mongoArchive) Insert(c ctx.Ctx, a *auction.Auction) error {
	if err := r.q.Insert(c, domain.TableCompletedAuction, toAuctionDoc(a)); err == query.ErrDuplicateKey {
		return domain.ErrAuctionArchived
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.Id,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *mongoArchive) FindOne(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	doc := auctionDoc{}
	if err := r.q.FindOne(c, domain.TableCompletedAuction, bson.M{"id": id}, &doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	a, err := doc.toAuction()
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": id,
		}).Error("doc.toAuction failed")
		return nil, err
	}
	return a, nil
}

func (r *mongoArchive) Count(c ctx.Ctx) (int, error) {
	n, err := r.q.Count(c, domain.TableCompletedAuction, bson.M{})
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
