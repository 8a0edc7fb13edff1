// Package notifier delivers auction events to logs, redis and nats subscribers
// and a mongo event log.
package notifier

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/domain/keys"
	"github.com/yr12345678/piers-rugyard-auctions/service/query"
	"github.com/yr12345678/piers-rugyard-auctions/service/redis"
)

type logPublisher struct{}

// NewLog writes every event to the request logger.
func NewLog() auction.Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(c ctx.Ctx, events []auction.Envelope) error {
	for _, e := range events {
		c.WithFields(log.Fields{
			"type":    e.Type,
			"seq":     e.Seq,
			"payload": e.Payload,
		}).Info("auction event")
	}
	return nil
}

type redisPublisher struct {
	redis   redis.Service
	channel string
}

// NewRedis publishes each event as json on the app's events channel.
func NewRedis(r redis.Service, app string) auction.Publisher {
	return &redisPublisher{redis: r, channel: keys.EventsChannel(app)}
}

func (p *redisPublisher) Publish(c ctx.Ctx, events []auction.Envelope) error {
	for _, e := range events {
		val, err := json.Marshal(e)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "seq": e.Seq}).Error("json.Marshal failed")
			return err
		}
		if _, err := p.redis.Publish(c, p.channel, val); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"channel": p.channel,
				"seq":     e.Seq,
			}).Error("redis.Publish failed")
			return err
		}
	}
	return nil
}

// eventDoc keeps the payload as json text so decimals keep their precision.
type eventDoc struct {
	Seq       uint64            `bson:"seq"`
	Type      auction.EventType `bson:"type"`
	EmittedAt time.Time         `bson:"emittedAt"`
	Payload   string            `bson:"payload"`
}

type mongoPublisher struct {
	q query.Mongo
}

// NewMongo appends events to the auction_events collection. A sequence
// number that is already stored is skipped.
func NewMongo(q query.Mongo) auction.Publisher {
	return &mongoPublisher{q: q}
}

func (p *mongoPublisher) Publish(c ctx.Ctx, events []auction.Envelope) error {
	for _, e := range events {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "seq": e.Seq}).Error("json.Marshal failed")
			return err
		}
		doc := eventDoc{
			Seq:       e.Seq,
			Type:      e.Type,
			EmittedAt: e.EmittedAt,
			Payload:   string(payload),
		}
		if err := p.q.Insert(c, domain.TableAuctionEvents, doc); err == query.ErrDuplicateKey {
			c.WithField("seq", e.Seq).Warn("event already logged")
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "seq": e.Seq}).Error("q.Insert failed")
			return err
		}
	}
	return nil
}

type multi struct {
	publishers []auction.Publisher
}

// NewMulti publishes to every publisher concurrently. It fails if any of
// them failed, after all of them ran.
func NewMulti(publishers ...auction.Publisher) auction.Publisher {
	return &multi{publishers: publishers}
}

func (m *multi) Publish(c ctx.Ctx, events []auction.Envelope) error {
	if len(m.publishers) == 0 || len(events) == 0 {
		return nil
	}

	b := goroutines.NewBatch(len(m.publishers), goroutines.WithBatchSize(len(m.publishers)))
	defer b.Close()
	for _, p := range m.publishers {
		p := p
		b.Queue(func() (interface{}, error) {
			return nil, p.Publish(c, events)
		})
	}
	b.QueueComplete()

	failed := 0
	var last error
	for ret := range b.Results() {
		if ret.Error() != nil {
			failed++
			last = ret.Error()
		}
	}
	if failed > 0 {
		return xerrors.Errorf("%d of %d publishers failed: %w", failed, len(m.publishers), last)
	}
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []auction.Envelope
}

func (r *Recorder) Publish(c ctx.Ctx, events []auction.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *Recorder) Events() []auction.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]auction.Envelope, len(r.events))
	copy(res, r.events)
	return res
}

// Types lists the recorded event types in order.
func (r *Recorder) Types() []auction.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]auction.EventType, 0, len(r.events))
	for _, e := range r.events {
		res = append(res, e.Type)
	}
	return res
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
