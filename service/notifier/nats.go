package notifier

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

// natsConn is the part of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
}

type natsPublisher struct {
	conn   natsConn
	prefix string
}

// NewNats publishes each event as json on "<prefix>.<event type>", e.g.
// rugyard.events.BidRecorded.
func NewNats(conn natsConn, prefix string) auction.Publisher {
	return &natsPublisher{conn: conn, prefix: prefix}
}

// ConnectNats dials url, retrying the initial connect and reconnecting forever.
func ConnectNats(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Log().WithFields(log.Fields{"err": err, "url": url}).Warn("nats disconnected")
		}),
	)
	if err != nil {
		return nil, xerrors.Errorf("nats connect %s: %w", url, err)
	}
	return conn, nil
}

func (p *natsPublisher) subject(t auction.EventType) string {
	return p.prefix + "." + string(t)
}

func (p *natsPublisher) Publish(c ctx.Ctx, events []auction.Envelope) error {
	for _, e := range events {
		val, err := json.Marshal(e)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "seq": e.Seq}).Error("json.Marshal failed")
			return err
		}
		subject := p.subject(e.Type)
		if err := p.conn.Publish(subject, val); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"subject": subject,
				"seq":     e.Seq,
			}).Error("nats.Publish failed")
			return err
		}
	}
	return nil
}
