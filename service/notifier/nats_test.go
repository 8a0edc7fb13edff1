package notifier

import (
	"encoding/json"
	"errors"

	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

type fakeNats struct {
	subjects []string
	data     [][]byte
	err      error
}

func (f *fakeNats) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.data = append(f.data, data)
	return nil
}

func (s *notifierSuite) TestNats() {
	conn := &fakeNats{}
	s.Require().NoError(NewNats(conn, "rugyard.events").Publish(mockCtx, s.events))

	s.Equal([]string{"rugyard.events.ItemMinted", "rugyard.events.AuctionStarted"}, conn.subjects)
	got := struct {
		Type auction.EventType `json:"type"`
		Seq  uint64            `json:"seq"`
	}{}
	s.Require().NoError(json.Unmarshal(conn.data[1], &got))
	s.Equal(auction.EventAuctionStarted, got.Type)
	s.Equal(uint64(2), got.Seq)
}

func (s *notifierSuite) TestNatsFailure() {
	conn := &fakeNats{err: errors.New("nats: connection closed")}
	s.Error(NewNats(conn, "rugyard.events").Publish(mockCtx, s.events))
}
