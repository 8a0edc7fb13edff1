package repository

import (
	"encoding/json"
	"sync"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

type memState struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryState keeps the last saved state as a json snapshot, so callers
// never share memory with it.
func NewMemoryState() auction.StateRepo {
	return &memState{}
}

func (r *memState) Load(c ctx.Ctx) (*auction.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raw == nil {
		return nil, domain.ErrNotFound
	}
	state := &auction.State{}
	if err := json.Unmarshal(r.raw, state); err != nil {
		c.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return state, nil
}

func (r *memState) Save(c ctx.Ctx, state *auction.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = raw
	return nil
}

type memArchive struct {
	mu       sync.RWMutex
	auctions map[uint64]*auction.Auction
}

func NewMemoryArchive() auction.ArchiveRepo {
	return &memArchive{auctions: map[uint64]*auction.Auction{}}
}

func (r *memArchive) Insert(c ctx.Ctx, a *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[a.Id]; ok {
		return domain.ErrAuctionArchived
	}
	r.auctions[a.Id] = a.Clone()
	return nil
}

func (r *memArchive) FindOne(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.auctions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *memArchive) Count(c ctx.Ctx) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.auctions), nil
}
