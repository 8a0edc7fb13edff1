package repository

import (
	"sync"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
)

type memRepo struct {
	mu      sync.Mutex
	parcels map[domain.Address][]locker.Parcel
}

// NewMemory returns a process-local parcel store.
func NewMemory() locker.Repository {
	return &memRepo{parcels: map[domain.Address][]locker.Parcel{}}
}

func (r *memRepo) Append(c ctx.Ctx, recipient domain.Address, parcel locker.Parcel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recipient.ToLower()
	r.parcels[key] = append(r.parcels[key], parcel)
	return nil
}

func (r *memRepo) List(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	held := r.parcels[recipient.ToLower()]
	res := make([]locker.Parcel, len(held))
	copy(res, held)
	return res, nil
}

func (r *memRepo) Take(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recipient.ToLower()
	held := r.parcels[key]
	delete(r.parcels, key)
	if held == nil {
		return []locker.Parcel{}, nil
	}
	return held, nil
}
