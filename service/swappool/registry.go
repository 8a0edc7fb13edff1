package swappool

import (
	"sync"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/exchange"
)

type registry struct {
	mu    sync.RWMutex
	pools map[domain.Address]exchange.Swapper
}

// Registry is an exchange.Registry that pools can be added to at runtime.
type Registry interface {
	exchange.Registry
	Register(address domain.Address, swapper exchange.Swapper)
}

func NewRegistry(pools ...*Pool) Registry {
	r := &registry{pools: map[domain.Address]exchange.Swapper{}}
	for _, p := range pools {
		r.Register(p.Address(), p)
	}
	return r
}

func (r *registry) Register(address domain.Address, swapper exchange.Swapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[address.ToLower()] = swapper
}

func (r *registry) Resolve(address domain.Address) (exchange.Swapper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.pools[address.ToLower()]; ok {
		return s, nil
	}
	return nil, domain.ErrPoolNotFound
}
