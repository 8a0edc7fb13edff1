package exchange

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

// Swapper converts settlement proceeds into the proceeds resource. Calls are
// synchronous; an error aborts the settlement that made it.
type Swapper interface {
	Swap(c ctx.Ctx, input domain.Funds) (domain.Funds, error)
}

// Registry resolves a configured pool address to its Swapper.
type Registry interface {
	// Resolve fails with domain.ErrPoolNotFound for unknown addresses.
	Resolve(address domain.Address) (Swapper, error)
}
