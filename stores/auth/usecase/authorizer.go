package usecase

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

type authorizer struct {
	owners []domain.Address
}

// NewAuthorizer checks the caller carried in ctx. A caller is an owner when
// flagged so or when listed in owners.
func NewAuthorizer(owners []domain.Address) domain.Authorizer {
	return &authorizer{owners: owners}
}

func (a *authorizer) IsOwner(address domain.Address) bool {
	for _, owner := range a.owners {
		if owner.Equals(address) {
			return true
		}
	}
	return false
}

func (a *authorizer) AuthorizeOwner(c ctx.Ctx) error {
	caller, ok := domain.CallerFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	if caller.IsOwner || a.IsOwner(caller.Address) {
		return nil
	}
	return domain.ErrForbidden
}

func (a *authorizer) AuthorizeAccount(c ctx.Ctx, account domain.Address) error {
	caller, ok := domain.CallerFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	if account.IsEmpty() || !caller.Address.Equals(account) {
		return domain.ErrNotAccountOwner
	}
	return nil
}
