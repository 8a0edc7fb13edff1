// Package vault implements custody cells for the two asset variants.
// Vaults hold no logic beyond deposit and withdrawal; callers own the policy.
package vault

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

// Vault is the behaviour shared by both variants.
type Vault interface {
	Resource() domain.ResourceAddress
	Deposit(asset domain.Asset) error
	IsEmpty() bool
}

// Fungible holds an amount of a single fungible resource.
type Fungible struct {
	resource domain.ResourceAddress
	amount   decimal.Decimal
}

func NewFungible(resource domain.ResourceAddress) *Fungible {
	return &Fungible{resource: resource, amount: decimal.Zero}
}

// RestoreFungible rebuilds a vault from a persisted balance.
func RestoreFungible(resource domain.ResourceAddress, amount decimal.Decimal) *Fungible {
	return &Fungible{resource: resource, amount: amount}
}

func (v *Fungible) Resource() domain.ResourceAddress {
	return v.resource
}

func (v *Fungible) Amount() decimal.Decimal {
	return v.amount
}

func (v *Fungible) IsEmpty() bool {
	return v.amount.IsZero()
}

func (v *Fungible) Deposit(asset domain.Asset) error {
	funds, ok := asset.(domain.Funds)
	if !ok {
		return domain.ErrResourceMismatch
	}
	return v.Put(funds)
}

func (v *Fungible) Put(funds domain.Funds) error {
	if funds.Resource != v.resource {
		return domain.ErrResourceMismatch
	}
	if funds.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	v.amount = v.amount.Add(funds.Amount)
	return nil
}

// WithdrawExact takes exactly amount out of the vault.
func (v *Fungible) WithdrawExact(amount decimal.Decimal) (domain.Funds, error) {
	if amount.IsNegative() {
		return domain.Funds{}, domain.ErrInvalidAmount
	}
	if amount.GreaterThan(v.amount) {
		return domain.Funds{}, domain.ErrInsufficientFunds
	}
	v.amount = v.amount.Sub(amount)
	return domain.NewFunds(v.resource, amount), nil
}

// WithdrawAll empties the vault. An empty vault yields zero funds.
func (v *Fungible) WithdrawAll() domain.Funds {
	funds := domain.NewFunds(v.resource, v.amount)
	v.amount = decimal.Zero
	return funds
}

func (v *Fungible) Clone() *Fungible {
	return &Fungible{resource: v.resource, amount: v.amount}
}

// NonFungible holds items of a single non-fungible resource keyed by id.
type NonFungible struct {
	resource domain.ResourceAddress
	items    map[domain.ItemId]domain.Item
}

func NewNonFungible(resource domain.ResourceAddress) *NonFungible {
	return &NonFungible{resource: resource, items: map[domain.ItemId]domain.Item{}}
}

func (v *NonFungible) Resource() domain.ResourceAddress {
	return v.resource
}

func (v *NonFungible) IsEmpty() bool {
	return len(v.items) == 0
}

func (v *NonFungible) Len() int {
	return len(v.items)
}

func (v *NonFungible) Contains(id domain.ItemId) bool {
	_, ok := v.items[id]
	return ok
}

func (v *NonFungible) Deposit(asset domain.Asset) error {
	item, ok := asset.(domain.Item)
	if !ok {
		return domain.ErrResourceMismatch
	}
	return v.Put(item)
}

func (v *NonFungible) Put(item domain.Item) error {
	if item.Resource != v.resource {
		return domain.ErrResourceMismatch
	}
	v.items[item.Id] = item
	return nil
}

func (v *NonFungible) WithdrawById(id domain.ItemId) (domain.Item, error) {
	item, ok := v.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotInVault
	}
	delete(v.items, id)
	return item, nil
}

// WithdrawAll empties the vault, returning the items ordered by id.
func (v *NonFungible) WithdrawAll() []domain.Item {
	items := v.Items()
	v.items = map[domain.ItemId]domain.Item{}
	return items
}

// Items lists the vault content ordered by id without withdrawing it.
func (v *NonFungible) Items() []domain.Item {
	items := make([]domain.Item, 0, len(v.items))
	for _, item := range v.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, aok := items[i].Id.Integer()
		b, bok := items[j].Id.Integer()
		if aok && bok {
			return a < b
		}
		return items[i].Id < items[j].Id
	})
	return items
}

func (v *NonFungible) Clone() *NonFungible {
	items := make(map[domain.ItemId]domain.Item, len(v.items))
	for id, item := range v.items {
		items[id] = item
	}
	return &NonFungible{resource: v.resource, items: items}
}
