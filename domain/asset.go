package domain

import (
	"github.com/shopspring/decimal"
)

type AssetKind string

const (
	AssetKindFungible    AssetKind = "fungible"
	AssetKindNonFungible AssetKind = "nonFungible"
)

// Asset is the closed set of things the engine can hold in custody: Funds and Item.
type Asset interface {
	Kind() AssetKind
	ResourceAddress() ResourceAddress
	isAsset()
}

// Funds is an amount of a fungible resource.
type Funds struct {
	Resource ResourceAddress `json:"resource"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewFunds(resource ResourceAddress, amount decimal.Decimal) Funds {
	return Funds{Resource: resource, Amount: amount}
}

func (f Funds) Kind() AssetKind {
	return AssetKindFungible
}

func (f Funds) ResourceAddress() ResourceAddress {
	return f.Resource
}

func (f Funds) IsZero() bool {
	return f.Amount.IsZero()
}

func (Funds) isAsset() {}

// ItemData is the catalog payload of a minted item.
type ItemData struct {
	KeyImageUrl string `json:"keyImageUrl" bson:"keyImageUrl" validate:"required,url"`
	Name        string `json:"name" bson:"name" validate:"required"`
}

// Item is one non-fungible unit.
type Item struct {
	Resource ResourceAddress `json:"resource"`
	Id       ItemId          `json:"id"`
	Data     ItemData        `json:"data"`
}

func (i Item) Kind() AssetKind {
	return AssetKindNonFungible
}

func (i Item) ResourceAddress() ResourceAddress {
	return i.Resource
}

func (Item) isAsset() {}
