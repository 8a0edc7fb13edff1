package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies an account (a bidder, a settler, the owner).
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// ResourceAddress identifies a kind of asset (a currency or an item collection).
type ResourceAddress string

func (r ResourceAddress) IsEmpty() bool {
	return len(r) == 0
}

// ItemId is a non-fungible local id. Minted items use integer ids rendered as "#n#".
type ItemId string

func IntegerItemId(n uint64) ItemId {
	return ItemId(fmt.Sprintf("#%d#", n))
}

// Integer returns the numeric part of an integer id.
func (i ItemId) Integer() (uint64, bool) {
	s := string(i)
	if len(s) < 3 || s[0] != '#' || s[len(s)-1] != '#' {
		return 0, false
	}
	n, err := strconv.ParseUint(s[1:len(s)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (i ItemId) String() string {
	return string(i)
}

// TxHash fingerprints the operation that produced a record.
type TxHash string
