package auction

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

const (
	DefaultDurationMinutes = 360
	DefaultBufferMinutes   = 5
	DefaultDivisibility    = 18

	// MaxMinutes is the longest duration or buffer a time.Duration can hold.
	MaxMinutes = math.MaxInt64 / int64(time.Minute)
)

var (
	DefaultMinimumBidIncrease = decimal.NewFromInt(50)
	DefaultRewardRate         = decimal.RequireFromString("0.05")
)

// Params is the owner-settable configuration of the engine. RewardRate and
// Divisibility are fixed once the engine is built.
type Params struct {
	DurationMinutes    int64                  `json:"durationMinutes"`
	BufferMinutes      int64                  `json:"bufferMinutes"`
	MinimumBidIncrease decimal.Decimal        `json:"minimumBidIncrease"`
	RewardRate         decimal.Decimal        `json:"rewardRate"`
	Divisibility       int32                  `json:"divisibility"`
	BidResource        domain.ResourceAddress `json:"bidResource"`
	ProceedsResource   domain.ResourceAddress `json:"proceedsResource"`
	ItemResource       domain.ResourceAddress `json:"itemResource"`
	SideResource       domain.ResourceAddress `json:"sideResource"`
	Enabled            bool                   `json:"enabled"`
	Pool               domain.Address         `json:"pool"`
}

func DefaultParams() Params {
	return Params{
		DurationMinutes:    DefaultDurationMinutes,
		BufferMinutes:      DefaultBufferMinutes,
		MinimumBidIncrease: DefaultMinimumBidIncrease,
		RewardRate:         DefaultRewardRate,
		Divisibility:       DefaultDivisibility,
		Enabled:            true,
	}
}

func (p Params) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

func (p Params) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

func ValidateDuration(durationMinutes, bufferMinutes int64) error {
	if durationMinutes <= 0 || durationMinutes > MaxMinutes || durationMinutes <= bufferMinutes {
		return domain.ErrInvalidAuctionDuration
	}
	return nil
}

func ValidateBuffer(durationMinutes, bufferMinutes int64) error {
	if bufferMinutes <= 0 || bufferMinutes > MaxMinutes || bufferMinutes >= durationMinutes {
		return domain.ErrInvalidAuctionBuffer
	}
	return nil
}

func ValidateMinimumBidIncrease(increase decimal.Decimal) error {
	if !increase.IsPositive() {
		return domain.ErrInvalidMinimumBidIncrease
	}
	return nil
}

func (p Params) Validate() error {
	if err := ValidateDuration(p.DurationMinutes, p.BufferMinutes); err != nil {
		return err
	}
	if err := ValidateBuffer(p.DurationMinutes, p.BufferMinutes); err != nil {
		return err
	}
	if err := ValidateMinimumBidIncrease(p.MinimumBidIncrease); err != nil {
		return err
	}
	if p.RewardRate.IsNegative() || p.RewardRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return domain.ErrInvalidRewardRate
	}
	if p.Divisibility < 0 || p.Divisibility > DefaultDivisibility {
		return domain.ErrBadParamInput
	}
	if p.BidResource.IsEmpty() || p.ProceedsResource.IsEmpty() || p.ItemResource.IsEmpty() {
		return domain.ErrResourceMismatch
	}
	return nil
}

// Reward is the settler's cut of amount, rounded toward zero at the
// configured divisibility.
func (p Params) Reward(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.RewardRate).Truncate(p.Divisibility)
}
