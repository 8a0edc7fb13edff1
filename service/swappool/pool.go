// Package swappool provides fixed-rate exchange pools. A pool takes one
// resource in and pays another out of its reserve at a configured rate.
package swappool

import (
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	"github.com/yr12345678/piers-rugyard-auctions/base/vault"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

type PoolCfg struct {
	Address domain.Address
	Input   domain.ResourceAddress
	Output  domain.ResourceAddress
	// output received per unit of input
	Rate         decimal.Decimal
	Divisibility int32
	// a nil reserve pays out without limit
	Reserve *decimal.Decimal
}

// Pool is a fixed-rate exchange.Swapper.
type Pool struct {
	mu           sync.Mutex
	address      domain.Address
	output       domain.ResourceAddress
	rate         decimal.Decimal
	divisibility int32
	received     *vault.Fungible
	reserve      *vault.Fungible
	metrics      metrics.Service
}

func NewPool(cfg PoolCfg, met metrics.Service) (*Pool, error) {
	if cfg.Address.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	if cfg.Input.IsEmpty() || cfg.Output.IsEmpty() {
		return nil, xerrors.Errorf("pool %s: %w", cfg.Address, domain.ErrResourceMismatch)
	}
	if !cfg.Rate.IsPositive() {
		return nil, xerrors.Errorf("pool %s rate %s: %w", cfg.Address, cfg.Rate, domain.ErrInvalidAmount)
	}
	if met == nil {
		met = metrics.Noop()
	}

	p := &Pool{
		address:      cfg.Address,
		output:       cfg.Output,
		rate:         cfg.Rate,
		divisibility: cfg.Divisibility,
		received:     vault.NewFungible(cfg.Input),
		metrics:      met,
	}
	if cfg.Reserve != nil {
		p.reserve = vault.NewFungible(cfg.Output)
		if err := p.reserve.Put(domain.NewFunds(cfg.Output, *cfg.Reserve)); err != nil {
			return nil, xerrors.Errorf("pool %s reserve: %w", cfg.Address, err)
		}
	}
	return p, nil
}

func (p *Pool) Address() domain.Address {
	return p.address
}

// Quote is the output Swap would pay for amount.
func (p *Pool) Quote(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.rate).Truncate(p.divisibility)
}

func (p *Pool) Swap(c ctx.Ctx, input domain.Funds) (domain.Funds, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.metrics.BumpTime("swap.time", "pool", string(p.address)).End()

	if input.Resource != p.received.Resource() {
		return domain.Funds{}, domain.ErrResourceMismatch
	}
	if input.Amount.IsNegative() {
		return domain.Funds{}, domain.ErrInvalidAmount
	}

	out := p.Quote(input.Amount)
	if p.reserve != nil && out.GreaterThan(p.reserve.Amount()) {
		c.WithFields(log.Fields{
			"pool":    p.address,
			"want":    out,
			"reserve": p.reserve.Amount(),
		}).Warn("pool reserve too low")
		return domain.Funds{}, domain.ErrInsufficientFunds
	}

	if err := p.received.Put(input); err != nil {
		return domain.Funds{}, err
	}
	if p.reserve != nil {
		if _, err := p.reserve.WithdrawExact(out); err != nil {
			return domain.Funds{}, err
		}
	}

	p.metrics.BumpSum("swap.count", 1, "pool", string(p.address))
	c.WithFields(log.Fields{
		"pool":   p.address,
		"input":  input.Amount,
		"output": out,
	}).Info("pool swapped")
	return domain.NewFunds(p.output, out), nil
}

// Received is the total input the pool has taken.
func (p *Pool) Received() domain.Funds {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.NewFunds(p.received.Resource(), p.received.Amount())
}

// Reserve is the remaining output, or nil for an unlimited pool.
func (p *Pool) Reserve() *domain.Funds {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reserve == nil {
		return nil
	}
	f := domain.NewFunds(p.reserve.Resource(), p.reserve.Amount())
	return &f
}
