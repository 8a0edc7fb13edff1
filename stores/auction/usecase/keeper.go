package usecase

import (
	"errors"
	"time"

	"github.com/yr12345678/piers-rugyard-auctions/base/backoff"
	"github.com/yr12345678/piers-rugyard-auctions/base/clock"
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/goroutine"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
)

type KeeperCfg struct {
	UseCase  auction.UseCase
	Locker   locker.Locker
	Clock    clock.Clock
	Account  domain.Address
	Interval time.Duration
	// retries of a settlement failing for an internal reason, e.g. the pool
	Attempts     int
	BackoffStart time.Duration
	BackoffLimit time.Duration
}

// Keeper settles ended auctions and starts new ones on behalf of Account.
// Whatever settlement hands back directly is parked in the locker for Account.
type Keeper struct {
	uc       auction.UseCase
	locker   locker.Locker
	clock    clock.Clock
	account  domain.Address
	interval time.Duration
	attempts int
	start    time.Duration
	limit    time.Duration
}

func NewKeeper(cfg *KeeperCfg) *Keeper {
	k := &Keeper{
		uc:       cfg.UseCase,
		locker:   cfg.Locker,
		clock:    cfg.Clock,
		account:  cfg.Account,
		interval: cfg.Interval,
		attempts: cfg.Attempts,
		start:    cfg.BackoffStart,
		limit:    cfg.BackoffLimit,
	}
	if k.clock == nil {
		k.clock = clock.System()
	}
	if k.interval <= 0 {
		k.interval = time.Minute
	}
	if k.attempts <= 0 {
		k.attempts = 3
	}
	if k.start <= 0 {
		k.start = time.Second
	}
	return k
}

// Start runs the keeper loop until c is done, restarting it after a panic.
// The returned channel is closed once the loop stopped.
func (k *Keeper) Start(c ctx.Ctx) <-chan struct{} {
	return goroutine.Supervise(c, "keeper", k.loop)
}

func (k *Keeper) loop(c ctx.Ctx) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	for {
		if err := k.Tick(c); err != nil && c.Err() == nil {
			c.WithField("err", err).Warn("keeper.Tick failed")
		}
		select {
		case <-c.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick performs one round: settle the current auction if it ended with a
// bid, or start one if the engine is idle.
func (k *Keeper) Tick(c ctx.Ctx) error {
	c = domain.WithCaller(c, domain.Caller{Address: k.account})

	current, err := k.uc.CurrentAuction(c)
	if err != nil {
		return err
	}
	if current == nil {
		err := k.uc.StartNewAuction(c)
		if errors.Is(err, domain.ErrNoItemsAvailable) || errors.Is(err, domain.ErrAuctionsDisabled) {
			return nil
		}
		return err
	}
	if !current.HasEnded(k.clock.Now()) || !current.HasBids() {
		return nil
	}

	var out *auction.Outcome
	retryable := func(err error) bool {
		return domain.KindOf(err) == domain.KindInternal
	}
	err = backoff.NewExponential(k.start, k.limit).Retry(c, k.attempts, retryable, func() error {
		var err error
		out, err = k.uc.Settle(c, k.account)
		return err
	})
	if err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"auctionId": current.Id,
		"account":   k.account,
	}).Info("keeper settled auction")
	return k.park(c, out)
}

func (k *Keeper) park(c ctx.Ctx, out *auction.Outcome) error {
	if out == nil {
		return nil
	}
	assets := []domain.Asset{}
	if out.Reward != nil && !out.Reward.IsZero() {
		assets = append(assets, *out.Reward)
	}
	if out.Item != nil {
		assets = append(assets, *out.Item)
	}
	retryAll := func(error) bool { return true }
	for _, asset := range assets {
		asset := asset
		err := backoff.NewExponential(k.start, k.limit).Retry(c, k.attempts, retryAll, func() error {
			return k.locker.Store(c, k.account, asset, false)
		})
		if err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"account": k.account,
				"asset":   asset,
			}).Error("keeper could not park settlement output")
			return err
		}
	}
	return nil
}
