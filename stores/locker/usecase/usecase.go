package usecase

import (
	"github.com/yr12345678/piers-rugyard-auctions/base/clock"
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
)

type LockerUseCaseCfg struct {
	Repo       locker.Repository
	Authorizer domain.Authorizer
	Clock      clock.Clock
	Metrics    metrics.Service
}

type impl struct {
	repo       locker.Repository
	authorizer domain.Authorizer
	clock      clock.Clock
	metrics    metrics.Service
}

func New(cfg *LockerUseCaseCfg) locker.Service {
	im := &impl{
		repo:       cfg.Repo,
		authorizer: cfg.Authorizer,
		clock:      cfg.Clock,
		metrics:    cfg.Metrics,
	}
	if im.clock == nil {
		im.clock = clock.System()
	}
	if im.metrics == nil {
		im.metrics = metrics.Noop()
	}
	return im
}

// Store keeps the asset until the recipient claims it. There is no account
// ledger to hand assets to directly, so tryDirect is only recorded.
func (im *impl) Store(c ctx.Ctx, recipient domain.Address, asset domain.Asset, tryDirect bool) error {
	if recipient.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if asset == nil {
		return domain.ErrBadParamInput
	}
	parcel := locker.NewParcel(asset, tryDirect, im.clock.Now())
	if err := im.repo.Append(c, recipient, parcel); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
			"kind":      parcel.Kind,
		}).Error("repo.Append failed")
		return err
	}
	im.metrics.BumpSum("locker.store", 1, "kind", string(parcel.Kind))
	return nil
}

func (im *impl) Claim(c ctx.Ctx, recipient domain.Address) ([]domain.Asset, error) {
	parcels, err := im.take(c, recipient)
	if err != nil {
		return nil, err
	}
	return locker.Assets(parcels), nil
}

func (im *impl) Pending(c ctx.Ctx, recipient domain.Address) ([]domain.Asset, error) {
	parcels, err := im.PendingDeliveries(c, recipient)
	if err != nil {
		return nil, err
	}
	return locker.Assets(parcels), nil
}

func (im *impl) ClaimDeliveries(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	if err := im.authorizer.AuthorizeAccount(c, recipient); err != nil {
		return nil, err
	}
	return im.take(c, recipient)
}

func (im *impl) PendingDeliveries(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	parcels, err := im.repo.List(c, recipient)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
		}).Error("repo.List failed")
		return nil, err
	}
	return parcels, nil
}

func (im *impl) take(c ctx.Ctx, recipient domain.Address) ([]locker.Parcel, error) {
	parcels, err := im.repo.Take(c, recipient)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"recipient": recipient,
		}).Error("repo.Take failed")
		return nil, err
	}
	if len(parcels) > 0 {
		im.metrics.BumpSum("locker.claim", float64(len(parcels)))
		c.WithFields(log.Fields{
			"recipient": recipient,
			"parcels":   len(parcels),
		}).Info("locker claimed")
	}
	return parcels, nil
}
