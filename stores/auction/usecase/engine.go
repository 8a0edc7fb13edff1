package usecase

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/clock"
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	"github.com/yr12345678/piers-rugyard-auctions/base/vault"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/domain/exchange"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
)

type AuctionUseCaseCfg struct {
	Params     auction.Params
	Clock      clock.Clock
	Authorizer domain.Authorizer
	Locker     locker.Locker
	Pools      exchange.Registry
	// optional
	Publisher   auction.Publisher
	StateRepo   auction.StateRepo
	ArchiveRepo auction.ArchiveRepo
	Metrics     metrics.Service
}

// impl is the auction engine. Every exported operation holds mu for its whole
// duration and either commits or leaves the state as it found it.
type impl struct {
	mu sync.Mutex

	clock       clock.Clock
	authorizer  domain.Authorizer
	locker      locker.Locker
	pools       exchange.Registry
	publisher   auction.Publisher
	stateRepo   auction.StateRepo
	archiveRepo auction.ArchiveRepo
	metrics     metrics.Service

	params        auction.Params
	current       *auction.Auction
	nextItemId    uint64
	nextAuctionId uint64
	pending       []domain.ItemId
	items         *vault.NonFungible
	highestBid    *vault.Fungible
	proceeds      *vault.Fungible
	totalBought   decimal.Decimal
	side          *vault.NonFungible
	archive       map[uint64]*auction.Auction
	unarchived    []*auction.Auction
	eventSeq      uint64
}

func New(c ctx.Ctx, cfg *AuctionUseCaseCfg) (auction.UseCase, error) {
	return newEngine(c, cfg)
}

func newEngine(c ctx.Ctx, cfg *AuctionUseCaseCfg) (*impl, error) {
	if cfg.Authorizer == nil || cfg.Locker == nil || cfg.Pools == nil {
		return nil, xerrors.New("auction engine needs an authorizer, a locker and a pool registry")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid auction params: %w", err)
	}

	im := &impl{
		clock:       cfg.Clock,
		authorizer:  cfg.Authorizer,
		locker:      cfg.Locker,
		pools:       cfg.Pools,
		publisher:   cfg.Publisher,
		stateRepo:   cfg.StateRepo,
		archiveRepo: cfg.ArchiveRepo,
		metrics:     cfg.Metrics,
		archive:     map[uint64]*auction.Auction{},
	}
	if im.clock == nil {
		im.clock = clock.System()
	}
	if im.metrics == nil {
		im.metrics = metrics.Noop()
	}
	im.reset(cfg.Params)

	if im.stateRepo == nil {
		return im, nil
	}
	state, err := im.stateRepo.Load(c)
	if errors.Is(err, domain.ErrNotFound) {
		c.WithField("itemResource", cfg.Params.ItemResource).Info("no saved auction state, starting fresh")
		return im, nil
	} else if err != nil {
		c.WithField("err", err).Error("stateRepo.Load failed")
		return nil, err
	}
	if err := im.restore(state); err != nil {
		c.WithField("err", err).Error("restore auction state failed")
		return nil, err
	}
	c.WithFields(log.Fields{
		"nextItemId":    im.nextItemId,
		"nextAuctionId": im.nextAuctionId,
		"pending":       len(im.pending),
		"unarchived":    len(im.unarchived),
	}).Info("auction state restored")
	im.drainArchive(c)
	return im, nil
}

func (im *impl) reset(params auction.Params) {
	im.params = params
	im.current = nil
	im.nextItemId = 1
	im.nextAuctionId = 1
	im.pending = []domain.ItemId{}
	im.items = vault.NewNonFungible(params.ItemResource)
	im.highestBid = vault.NewFungible(params.BidResource)
	im.proceeds = vault.NewFungible(params.ProceedsResource)
	im.totalBought = decimal.Zero
	im.side = vault.NewNonFungible(params.SideResource)
	im.eventSeq = 0
	im.unarchived = nil
}

func (im *impl) restore(s *auction.State) error {
	if err := s.Params.Validate(); err != nil {
		return xerrors.Errorf("saved params: %w", err)
	}
	im.reset(s.Params)
	im.current = s.Current.Clone()
	im.nextItemId = s.NextItemId
	im.nextAuctionId = s.NextAuctionId
	im.pending = append(im.pending, s.PendingItems...)
	for _, item := range s.Items {
		if err := im.items.Put(item); err != nil {
			return xerrors.Errorf("saved item %s: %w", item.Id, err)
		}
	}
	for _, item := range s.SideAssets {
		if err := im.side.Put(item); err != nil {
			return xerrors.Errorf("saved side asset %s: %w", item.Id, err)
		}
	}
	im.highestBid = vault.RestoreFungible(s.Params.BidResource, s.HighestBidVault)
	im.proceeds = vault.RestoreFungible(s.Params.ProceedsResource, s.Proceeds)
	im.totalBought = s.TotalBought
	im.eventSeq = s.EventSeq
	for _, a := range s.Unarchived {
		closed := a.Clone()
		im.archive[closed.Id] = closed
		im.unarchived = append(im.unarchived, closed)
	}
	return nil
}

// state renders the committed engine state for persistence.
func (im *impl) state() *auction.State {
	pending := make([]domain.ItemId, len(im.pending))
	copy(pending, im.pending)
	unarchived := make([]*auction.Auction, 0, len(im.unarchived))
	for _, a := range im.unarchived {
		unarchived = append(unarchived, a.Clone())
	}
	return &auction.State{
		Current:         im.current.Clone(),
		Params:          im.params,
		NextItemId:      im.nextItemId,
		NextAuctionId:   im.nextAuctionId,
		PendingItems:    pending,
		Items:           im.items.Items(),
		HighestBidVault: im.highestBid.Amount(),
		Proceeds:        im.proceeds.Amount(),
		TotalBought:     im.totalBought,
		SideAssets:      im.side.Items(),
		EventSeq:        im.eventSeq,
		Unarchived:      unarchived,
	}
}
