package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/vault"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

type delivery struct {
	recipient domain.Address
	asset     domain.Asset
	tryDirect bool
}

// txn is one running operation: the state it started from plus the side
// effects it will release once it commits.
type txn struct {
	c    ctx.Ctx
	now  time.Time
	hash domain.TxHash

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
	eventSeq      uint64
	unarchived    []*auction.Auction

	// saved is set once the new state reached the StateRepo
	saved      bool
	archived   []*auction.Auction
	deliveries []delivery
	events     []auction.Envelope
}

func (im *impl) begin(c ctx.Ctx) *txn {
	hash := domain.TxHash(ctx.StringValue(c, ctx.RequestIDKey))
	if hash == "" {
		hash = domain.TxHash(uuid.NewString())
	}
	pending := make([]domain.ItemId, len(im.pending))
	copy(pending, im.pending)
	return &txn{
		c:             c,
		now:           im.clock.Now(),
		hash:          hash,
		params:        im.params,
		current:       im.current.Clone(),
		nextItemId:    im.nextItemId,
		nextAuctionId: im.nextAuctionId,
		pending:       pending,
		items:         im.items.Clone(),
		highestBid:    im.highestBid.Clone(),
		proceeds:      im.proceeds.Clone(),
		totalBought:   im.totalBought,
		side:          im.side.Clone(),
		eventSeq:      im.eventSeq,
		unarchived:    im.unarchived,
	}
}

func (im *impl) rollback(tx *txn) {
	im.params = tx.params
	im.current = tx.current
	im.nextItemId = tx.nextItemId
	im.nextAuctionId = tx.nextAuctionId
	im.pending = tx.pending
	im.items = tx.items
	im.highestBid = tx.highestBid
	im.proceeds = tx.proceeds
	im.totalBought = tx.totalBought
	im.side = tx.side
	im.eventSeq = tx.eventSeq
	im.unarchived = tx.unarchived
	for _, a := range tx.archived {
		delete(im.archive, a.Id)
	}
	if tx.saved {
		// put the stored state back to what memory holds again
		if err := im.saveState(tx.c, tx.now); err != nil {
			tx.c.WithField("err", err).Error("stateRepo.Save of rolled back state failed")
		}
	}
}

// release performs the side effects an operation cannot take back: the new
// state is saved, then every delivery is stored. Any failure rejects the
// operation, so nothing withdrawn from a vault goes missing.
func (im *impl) release(tx *txn) error {
	im.unarchived = append(im.unarchived[:len(im.unarchived):len(im.unarchived)], tx.archived...)
	if err := im.saveState(tx.c, tx.now); err != nil {
		return xerrors.Errorf("save auction state: %w", err)
	}
	tx.saved = im.stateRepo != nil

	for i, d := range tx.deliveries {
		if err := im.locker.Store(tx.c, d.recipient, d.asset, d.tryDirect); err != nil {
			fields := log.Fields{
				"err":       err,
				"recipient": d.recipient,
				"asset":     d.asset,
				"txHash":    tx.hash,
			}
			if i > 0 {
				// earlier deliveries of this operation stay stored
				fields["alreadyStored"] = i
			}
			tx.c.WithFields(fields).Error("locker.Store failed")
			return xerrors.Errorf("deliver to %s: %w", d.recipient, err)
		}
	}
	return nil
}

// commit runs after release: archived auctions go to the ArchiveRepo and the
// events are published. Failures here are logged; an auction that could not
// be archived stays in the saved state and is retried on the next commit.
func (im *impl) commit(tx *txn) {
	c := tx.c
	im.drainArchive(c)

	if im.publisher != nil && len(tx.events) > 0 {
		if err := im.publisher.Publish(c, tx.events); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"events": len(tx.events),
			}).Warn("publisher.Publish failed")
		}
	}
}

// drainArchive stores the queued auctions. The saved state keeps listing
// them until the next save, so an insert may be repeated after a restart.
func (im *impl) drainArchive(c ctx.Ctx) {
	if im.archiveRepo == nil || len(im.unarchived) == 0 {
		return
	}
	left := []*auction.Auction{}
	for _, a := range im.unarchived {
		err := im.archiveRepo.Insert(c, a)
		if err == nil || errors.Is(err, domain.ErrAuctionArchived) {
			continue
		}
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.Id,
		}).Error("archiveRepo.Insert failed")
		im.metrics.BumpSum("archive.err", 1)
		left = append(left, a)
	}
	im.unarchived = left
}

func (im *impl) saveState(c ctx.Ctx, now time.Time) error {
	if im.stateRepo == nil {
		return nil
	}
	state := im.state()
	state.UpdatedAt = now
	return im.stateRepo.Save(c, state)
}

// run executes fn as one all-or-nothing operation.
func (im *impl) run(c ctx.Ctx, op string, fn func(tx *txn) error) error {
	if err := c.Err(); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	defer im.metrics.BumpTime(op + ".time").End()

	tx := im.begin(c)
	err := fn(tx)
	if err == nil {
		err = im.release(tx)
	}
	if err != nil {
		im.rollback(tx)
		im.metrics.BumpSum(op+".err", 1, "kind", string(domain.KindOf(err)))
		return err
	}
	im.commit(tx)
	return nil
}

// read runs fn under the lock without staging anything.
func (im *impl) read(c ctx.Ctx, fn func() error) error {
	if err := c.Err(); err != nil {
		return err
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	return fn()
}

func (im *impl) emit(tx *txn, ev auction.Event) {
	im.eventSeq++
	tx.events = append(tx.events, auction.Envelope{
		Type:      ev.Type(),
		Seq:       im.eventSeq,
		EmittedAt: tx.now,
		Payload:   ev,
	})
}

func (tx *txn) deliver(recipient domain.Address, asset domain.Asset, tryDirect bool) {
	tx.deliveries = append(tx.deliveries, delivery{
		recipient: recipient,
		asset:     asset,
		tryDirect: tryDirect,
	})
}

func (tx *txn) archive(a *auction.Auction) {
	tx.archived = append(tx.archived, a)
}
