package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yr12345678/piers-rugyard-auctions/base/clock"
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	exchangeMocks "github.com/yr12345678/piers-rugyard-auctions/domain/exchange/mocks"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
	"github.com/yr12345678/piers-rugyard-auctions/service/notifier"
	"github.com/yr12345678/piers-rugyard-auctions/service/swappool"
	auctionRepo "github.com/yr12345678/piers-rugyard-auctions/stores/auction/repository"
	authUsecase "github.com/yr12345678/piers-rugyard-auctions/stores/auth/usecase"
	lockerRepo "github.com/yr12345678/piers-rugyard-auctions/stores/locker/repository"
	lockerUsecase "github.com/yr12345678/piers-rugyard-auctions/stores/locker/usecase"
)

const (
	owner  = domain.Address("0x0000000000000000000000000000000000000001")
	alice  = domain.Address("0xa11ce00000000000000000000000000000000002")
	bob    = domain.Address("0xb0b0000000000000000000000000000000000003")
	carol  = domain.Address("0xca201000000000000000000000000000000000004")
	dave   = domain.Address("0xdave000000000000000000000000000000000005")
	keeper = domain.Address("0xkeeper00000000000000000000000000000000006")

	xrd   = domain.ResourceAddress("xrd")
	early = domain.ResourceAddress("early")
	rugs  = domain.ResourceAddress("rugs")
	names = domain.ResourceAddress("names")

	poolAddress = domain.Address("0xpool")
)

var (
	startTime = time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func xrdFunds(s string) domain.Funds {
	return domain.NewFunds(xrd, dec(s))
}

func rug(name string) domain.ItemData {
	return domain.ItemData{KeyImageUrl: "https://rugyard.example/" + name + ".png", Name: name}
}

type engineSuite struct {
	suite.Suite

	im        *impl
	clock     *clock.Manual
	locker    locker.Service
	pools     swappool.Registry
	recorder  *notifier.Recorder
	state     auction.StateRepo
	archive   auction.ArchiveRepo
	authorize domain.Authorizer
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) params() auction.Params {
	p := auction.DefaultParams()
	p.BidResource = xrd
	p.ProceedsResource = early
	p.ItemResource = rugs
	p.SideResource = names
	p.Pool = poolAddress
	return p
}

func (s *engineSuite) SetupTest() {
	s.clock = clock.NewManual(startTime)
	s.authorize = authUsecase.NewAuthorizer([]domain.Address{owner})
	s.locker = lockerUsecase.New(&lockerUsecase.LockerUseCaseCfg{
		Repo:       lockerRepo.NewMemory(),
		Authorizer: s.authorize,
		Clock:      s.clock,
	})
	pool, err := swappool.NewPool(swappool.PoolCfg{
		Address:      poolAddress,
		Input:        xrd,
		Output:       early,
		Rate:         decimal.NewFromInt(1),
		Divisibility: 18,
	}, nil)
	s.Require().NoError(err)
	s.pools = swappool.NewRegistry(pool)
	s.recorder = &notifier.Recorder{}
	s.state = auctionRepo.NewMemoryState()
	s.archive = auctionRepo.NewMemoryArchive()
	s.im = s.newEngine()
}

func (s *engineSuite) newEngine() *impl {
	im, err := newEngine(ctx.Background(), &AuctionUseCaseCfg{
		Params:      s.params(),
		Clock:       s.clock,
		Authorizer:  s.authorize,
		Locker:      s.locker,
		Pools:       s.pools,
		Publisher:   s.recorder,
		StateRepo:   s.state,
		ArchiveRepo: s.archive,
	})
	s.Require().NoError(err)
	return im
}

func (s *engineSuite) as(address domain.Address) ctx.Ctx {
	return domain.WithCaller(ctx.Background(), domain.Caller{Address: address})
}

func (s *engineSuite) asOwner() ctx.Ctx {
	return domain.WithCaller(ctx.Background(), domain.Caller{Address: owner, IsOwner: true})
}

func (s *engineSuite) mint(names ...string) []domain.ItemId {
	data := make([]domain.ItemData, 0, len(names))
	for _, n := range names {
		data = append(data, rug(n))
	}
	ids, err := s.im.MintItems(s.asOwner(), data)
	s.Require().NoError(err)
	return ids
}

func (s *engineSuite) start() *auction.Auction {
	s.Require().NoError(s.im.StartNewAuction(s.as(dave)))
	return s.current()
}

func (s *engineSuite) current() *auction.Auction {
	a, err := s.im.CurrentAuction(ctx.Background())
	s.Require().NoError(err)
	return a
}

func (s *engineSuite) bid(bidder domain.Address, amount string) (*auction.Outcome, error) {
	return s.im.Bid(s.as(bidder), xrdFunds(amount), bidder)
}

func (s *engineSuite) pending(recipient domain.Address) []domain.Asset {
	assets, err := s.locker.Pending(ctx.Background(), recipient)
	s.Require().NoError(err)
	return assets
}

func (s *engineSuite) requireFunds(asset domain.Asset, resource domain.ResourceAddress, amount string) {
	funds, ok := asset.(domain.Funds)
	s.Require().True(ok, "expected funds, got %T", asset)
	s.Equal(resource, funds.Resource)
	s.True(dec(amount).Equal(funds.Amount), "want %s got %s", amount, funds.Amount)
}

func (s *engineSuite) TestScenario() {
	ids := s.mint("first")
	s.Equal([]domain.ItemId{"#1#"}, ids)

	a := s.start()
	s.Equal(uint64(1), a.Id)
	s.Equal(domain.ItemId("#1#"), a.ItemId)
	s.Equal(startTime, a.StartTime)
	s.Equal(startTime.Add(360*time.Minute), a.EndTime)

	_, err := s.bid(alice, "50")
	s.Require().NoError(err)
	_, err = s.bid(bob, "100")
	s.Require().NoError(err)

	refunds := s.pending(alice)
	s.Require().Len(refunds, 1)
	s.requireFunds(refunds[0], xrd, "50")

	_, err = s.bid(carol, "149")
	s.ErrorIs(err, domain.ErrBidTooLow)
	a = s.current()
	s.Equal(uint64(2), a.BidCount, "rejected bid must not persist")
	s.Len(a.BidHistory, 2)
	s.True(dec("100").Equal(a.Highest()))
	s.Equal(bob, *a.HighestBidder)

	s.clock.Set(startTime.Add(359 * time.Minute))
	_, err = s.bid(carol, "150")
	s.Require().NoError(err)
	a = s.current()
	s.Equal(startTime.Add(364*time.Minute), a.EndTime)

	refunds = s.pending(bob)
	s.Require().Len(refunds, 1)
	s.requireFunds(refunds[0], xrd, "100")

	s.clock.Set(a.EndTime)
	out, err := s.im.Settle(s.as(carol), carol)
	s.Require().NoError(err)
	s.Require().NotNil(out.Item)
	s.Equal(domain.ItemId("#1#"), out.Item.Id)
	s.Equal(rugs, out.Item.Resource)
	s.Require().NotNil(out.Reward)
	s.requireFunds(*out.Reward, xrd, "7.5")
	s.Empty(s.pending(carol))

	s.Nil(s.current())
	profit, err := s.im.ProfitAmount(ctx.Background())
	s.Require().NoError(err)
	s.requireFunds(profit, early, "142.5")
	bought, err := s.im.TotalProceedsBought(ctx.Background())
	s.Require().NoError(err)
	s.requireFunds(bought, early, "142.5")

	archived, err := s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	s.True(dec("150").Equal(archived.Highest()))
	s.Equal(carol, *archived.HighestBidder)
	s.Equal(uint64(3), archived.BidCount)

	stored, err := s.archive.FindOne(ctx.Background(), 1)
	s.Require().NoError(err)
	s.Equal(uint64(3), stored.BidCount)

	s.Equal([]auction.EventType{
		auction.EventItemMinted,
		auction.EventAuctionStarted,
		auction.EventBidRecorded,
		auction.EventBidRecorded,
		auction.EventBidRecorded,
		auction.EventAuctionSettled,
		auction.EventProceedsConverted,
	}, s.recorder.Types())
	for i, e := range s.recorder.Events() {
		s.Equal(uint64(i+1), e.Seq)
	}
}

func (s *engineSuite) TestStartPreconditions() {
	s.ErrorIs(s.im.StartNewAuction(s.as(dave)), domain.ErrNoItemsAvailable)

	s.mint("a", "b")
	enabled, err := s.im.FlipStatus(s.asOwner())
	s.Require().NoError(err)
	s.False(enabled)
	s.ErrorIs(s.im.StartNewAuction(s.as(dave)), domain.ErrAuctionsDisabled)

	enabled, err = s.im.FlipStatus(s.asOwner())
	s.Require().NoError(err)
	s.True(enabled)
	s.start()
	s.ErrorIs(s.im.StartNewAuction(s.as(dave)), domain.ErrAuctionAlreadyActive)

	pending, err := s.im.PendingItems(ctx.Background())
	s.Require().NoError(err)
	s.Equal([]domain.ItemId{"#2#"}, pending)
}

func (s *engineSuite) TestNoAuctionActive() {
	_, err := s.bid(alice, "50")
	s.ErrorIs(err, domain.ErrNoAuctionActive)
	_, err = s.im.Settle(s.as(alice), alice)
	s.ErrorIs(err, domain.ErrNoAuctionActive)
	s.Empty(s.recorder.Events())
}

func (s *engineSuite) TestBidValidation() {
	s.mint("a")
	s.start()

	_, err := s.bid(alice, "49")
	s.ErrorIs(err, domain.ErrBidTooLow, "first bid must clear the increase over zero")

	_, err = s.im.Bid(s.as(alice), domain.NewFunds(early, dec("500")), alice)
	s.ErrorIs(err, domain.ErrInvalidBidCurrency)

	_, err = s.im.Bid(s.as(bob), xrdFunds("500"), alice)
	s.ErrorIs(err, domain.ErrNotAccountOwner)

	a := s.current()
	s.Zero(a.BidCount)
	s.False(a.HasBids())
	s.Equal([]auction.EventType{auction.EventItemMinted, auction.EventAuctionStarted}, s.recorder.Types())
}

func (s *engineSuite) TestBidAfterEndWithBids() {
	s.mint("a")
	a := s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)

	s.clock.Set(a.EndTime)
	_, err = s.bid(bob, "500")
	s.ErrorIs(err, domain.ErrAuctionEnded)
	s.Empty(s.pending(alice), "no refund for a rejected bid")
	s.Equal(alice, *s.current().HighestBidder)
}

func (s *engineSuite) TestFirstBidAfterExpirySettles() {
	s.mint("a")
	a := s.start()

	s.clock.Set(a.EndTime.Add(time.Hour))
	out, err := s.bid(alice, "50")
	s.Require().NoError(err)
	s.Require().NotNil(out.Item)
	s.Equal(domain.ItemId("#1#"), out.Item.Id)
	s.requireFunds(*out.Reward, xrd, "2.5")
	s.Nil(s.current())

	archived, err := s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	s.Equal(a.EndTime, archived.EndTime, "no extension after the end")
}

func (s *engineSuite) TestExtensionOnlyInsideBuffer() {
	s.mint("a")
	a := s.start()

	s.clock.Set(a.EndTime.Add(-10 * time.Minute))
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)
	s.Equal(a.EndTime, s.current().EndTime)

	s.clock.Set(a.EndTime.Add(-5 * time.Minute))
	_, err = s.bid(bob, "100")
	s.Require().NoError(err)
	s.Equal(a.EndTime, s.current().EndTime, "now+buffer equal to end extends to the same time")

	s.clock.Advance(time.Minute)
	_, err = s.bid(alice, "150")
	s.Require().NoError(err)
	s.Equal(a.EndTime.Add(time.Minute), s.current().EndTime)
}

func (s *engineSuite) TestSettleFailures() {
	s.mint("a")
	a := s.start()

	_, err := s.im.Settle(s.as(alice), alice)
	s.ErrorIs(err, domain.ErrAuctionNotEnded)

	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(alice), alice)
	s.ErrorIs(err, domain.ErrNoBidsPlaced)

	_, err = s.im.Settle(s.as(bob), alice)
	s.ErrorIs(err, domain.ErrNotAccountOwner)

	s.NotNil(s.current())
	s.Equal([]auction.EventType{auction.EventItemMinted, auction.EventAuctionStarted}, s.recorder.Types())
}

func (s *engineSuite) TestSettleByThirdPartyRollsIntoNextAuction() {
	s.mint("a", "b")
	a := s.start()
	_, err := s.bid(alice, "100")
	s.Require().NoError(err)

	s.clock.Set(a.EndTime)
	out, err := s.im.Settle(s.as(dave), dave)
	s.Require().NoError(err)
	s.Nil(out.Item)
	s.requireFunds(*out.Reward, xrd, "5")

	delivered := s.pending(alice)
	s.Require().Len(delivered, 1)
	item, ok := delivered[0].(domain.Item)
	s.Require().True(ok)
	s.Equal(domain.ItemId("#1#"), item.Id)

	next := s.current()
	s.Require().NotNil(next)
	s.Equal(uint64(2), next.Id)
	s.Equal(domain.ItemId("#2#"), next.ItemId)
	s.Equal(a.EndTime, next.StartTime)
}

func (s *engineSuite) TestSwapFailureRollsBack() {
	s.mint("a")
	a := s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)
	_, err = s.bid(bob, "100")
	s.Require().NoError(err)

	broken := &exchangeMocks.Swapper{}
	broken.On("Swap", mock.Anything, mock.MatchedBy(func(f domain.Funds) bool {
		return f.Resource == xrd && f.Amount.Equal(dec("95"))
	})).Return(domain.Funds{}, errors.New("pool halted")).Once()
	s.pools.Register("0xbroken", broken)
	s.Require().NoError(s.im.UpdatePoolAddress(s.asOwner(), "0xbroken"))
	events := len(s.recorder.Events())

	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(bob), bob)
	s.Error(err)
	s.Equal(domain.KindInternal, domain.KindOf(err))
	broken.AssertExpectations(s.T())

	cur := s.current()
	s.Require().NotNil(cur)
	s.Equal(bob, *cur.HighestBidder)
	s.True(dec("100").Equal(s.im.highestBid.Amount()))
	s.True(s.im.items.Contains("#1#"))
	s.Len(s.recorder.Events(), events)
	_, err = s.im.CompletedAuction(ctx.Background(), 1)
	s.ErrorIs(err, domain.ErrAuctionNotFound)

	s.Require().NoError(s.im.UpdatePoolAddress(s.asOwner(), poolAddress))
	out, err := s.im.Settle(s.as(bob), bob)
	s.Require().NoError(err)
	s.NotNil(out.Item)
}

func (s *engineSuite) TestMintAndDelete() {
	_, err := s.im.MintItems(s.as(alice), []domain.ItemData{rug("a")})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.im.MintItems(s.asOwner(), []domain.ItemData{rug("a"), {Name: "no image"}})
	s.ErrorIs(err, domain.ErrInvalidItemData)

	ids := s.mint("a", "b", "c")
	s.Equal([]domain.ItemId{"#1#", "#2#", "#3#"}, ids, "a failed mint consumes no ids")

	s.ErrorIs(s.im.DeleteItem(s.as(alice), "#2#"), domain.ErrForbidden)
	s.Require().NoError(s.im.DeleteItem(s.asOwner(), "#2#"))
	s.ErrorIs(s.im.DeleteItem(s.asOwner(), "#2#"), domain.ErrItemNotAvailable)
	s.False(s.im.items.Contains("#2#"))

	a := s.start()
	s.Equal(domain.ItemId("#1#"), a.ItemId)
	s.ErrorIs(s.im.DeleteItem(s.asOwner(), "#1#"), domain.ErrItemNotAvailable)

	pending, err := s.im.PendingItems(ctx.Background())
	s.Require().NoError(err)
	s.Equal([]domain.ItemId{"#3#"}, pending)
}

func (s *engineSuite) TestAdminParams() {
	c := s.asOwner()
	s.ErrorIs(s.im.UpdateAuctionDuration(c, 5), domain.ErrInvalidAuctionDuration)
	s.ErrorIs(s.im.UpdateAuctionDuration(c, 0), domain.ErrInvalidAuctionDuration)
	s.ErrorIs(s.im.UpdateAuctionBuffer(c, 360), domain.ErrInvalidAuctionBuffer)
	s.ErrorIs(s.im.UpdateAuctionBuffer(c, 0), domain.ErrInvalidAuctionBuffer)
	s.ErrorIs(s.im.UpdateAuctionDuration(c, 200000000), domain.ErrInvalidAuctionDuration)
	s.ErrorIs(s.im.UpdateAuctionDuration(c, auction.MaxMinutes+1), domain.ErrInvalidAuctionDuration)
	s.ErrorIs(s.im.UpdateMinimumBidIncrease(c, decimal.Zero), domain.ErrInvalidMinimumBidIncrease)
	s.ErrorIs(s.im.UpdatePoolAddress(c, ""), domain.ErrInvalidAddress)
	s.ErrorIs(s.im.UpdatePoolAddress(c, "0xunknown"), domain.ErrPoolNotFound)
	s.ErrorIs(s.im.UpdateAuctionDuration(s.as(alice), 60), domain.ErrForbidden)
	s.ErrorIs(s.im.UpdateAuctionDuration(ctx.Background(), 60), domain.ErrUnauthorized)

	s.Require().NoError(s.im.UpdateAuctionDuration(c, 60))
	s.Require().NoError(s.im.UpdateAuctionBuffer(c, 10))
	s.Require().NoError(s.im.UpdateMinimumBidIncrease(c, dec("1.5")))

	p, err := s.im.Params(ctx.Background())
	s.Require().NoError(err)
	s.Equal(int64(60), p.DurationMinutes)
	s.Equal(int64(10), p.BufferMinutes)
	s.True(dec("1.5").Equal(p.MinimumBidIncrease))

	s.mint("a")
	a := s.start()
	s.Equal(startTime.Add(time.Hour), a.EndTime)
}

func (s *engineSuite) TestSideAssets() {
	c := s.asOwner()
	s.ErrorIs(s.im.DepositSideAsset(c, domain.Item{Resource: rugs, Id: "#9#"}), domain.ErrInvalidSideAsset)
	s.Require().NoError(s.im.DepositSideAsset(c, domain.Item{Resource: names, Id: "<rugyard>"}))

	_, err := s.im.WithdrawSideAsset(c, "<other>")
	s.ErrorIs(err, domain.ErrSideAssetNotFound)
	_, err = s.im.WithdrawSideAsset(s.as(alice), "<rugyard>")
	s.ErrorIs(err, domain.ErrForbidden)

	item, err := s.im.WithdrawSideAsset(c, "<rugyard>")
	s.Require().NoError(err)
	s.Equal(domain.ItemId("<rugyard>"), item.Id)
}

func (s *engineSuite) TestWithdrawProfits() {
	s.mint("a")
	a := s.start()
	_, err := s.bid(alice, "200")
	s.Require().NoError(err)
	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(alice), alice)
	s.Require().NoError(err)

	_, err = s.im.WithdrawProfits(s.as(alice))
	s.ErrorIs(err, domain.ErrForbidden)

	profits, err := s.im.WithdrawProfits(s.asOwner())
	s.Require().NoError(err)
	s.requireFunds(profits, early, "190")

	left, err := s.im.ProfitAmount(ctx.Background())
	s.Require().NoError(err)
	s.True(left.Amount.IsZero())
	bought, err := s.im.TotalProceedsBought(ctx.Background())
	s.Require().NoError(err)
	s.requireFunds(bought, early, "190")
}

func (s *engineSuite) TestStateIsRestored() {
	s.mint("a", "b")
	a := s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)
	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(alice), alice)
	s.Require().NoError(err)
	_, err = s.bid(bob, "75")
	s.Require().NoError(err)

	restored := s.newEngine()
	cur, err := restored.CurrentAuction(ctx.Background())
	s.Require().NoError(err)
	s.Require().NotNil(cur)
	s.Equal(uint64(2), cur.Id)
	s.Equal(bob, *cur.HighestBidder)
	s.True(dec("75").Equal(restored.highestBid.Amount()))
	s.True(dec("47.5").Equal(restored.proceeds.Amount()))
	s.True(restored.items.Contains("#2#"))
	s.Equal(uint64(3), restored.nextItemId)
	s.Equal(s.im.eventSeq, restored.eventSeq)

	archived, err := restored.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	s.Equal(alice, *archived.HighestBidder)
	_, err = restored.CompletedAuction(ctx.Background(), 7)
	s.ErrorIs(err, domain.ErrAuctionNotFound)

	ids, err := restored.MintItems(s.asOwner(), []domain.ItemData{rug("c")})
	s.Require().NoError(err)
	s.Equal([]domain.ItemId{"#3#"}, ids)
}

func (s *engineSuite) TestNewEngineValidation() {
	_, err := New(ctx.Background(), &AuctionUseCaseCfg{Params: s.params()})
	s.Error(err)

	bad := s.params()
	bad.BufferMinutes = 0
	_, err = New(ctx.Background(), &AuctionUseCaseCfg{
		Params:     bad,
		Authorizer: s.authorize,
		Locker:     s.locker,
		Pools:      s.pools,
	})
	s.ErrorIs(err, domain.ErrInvalidAuctionBuffer)
}

func (s *engineSuite) TestCanceledContext() {
	c, cancel := ctx.WithCancel(s.asOwner())
	cancel()
	_, err := s.im.MintItems(c, []domain.ItemData{rug("a")})
	s.Error(err)
	pending, err := s.im.PendingItems(ctx.Background())
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *engineSuite) TestKeeperTick() {
	k := NewKeeper(&KeeperCfg{
		UseCase: s.im,
		Locker:  s.locker,
		Clock:   s.clock,
		Account: keeper,
	})
	c := ctx.Background()

	s.Require().NoError(k.Tick(c), "idle without items is not an error")

	s.mint("a")
	s.Require().NoError(k.Tick(c))
	a := s.current()
	s.Require().NotNil(a)

	_, err := s.bid(alice, "100")
	s.Require().NoError(err)
	s.Require().NoError(k.Tick(c), "running auction is left alone")
	s.NotNil(s.current())

	s.clock.Set(a.EndTime)
	s.Require().NoError(k.Tick(c))
	s.Nil(s.current())

	parked := s.pending(keeper)
	s.Require().Len(parked, 1)
	s.requireFunds(parked[0], xrd, "5")

	delivered := s.pending(alice)
	s.Require().Len(delivered, 1)
	_, ok := delivered[0].(domain.Item)
	s.True(ok)
}

type brokenLocker struct {
	locker.Locker
	err error
}

func (b *brokenLocker) Store(c ctx.Ctx, recipient domain.Address, asset domain.Asset, tryDirect bool) error {
	if b.err != nil {
		return b.err
	}
	return b.Locker.Store(c, recipient, asset, tryDirect)
}

type brokenState struct {
	auction.StateRepo
	err error
}

func (b *brokenState) Save(c ctx.Ctx, state *auction.State) error {
	if b.err != nil {
		return b.err
	}
	return b.StateRepo.Save(c, state)
}

type brokenArchive struct {
	auction.ArchiveRepo
	err error
}

func (b *brokenArchive) Insert(c ctx.Ctx, a *auction.Auction) error {
	if b.err != nil {
		return b.err
	}
	return b.ArchiveRepo.Insert(c, a)
}

func (s *engineSuite) TestRefundStoreFailureRejectsBid() {
	s.mint("a")
	s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)

	broken := &brokenLocker{Locker: s.locker, err: errors.New("redis down")}
	s.im.locker = broken
	events := len(s.recorder.Events())

	_, err = s.bid(bob, "100")
	s.Error(err)
	s.Equal(domain.KindInternal, domain.KindOf(err))

	cur := s.current()
	s.Require().NotNil(cur)
	s.Equal(alice, *cur.HighestBidder)
	s.Len(cur.BidHistory, 1)
	s.True(dec("50").Equal(s.im.highestBid.Amount()))
	s.Empty(s.pending(alice))
	s.Len(s.recorder.Events(), events)

	saved, err := s.state.Load(ctx.Background())
	s.Require().NoError(err)
	s.Equal(alice, *saved.Current.HighestBidder)
	s.True(dec("50").Equal(saved.HighestBidVault))

	broken.err = nil
	_, err = s.bid(bob, "100")
	s.Require().NoError(err)
	refund := s.pending(alice)
	s.Require().Len(refund, 1)
	s.requireFunds(refund[0], xrd, "50")
}

func (s *engineSuite) TestStateSaveFailureRejectsBid() {
	s.mint("a")
	s.start()
	s.im.stateRepo = &brokenState{StateRepo: s.state, err: errors.New("mongo down")}

	_, err := s.bid(alice, "50")
	s.Error(err)
	cur := s.current()
	s.Require().NotNil(cur)
	s.False(cur.HasBids())
	s.True(s.im.highestBid.Amount().IsZero())
}

func (s *engineSuite) TestArchiveInsertIsRetried() {
	s.mint("a", "b")
	a := s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)

	broken := &brokenArchive{ArchiveRepo: s.archive, err: errors.New("mongo down")}
	s.im.archiveRepo = broken
	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(alice), alice)
	s.Require().NoError(err)

	_, err = s.archive.FindOne(ctx.Background(), 1)
	s.ErrorIs(err, domain.ErrNotFound)
	archived, err := s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	s.Equal(alice, *archived.HighestBidder)

	saved, err := s.state.Load(ctx.Background())
	s.Require().NoError(err)
	s.Require().Len(saved.Unarchived, 1)
	s.Equal(uint64(1), saved.Unarchived[0].Id)

	// a fresh engine on the same state stores what is still queued
	restored := s.newEngine()
	s.Empty(restored.unarchived)
	stored, err := s.archive.FindOne(ctx.Background(), 1)
	s.Require().NoError(err)
	s.Equal(alice, *stored.HighestBidder)

	broken.err = nil
	_, err = s.bid(bob, "60")
	s.Require().NoError(err)
	s.Empty(s.im.unarchived)
}

func (s *engineSuite) TestArchivedSnapshotIsFrozen() {
	s.mint("a", "b", "c")
	a := s.start()
	_, err := s.bid(alice, "50")
	s.Require().NoError(err)
	s.clock.Set(a.EndTime)
	_, err = s.im.Settle(s.as(alice), alice)
	s.Require().NoError(err)
	first, err := s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)

	second := s.current()
	s.Require().NotNil(second)
	s.Equal(uint64(2), second.Id)
	_, err = s.bid(bob, "80")
	s.Require().NoError(err)
	_, err = s.bid(carol, "200")
	s.Require().NoError(err)
	s.clock.Set(s.current().EndTime)
	_, err = s.im.Settle(s.as(carol), carol)
	s.Require().NoError(err)

	requireFirst := func(got *auction.Auction) {
		s.Require().NotNil(got)
		s.Equal(first.Id, got.Id)
		s.Equal(first.ItemId, got.ItemId)
		s.True(first.EndTime.Equal(got.EndTime))
		s.Equal(alice, *got.HighestBidder)
		s.True(dec("50").Equal(got.Highest()))
		s.Equal(first.BidCount, got.BidCount)
		s.Len(got.BidHistory, len(first.BidHistory))
	}
	again, err := s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	requireFirst(again)
	stored, err := s.archive.FindOne(ctx.Background(), 1)
	s.Require().NoError(err)
	requireFirst(stored)

	third := s.current()
	s.Require().NotNil(third)
	_, err = s.bid(dave, "100")
	s.Require().NoError(err)
	s.clock.Set(s.current().EndTime)
	s.im.current.Id = 1

	_, err = s.im.Settle(s.as(dave), dave)
	s.ErrorIs(err, domain.ErrAuctionArchived)
	s.NotNil(s.current())
	again, err = s.im.CompletedAuction(ctx.Background(), 1)
	s.Require().NoError(err)
	requireFirst(again)
}
