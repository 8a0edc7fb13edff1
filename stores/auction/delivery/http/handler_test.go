package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yr12345678/piers-rugyard-auctions/base/validator"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction/mocks"
	"github.com/yr12345678/piers-rugyard-auctions/middleware"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache/provider/primitive"
	authMiddleware "github.com/yr12345678/piers-rugyard-auctions/stores/auth/delivery/http/middleware"
	authUsecase "github.com/yr12345678/piers-rugyard-auctions/stores/auth/usecase"
)

const (
	secret = "jwt-secret"
	owner  = domain.Address("0x0000000000000000000000000000000000000001")
	alice  = domain.Address("0xa11ce00000000000000000000000000000000002")
)

type auctionHandlerSuite struct {
	suite.Suite

	e  *echo.Echo
	uc *mocks.UseCase
}

func TestAuctionHandlerSuite(t *testing.T) {
	suite.Run(t, new(auctionHandlerSuite))
}

func (s *auctionHandlerSuite) SetupTest() {
	s.uc = &mocks.UseCase{}
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware(nil).AddContext())

	archiveCache := cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "completedAuction",
		Cache: primitive.NewPrimitive("completedAuction", 1),
	})
	am := authMiddleware.New(authUsecase.New(secret, ""), []domain.Address{owner})
	New(s.e, s.uc, am, archiveCache)
}

func (s *auctionHandlerSuite) TearDownTest() {
	s.uc.AssertExpectations(s.T())
}

func (s *auctionHandlerSuite) token(address domain.Address) string {
	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	tkn, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	s.Require().NoError(err)
	return tkn
}

func (s *auctionHandlerSuite) do(method, target, body string, as domain.Address) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if as != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(as))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func callerIs(address domain.Address) interface{} {
	return mock.MatchedBy(func(c interface{}) bool {
		v, ok := c.(interface{ Value(interface{}) interface{} })
		if !ok {
			return false
		}
		caller, ok := v.Value("caller").(domain.Caller)
		return ok && caller.Address.Equals(address)
	})
}

func (s *auctionHandlerSuite) TestGetCurrent() {
	start := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	s.uc.On("CurrentAuction", mock.Anything).Return(auction.New(1, "#1#", start, 360*time.Minute), nil).Once()

	rec := s.do(http.MethodGet, "/auction/current", "", "")
	s.Equal(http.StatusOK, rec.Code)
	res := struct {
		Data auction.Auction `json:"data"`
	}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Equal(uint64(1), res.Data.Id)
	s.Equal(domain.ItemId("#1#"), res.Data.ItemId)
	s.Equal(start.Add(360*time.Minute), res.Data.EndTime.UTC())
}

func (s *auctionHandlerSuite) TestBid() {
	s.uc.On("Bid", callerIs(alice), mock.MatchedBy(func(f domain.Funds) bool {
		return f.Resource == "xrd" && f.Amount.Equal(decimal.NewFromInt(100))
	}), alice.ToLower()).Return(&auction.Outcome{}, nil).Once()

	rec := s.do(http.MethodPost, "/auction/bid", `{"resource":"xrd","amount":"100"}`, alice)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *auctionHandlerSuite) TestBidErrors() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/auction/bid", `{"resource":"xrd","amount":"100"}`, "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/auction/bid", `{"resource":"xrd","amount":"-1"}`, alice).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/auction/bid", `{"amount":"1"}`, alice).Code)

	s.uc.On("Bid", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrBidTooLow).Once()
	rec := s.do(http.MethodPost, "/auction/bid", `{"resource":"xrd","amount":"1"}`, alice)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), domain.ErrBidTooLow.Error())
}

func (s *auctionHandlerSuite) TestSettle() {
	s.uc.On("Settle", callerIs(alice), alice.ToLower()).Return(nil, domain.ErrAuctionNotEnded).Once()
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/auction/settle", "", alice).Code)

	reward := domain.NewFunds("xrd", decimal.RequireFromString("7.5"))
	s.uc.On("Settle", mock.Anything, alice.ToLower()).Return(&auction.Outcome{Reward: &reward}, nil).Once()
	rec := s.do(http.MethodPost, "/auction/settle", "", alice)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"7.5"`)
}

func (s *auctionHandlerSuite) TestCompletedIsCached() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/auction/completed/abc", "", "").Code)

	s.uc.On("CompletedAuction", mock.Anything, uint64(9)).Return(nil, domain.ErrAuctionNotFound).Twice()
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/auction/completed/9", "", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/auction/completed/9", "", "").Code)

	a := auction.New(1, "#1#", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), time.Hour)
	s.uc.On("CompletedAuction", mock.Anything, uint64(1)).Return(a, nil).Once()
	first := s.do(http.MethodGet, "/auction/completed/1", "", "")
	s.Equal(http.StatusOK, first.Code)
	second := s.do(http.MethodGet, "/auction/completed/1", "", "")
	s.Equal(http.StatusOK, second.Code)
	s.Equal(first.Body.String(), second.Body.String())
}

func (s *auctionHandlerSuite) TestAdminRequiresOwner() {
	body := `{"items":[{"keyImageUrl":"https://rugyard.example/1.png","name":"first"}]}`
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/admin/mint", body, "").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/admin/mint", body, alice).Code)

	s.uc.On("MintItems", callerIs(owner), []domain.ItemData{{KeyImageUrl: "https://rugyard.example/1.png", Name: "first"}}).
		Return([]domain.ItemId{"#1#"}, nil).Once()
	rec := s.do(http.MethodPost, "/admin/mint", body, owner)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), "#1#")

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/admin/mint", `{"items":[{"name":"no image"}]}`, owner).Code)
}

func (s *auctionHandlerSuite) TestAdminItems() {
	s.uc.On("DeleteItem", mock.Anything, domain.ItemId("#7#")).Return(nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/admin/items/7", "", owner).Code)

	s.uc.On("DeleteItem", mock.Anything, domain.ItemId("#8#")).Return(domain.ErrItemNotAvailable).Once()
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/admin/items/%238%23", "", owner).Code)

	s.uc.On("WithdrawSideAsset", mock.Anything, domain.ItemId("piers")).Return(domain.Item{Resource: "names", Id: "piers"}, nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/admin/side/piers", "", owner).Code)

	side := domain.Item{Resource: "names", Id: "rugyard", Data: domain.ItemData{Name: "rugyard"}}
	s.uc.On("DepositSideAsset", mock.Anything, side).Return(nil).Once()
	body, err := json.Marshal(side)
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/admin/side", string(body), owner).Code)
}

func (s *auctionHandlerSuite) TestAdminParams() {
	params := auction.DefaultParams()
	s.uc.On("Params", mock.Anything).Return(params, nil)

	s.uc.On("UpdateAuctionDuration", mock.Anything, int64(120)).Return(nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/duration", `{"minutes":120}`, owner).Code)

	s.uc.On("UpdateAuctionBuffer", mock.Anything, int64(0)).Return(domain.ErrInvalidAuctionBuffer).Once()
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/admin/buffer", `{"minutes":0}`, owner).Code)

	s.uc.On("UpdateMinimumBidIncrease", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(25))
	})).Return(nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/minIncrease", `{"amount":"25"}`, owner).Code)

	s.uc.On("UpdatePoolAddress", mock.Anything, domain.Address("0xpool")).Return(nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/pool", `{"address":"0xpool"}`, owner).Code)

	s.uc.On("FlipStatus", mock.Anything).Return(false, nil).Once()
	rec := s.do(http.MethodPost, "/admin/flip", "", owner)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"enabled":false`)

	profit := domain.NewFunds("early", decimal.NewFromInt(190))
	s.uc.On("WithdrawProfits", mock.Anything).Return(profit, nil).Once()
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/admin/withdraw", "", owner).Code)
}

func (s *auctionHandlerSuite) TestGetters() {
	s.uc.On("ProfitAmount", mock.Anything).Return(domain.NewFunds("early", decimal.NewFromInt(10)), nil).Once()
	s.uc.On("TotalProceedsBought", mock.Anything).Return(domain.NewFunds("early", decimal.NewFromInt(30)), nil).Once()
	rec := s.do(http.MethodGet, "/auction/profit", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"totalBought"`)

	s.uc.On("PendingItems", mock.Anything).Return([]domain.ItemId{"#2#"}, nil).Once()
	rec = s.do(http.MethodGet, "/auction/pending", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "#2#")

	s.uc.On("StartNewAuction", mock.Anything).Return(domain.ErrNoItemsAvailable).Once()
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/auction/start", "", alice).Code)
}
