package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/delivery"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/middleware"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache"
	authMiddleware "github.com/yr12345678/piers-rugyard-auctions/stores/auth/delivery/http/middleware"
)

type handler struct {
	uc auction.UseCase
}

// New registers the auction routes. Archived auctions never change, so their
// responses are served out of archiveCache when one is given.
func New(e *echo.Echo, uc auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware, archiveCache cache.Service) {
	h := &handler{uc: uc}

	completed := []echo.MiddlewareFunc{}
	if archiveCache != nil {
		completed = append(completed, middleware.CacheHttp(archiveCache))
	}

	g := e.Group("/auction")
	g.GET("/current", h.getCurrent)
	g.GET("/completed/:id", h.getCompleted, completed...)
	g.GET("/profit", h.getProfit)
	g.GET("/pending", h.getPendingItems)
	g.GET("/params", h.getParams)
	g.POST("/start", h.start, authMiddleware.Auth())
	g.POST("/bid", h.bid, authMiddleware.Auth())
	g.POST("/settle", h.settle, authMiddleware.Auth())

	a := e.Group("/admin", authMiddleware.Auth(), authMiddleware.IsOwner())
	a.POST("/mint", h.mint)
	a.DELETE("/items/:id", h.deleteItem)
	a.POST("/withdraw", h.withdrawProfits)
	a.POST("/pool", h.updatePool)
	a.POST("/duration", h.updateDuration)
	a.POST("/buffer", h.updateBuffer)
	a.POST("/minIncrease", h.updateMinIncrease)
	a.POST("/flip", h.flip)
	a.POST("/side", h.depositSide)
	a.DELETE("/side/:id", h.withdrawSide)
}

func caller(c echo.Context) domain.Address {
	address, _ := c.Get("address").(domain.Address)
	return address
}

// itemIdParam accepts both "7" and the escaped "#7#" form.
func itemIdParam(c echo.Context) (domain.ItemId, error) {
	raw, err := url.PathUnescape(c.Param("id"))
	if err != nil || raw == "" {
		return "", domain.ErrBadParamInput
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return domain.IntegerItemId(n), nil
	}
	return domain.ItemId(raw), nil
}

func (h *handler) getCurrent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	a, err := h.uc.CurrentAuction(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("uc.CurrentAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) getCompleted(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	a, err := h.uc.CompletedAuction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) getProfit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	profit, err := h.uc.ProfitAmount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	bought, err := h.uc.TotalProceedsBought(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Profit      domain.Funds `json:"profit"`
		TotalBought domain.Funds `json:"totalBought"`
	}{profit, bought}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getPendingItems(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	ids, err := h.uc.PendingItems(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ids)
}

func (h *handler) getParams(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	p, err := h.uc.Params(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p)
}

func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := h.uc.StartNewAuction(ctx); err != nil {
		ctx.WithField("err", err).Warn("uc.StartNewAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	a, err := h.uc.CurrentAuction(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

// bid deposits the posted funds on behalf of the caller.
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Resource domain.ResourceAddress `json:"resource" validate:"required"`
		Amount   decimal.Decimal        `json:"amount" validate:"gt=0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	out, err := h.uc.Bid(ctx, domain.NewFunds(p.Resource, p.Amount), caller(c))
	if err != nil {
		ctx.WithField("err", err).Info("uc.Bid rejected")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, out)
}

func (h *handler) settle(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	out, err := h.uc.Settle(ctx, caller(c))
	if err != nil {
		ctx.WithField("err", err).Info("uc.Settle rejected")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, out)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Items []domain.ItemData `json:"items" validate:"required,min=1,dive"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ids, err := h.uc.MintItems(ctx, p.Items)
	if err != nil {
		ctx.WithField("err", err).Error("uc.MintItems failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, ids)
}

func (h *handler) deleteItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := itemIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.uc.DeleteItem(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, id)
}

func (h *handler) withdrawProfits(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	funds, err := h.uc.WithdrawProfits(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("uc.WithdrawProfits failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, funds)
}

func (h *handler) updatePool(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `json:"address" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.uc.UpdatePoolAddress(ctx, p.Address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getParams(c)
}

type minutesParams struct {
	Minutes int64 `json:"minutes"`
}

func (h *handler) updateDuration(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	p := &minutesParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := h.uc.UpdateAuctionDuration(ctx, p.Minutes); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getParams(c)
}

func (h *handler) updateBuffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	p := &minutesParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := h.uc.UpdateAuctionBuffer(ctx, p.Minutes); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getParams(c)
}

func (h *handler) updateMinIncrease(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Amount decimal.Decimal `json:"amount"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := h.uc.UpdateMinimumBidIncrease(ctx, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.getParams(c)
}

func (h *handler) flip(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	enabled, err := h.uc.FlipStatus(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Enabled bool `json:"enabled"`
	}{enabled}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) depositSide(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &domain.Item{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnprocessableEntity, err)
	}
	if err := h.uc.DepositSideAsset(ctx, *p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, p)
}

func (h *handler) withdrawSide(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := itemIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	item, err := h.uc.WithdrawSideAsset(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, item)
}
