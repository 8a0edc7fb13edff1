package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/delivery"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
	"github.com/yr12345678/piers-rugyard-auctions/middleware"
	authMiddleware "github.com/yr12345678/piers-rugyard-auctions/stores/auth/delivery/http/middleware"
)

type handler struct {
	uc locker.UseCase
}

func New(e *echo.Echo, uc locker.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{uc: uc}
	g := e.Group("/locker")
	g.GET("/:address", h.getPending, middleware.IsValidAddress("address"))
	g.POST("/claim", h.claim, authMiddleware.Auth())
}

func (h *handler) getPending(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	parcels, err := h.uc.PendingDeliveries(ctx, domain.Address(c.Param("address")).ToLower())
	if err != nil {
		ctx.WithField("err", err).Error("uc.PendingDeliveries failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, parcels)
}

func (h *handler) claim(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address, _ := c.Get("address").(domain.Address)
	parcels, err := h.uc.ClaimDeliveries(ctx, address)
	if err != nil {
		ctx.WithField("err", err).Error("uc.ClaimDeliveries failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, parcels)
}
