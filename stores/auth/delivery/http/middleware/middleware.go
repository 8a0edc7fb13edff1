package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/delivery"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

type AuthMiddleware struct {
	auth   domain.AuthUsecase
	owners []domain.Address
}

func New(auth domain.AuthUsecase, owners []domain.Address) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		owners: owners,
	}
}

// Auth requires a bearer token and makes its address the caller of the request.
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
		},
	})
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) IsOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address, ok := c.Get("address").(domain.Address)
			if !ok {
				return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
			}
			if !m.isOwner(address) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) isOwner(address domain.Address) bool {
	for _, owner := range m.owners {
		if owner.Equals(address) {
			return true
		}
	}
	return false
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := c.Get("ctx").(ctx.Ctx)
	ads, err := m.auth.ParseToken(cont, key)
	if err != nil {
		cont.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	}
	address := domain.Address(ads)
	c.Set("address", address)
	c.Set("ctx", domain.WithCaller(cont, domain.Caller{Address: address, IsOwner: m.isOwner(address)}))
	return true, nil
}
