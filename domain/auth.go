package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
)

const callerKey = "caller"

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken issues a token for address once signature proves control of it.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
	SigningMessage(address Address) string
}

// Caller is the authenticated party of the current operation.
type Caller struct {
	Address Address
	IsOwner bool
}

func WithCaller(parent ctx.Ctx, caller Caller) ctx.Ctx {
	return ctx.WithValue(parent, callerKey, caller)
}

func CallerFrom(c ctx.Ctx) (Caller, bool) {
	caller, ok := c.Value(callerKey).(Caller)
	return caller, ok
}

// Authorizer is the access-control check consumed by restricted operations.
type Authorizer interface {
	// AuthorizeOwner fails unless the caller holds the owner role.
	AuthorizeOwner(ctx ctx.Ctx) error
	// AuthorizeAccount fails unless the caller controls account.
	AuthorizeAccount(ctx ctx.Ctx, account Address) error
}
