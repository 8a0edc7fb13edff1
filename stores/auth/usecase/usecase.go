package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/xerrors"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/ethereum"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/validator"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
)

const DefaultSigningMessage = "Sign in to Piers Rugyard auctions as %s"

type impl struct {
	jwtSecret  []byte
	msgTmpl    string
	expiration time.Duration
}

func New(jwtSecret, signingMsgTemplate string) domain.AuthUsecase {
	if signingMsgTemplate == "" {
		signingMsgTemplate = DefaultSigningMessage
	}
	return &impl{
		jwtSecret:  []byte(jwtSecret),
		msgTmpl:    signingMsgTemplate,
		expiration: 24 * time.Hour,
	}
}

func (im *impl) SigningMessage(address domain.Address) string {
	return fmt.Sprintf(im.msgTmpl, address.ToLowerStr())
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !validator.IsValidAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}

	ok, err := ethereum.ValidateMsgSignature([]byte(im.SigningMessage(address)), signature, string(address))
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Warn("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.expiration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return claims.Address, nil
		}
	}
	if err == nil {
		err = domain.ErrUnauthorized
	}
	return "", err
}
