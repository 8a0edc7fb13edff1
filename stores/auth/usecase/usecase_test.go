package usecase_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/ethereum"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	privateKey, publicKey, err := ethereum.GenerateKey()
	require.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(*publicKey).Hex())

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", "")
	msg := u.SigningMessage(address)
	signature, err := crypto.Sign(accounts.TextHash([]byte(msg)), privateKey)
	require.NoError(t, err)

	tkn, err := u.SignToken(ctx, address, hexutil.Encode(signature))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, address.ToLowerStr(), ads)

	_, err = usecase.New("other-secret", "").ParseToken(ctx, tkn)
	assert.Error(t, err)
}

func TestSignTokenRejectsForeignSignature(t *testing.T) {
	privateKey, _, err := ethereum.GenerateKey()
	require.NoError(t, err)
	_, otherKey, err := ethereum.GenerateKey()
	require.NoError(t, err)
	other := domain.Address(crypto.PubkeyToAddress(*otherKey).Hex())

	u := usecase.New("jwt-secret", "")
	signature, err := crypto.Sign(accounts.TextHash([]byte(u.SigningMessage(other))), privateKey)
	require.NoError(t, err)

	_, err = u.SignToken(ctx.Background(), other, hexutil.Encode(signature))
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = u.SignToken(ctx.Background(), "0x000", hexutil.Encode(signature))
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = u.SignToken(ctx.Background(), other, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestAuthorizer(t *testing.T) {
	a := usecase.NewAuthorizer([]domain.Address{"0xOwner"})
	anon := ctx.Background()
	owner := domain.WithCaller(ctx.Background(), domain.Caller{Address: "0xowner"})
	alice := domain.WithCaller(ctx.Background(), domain.Caller{Address: "0xalice"})
	flagged := domain.WithCaller(ctx.Background(), domain.Caller{Address: "0xbob", IsOwner: true})

	assert.ErrorIs(t, a.AuthorizeOwner(anon), domain.ErrUnauthorized)
	assert.NoError(t, a.AuthorizeOwner(owner))
	assert.NoError(t, a.AuthorizeOwner(flagged))
	assert.ErrorIs(t, a.AuthorizeOwner(alice), domain.ErrForbidden)

	assert.NoError(t, a.AuthorizeAccount(alice, "0xALICE"))
	assert.ErrorIs(t, a.AuthorizeAccount(alice, "0xbob"), domain.ErrNotAccountOwner)
	assert.ErrorIs(t, a.AuthorizeAccount(owner, "0xalice"), domain.ErrNotAccountOwner)
	assert.ErrorIs(t, a.AuthorizeAccount(anon, "0xalice"), domain.ErrUnauthorized)
}
