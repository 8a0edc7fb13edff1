package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	hcdomain "github.com/yr12345678/piers-rugyard-auctions/domain/healthcheck"
)

type fakeRepo map[string]error

func (f fakeRepo) Ping(ctx.Ctx) map[string]error { return f }

func TestCheck(t *testing.T) {
	report, err := New(fakeRepo{"mongo": nil, "redis": nil}, nil).Check(ctx.Background())
	require.NoError(t, err)
	assert.True(t, report.Healthy)
	assert.Equal(t, map[string]string{"mongo": "ok", "redis": "ok"}, report.Backends)

	report, err = New(fakeRepo{"mongo": nil, "redis": errors.New("connection refused")}, nil).Check(ctx.Background())
	require.ErrorIs(t, err, hcdomain.ErrUnhealthy)
	assert.False(t, report.Healthy)
	assert.Equal(t, "connection refused", report.Backends["redis"])
	assert.Equal(t, "ok", report.Backends["mongo"])
}

func TestCheckNoBackends(t *testing.T) {
	report, err := New(fakeRepo{}, nil).Check(ctx.Background())
	require.NoError(t, err)
	assert.True(t, report.Healthy)
	assert.Empty(t, report.Backends)
}
