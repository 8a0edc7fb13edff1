package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
)

func TestMemoryTakeIsCaseInsensitiveAndOnce(t *testing.T) {
	req := require.New(t)
	repo := NewMemory()
	p := locker.NewParcel(domain.NewFunds("xrd", decimal.NewFromInt(1)), false, time.Unix(0, 0))

	req.NoError(repo.Append(mockCtx, "0xABC", p))
	listed, err := repo.List(mockCtx, "0xabc")
	req.NoError(err)
	req.Len(listed, 1)

	taken, err := repo.Take(mockCtx, "0xAbC")
	req.NoError(err)
	req.Equal([]locker.Parcel{p}, taken)

	taken, err = repo.Take(mockCtx, "0xabc")
	req.NoError(err)
	req.Empty(taken)
}
