package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamblebot/repository/testutil"
)

func TestRakebackRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewRakebackRepository(testDB.DB)
	ctx := context.Background()

	rb, err := repo.Fetch(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, rb)

	require.NoError(t, repo.UpsertAdd(ctx, 7, decimal.RequireFromString("0.3")))
	require.NoError(t, repo.UpsertAdd(ctx, 7, decimal.RequireFromString("0.15")))

	rb, err = repo.Fetch(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, rb)
	assert.Equal(t, "0.45", rb.Amount.String())
	assert.Nil(t, rb.LastClaimed)

	claimed := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	require.NoError(t, repo.ResetAndStamp(ctx, 7, claimed))

	rb, err = repo.Fetch(ctx, 7)
	require.NoError(t, err)
	assert.True(t, rb.Amount.IsZero())
	require.NotNil(t, rb.LastClaimed)
	assert.True(t, claimed.Equal(*rb.LastClaimed))
}
