package repository

import (
	"context"
	"testing"
	"time"

	"bookie/models"
	"bookie/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository_ArchiveMovesOffer(t *testing.T) {
	ctx := context.Background()
	repo := newOfferRepository(models.NewSnapshot())

	require.NoError(t, repo.Create(ctx, testutil.CreateTestOffer("M1", "A", "B", 50)))
	require.NoError(t, repo.Archive(ctx, "M1"))

	active, err := repo.GetActive(ctx, "M1")
	require.NoError(t, err)
	assert.Nil(t, active)

	archived, err := repo.GetArchived(ctx, "M1")
	require.NoError(t, err)
	require.NotNil(t, archived)

	exists, err := repo.Exists(ctx, "M1")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.Archive(ctx, "M1"))
	assert.Error(t, repo.Create(ctx, testutil.CreateTestOffer("M1", "C", "D", 10)))
}

func TestOfferRepository_ListOrdering(t *testing.T) {
	ctx := context.Background()
	snapshot := models.NewSnapshot()
	repo := newOfferRepository(snapshot)

	for i, id := range []string{"M3", "M1", "M2"} {
		offer := testutil.CreateTestOffer(id, "A", "B", 10)
		offer.CreatedAt = testutil.FixedTime.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, offer))
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []string{"M3", "M1", "M2"}, []string{active[0].MatchID, active[1].MatchID, active[2].MatchID})

	for i, id := range []string{"M3", "M1", "M2"} {
		offer := snapshot.Offers[id]
		completed := testutil.FixedTime.Add(time.Duration(10-i) * time.Hour)
		offer.CompletedAt = &completed
		offer.Status = models.OfferStatusCompleted
		require.NoError(t, repo.Archive(ctx, id))
	}

	history, err := repo.ListArchived(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "M3", history[0].MatchID)
	assert.Equal(t, "M1", history[1].MatchID)

	all, err := repo.ListArchived(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAccountRepository_UpdateStampsTime(t *testing.T) {
	ctx := context.Background()
	later := testutil.FixedTime.Add(time.Hour)
	repo := newAccountRepository(models.NewSnapshot(), func() time.Time { return later })

	account := testutil.CreateTestAccount("1", "ichigo")
	require.NoError(t, repo.Create(ctx, account))
	assert.Error(t, repo.Create(ctx, testutil.CreateTestAccount("1", "dup")))

	account.Balance = 42
	require.NoError(t, repo.Update(ctx, account))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Balance)
	assert.Equal(t, later, got.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, "1"))
	got, err = repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Error(t, repo.Update(ctx, account))
}
