package repository

import (
	"context"
	"testing"

	"bookie/models"
	"bookie/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_SaveAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	store := NewPostgresStore(testDB.DB)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		snapshot, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Accounts)
	})

	t.Run("upsert keeps a single document", func(t *testing.T) {
		account := testutil.CreateTestAccount("1", "ichigo")
		offer := testutil.CreateTestOffer("M1", "A", "B", 25)
		testutil.AddTestBet(offer, account, models.TeamOne, 400)
		snapshot := testutil.CreateTestSnapshot([]*models.UserAccount{account}, []*models.Offer{offer})
		snapshot.SavedAt = testutil.FixedTime

		require.NoError(t, store.Save(ctx, snapshot))

		account.Balance = 123
		require.NoError(t, store.Save(ctx, snapshot))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(123), loaded.Accounts["1"].Balance)
		assert.Equal(t, int64(500), loaded.Offers["M1"].Bets["1"].PotentialReturn)

		count, err := store.SaveCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
