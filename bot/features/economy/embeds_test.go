package economy

import (
	"testing"
	"time"

	"bookie/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEmbed(t *testing.T) {
	at := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	frozen := StateEmbed(models.EconomyState{Frozen: true, FrozenBy: "999", FrozenAt: &at})
	assert.Equal(t, "🧊 Economy Frozen", frozen.Title)
	assert.Contains(t, frozen.Description, "<@999>")
	assert.Contains(t, frozen.Description, "<t:1709316000:R>")

	assert.Equal(t, "🔥 Economy Unfrozen", StateEmbed(models.EconomyState{}).Title)
}

func TestAnalyticsEmbed(t *testing.T) {
	embed := AnalyticsEmbed(&models.EconomyAnalytics{
		TotalUsers:     2,
		TotalReiatsu:   12000,
		AverageReiatsu: 6000,
		Frozen:         true,
		RankDistribution: map[models.Rank]int{
			models.RankAcademyStudent: 1,
			models.RankCaptain:        1,
		},
	})

	assert.Equal(t, "🧊 Frozen", embed.Fields[0].Value)
	assert.Equal(t, "12,000", embed.Fields[3].Value)
	ranks := embed.Fields[len(embed.Fields)-1]
	require.Equal(t, "Ranks", ranks.Name)
	assert.Equal(t, "Academy Student: 1\nCaptain: 1", ranks.Value)
}
