package quality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/quality"
	"github.com/keddard/tradewinds/internal/trade"
)

func TestMapTier(t *testing.T) {
	testCases := []struct {
		score int
		tier  string
	}{
		{0, "Poor"}, {1, "Poor"}, {2, "Poor"},
		{3, "Common"}, {4, "Common"},
		{5, "Average"}, {6, "Average"},
		{7, "High"}, {8, "High"},
		{9, "Exceptional"}, {10, "Exceptional"}, {15, "Exceptional"},
	}
	for _, tc := range testCases {
		idx, err := quality.MapTier(tc.score, quality.DefaultLadder)
		require.NoError(t, err)
		assert.Equal(t, tc.tier, quality.DefaultLadder[idx].Name, "score %d", tc.score)
	}
}

func TestMapTierLastMatchFallback(t *testing.T) {
	ladder := []quality.Tier{
		{Name: "Low", Max: 3},
		{Name: "High", Max: 6},
	}
	// Scores past every threshold map to the last entry, not an error.
	idx, err := quality.MapTier(99, ladder)
	require.NoError(t, err)
	assert.Equal(t, "High", ladder[idx].Name)

	_, err = quality.MapTier(5, nil)
	require.Error(t, err)
	assert.True(t, trade.IsConfiguration(err))
}

func TestWineBandsCoverRangeExactly(t *testing.T) {
	// Every value in [1,12] maps to exactly one band; nothing outside does.
	seen := make(map[int]string)
	for v := 1; v <= 12; v++ {
		band, err := quality.WineBandFor(v)
		require.NoError(t, err, "value %d", v)
		_, dup := seen[v]
		require.False(t, dup)
		seen[v] = band.Name
	}
	assert.Equal(t, "Swill", seen[1])
	assert.Equal(t, "Passable", seen[2])
	assert.Equal(t, "Passable", seen[3])
	assert.Equal(t, "Average", seen[4])
	assert.Equal(t, "Good", seen[7])
	assert.Equal(t, "Excellent", seen[9])
	assert.Equal(t, "Top Shelf", seen[10])
	assert.Equal(t, "Top Shelf", seen[12])

	for _, v := range []int{0, 13, -4} {
		_, err := quality.WineBandFor(v)
		assert.Error(t, err, "value %d", v)
	}
}

func TestRollWine(t *testing.T) {
	t.Run("plain roll", func(t *testing.T) {
		got, err := quality.RollWine(nil, entropy.FromD10(6))
		require.NoError(t, err)
		assert.Equal(t, 6, got.Roll)
		assert.Equal(t, 6, got.Clamped)
		assert.Equal(t, "Good", got.Band)
		assert.Equal(t, float64(8*quality.CrownPennies), got.PricePennies)
	})

	t.Run("bonus pushes past the die range", func(t *testing.T) {
		bonuses := []quality.BonusPart{{Source: "wine_quality", Amount: 2}}
		got, err := quality.RollWine(bonuses, entropy.FromD10(10))
		require.NoError(t, err)
		assert.Equal(t, 10, got.Roll)
		assert.Equal(t, 12, got.Clamped)
		assert.Equal(t, "Top Shelf", got.Band)
	})

	t.Run("clamped to 12", func(t *testing.T) {
		bonuses := []quality.BonusPart{{Source: "wine_quality", Amount: 5}}
		got, err := quality.RollWine(bonuses, entropy.FromD10(10))
		require.NoError(t, err)
		assert.Equal(t, 12, got.Clamped)
	})
}

func TestRollHonesty(t *testing.T) {
	t.Run("honest", func(t *testing.T) {
		got := quality.RollHonesty(0.25, entropy.NewFixed(0.9))
		assert.False(t, got.Dishonest)
		assert.Zero(t, got.Inflation)
	})

	t.Run("dishonest inflation in [2,4]", func(t *testing.T) {
		for _, f := range []float64{0, 0.4, 0.99} {
			got := quality.RollHonesty(0.25, entropy.NewFixed(0.1, f))
			require.True(t, got.Dishonest)
			assert.GreaterOrEqual(t, got.Inflation, 2)
			assert.LessOrEqual(t, got.Inflation, 4)
		}
	})
}

func TestInflateTier(t *testing.T) {
	// Average (index 2) inflated by 2 → Exceptional would be index 4.
	idx, err := quality.InflateTier(2, 2, quality.DefaultLadder)
	require.NoError(t, err)
	assert.Equal(t, "Exceptional", quality.DefaultLadder[idx].Name)

	// Clamped at the top tier.
	idx, err = quality.InflateTier(3, 4, quality.DefaultLadder)
	require.NoError(t, err)
	assert.Equal(t, len(quality.DefaultLadder)-1, idx)

	_, err = quality.InflateTier(9, 2, quality.DefaultLadder)
	require.Error(t, err)
	assert.True(t, trade.IsValidation(err))
}

func TestInflateWine(t *testing.T) {
	actual, err := quality.RollWine(nil, entropy.FromD10(8))
	require.NoError(t, err)
	assert.Equal(t, "Excellent", actual.Band)

	claimed, err := quality.InflateWine(actual, 3)
	require.NoError(t, err)
	assert.Equal(t, 11, claimed.Clamped)
	assert.Equal(t, "Top Shelf", claimed.Band)
	// The true result is untouched.
	assert.Equal(t, 8, actual.Clamped)
	assert.Equal(t, "Excellent", actual.Band)

	// Inflation caps at 12.
	claimed, err = quality.InflateWine(actual, 9)
	require.NoError(t, err)
	assert.Equal(t, 12, claimed.Clamped)
}
