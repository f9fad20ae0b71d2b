package trade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keddard/tradewinds/internal/trade"
)

func TestParseSeason(t *testing.T) {
	for _, s := range []string{"spring", "summer", "autumn", "winter"} {
		season, err := trade.ParseSeason(s)
		require.NoError(t, err)
		assert.Equal(t, trade.Season(s), season)
	}

	_, err := trade.ParseSeason("monsoon")
	require.Error(t, err)
	assert.True(t, trade.IsConfiguration(err))
}

func TestSizeRating(t *testing.T) {
	testCases := []struct {
		size   trade.Size
		rating int
	}{
		{trade.SizeVillage, 1},
		{trade.SizeSmallTown, 2},
		{trade.SizeTown, 3},
		{trade.SizeCity, 4},
		{trade.SizeCityState, 4},
		{trade.SizeFort, 2},
		{trade.SizeMine, 1},
	}
	for _, tc := range testCases {
		t.Run(string(tc.size), func(t *testing.T) {
			rating, err := tc.size.Rating()
			require.NoError(t, err)
			assert.Equal(t, tc.rating, rating)
		})
	}

	_, err := trade.Size("Metropolis").Rating()
	require.Error(t, err)
	assert.True(t, trade.IsConfiguration(err))
}

func TestWealthModifier(t *testing.T) {
	expected := map[int]float64{1: 0.50, 2: 0.80, 3: 1.00, 4: 1.05, 5: 1.10}
	for wealth, want := range expected {
		mod, err := trade.WealthModifier(wealth)
		require.NoError(t, err)
		assert.Equal(t, want, mod, "wealth %d", wealth)
	}

	for _, wealth := range []int{0, 6, -1} {
		_, err := trade.WealthModifier(wealth)
		require.Error(t, err, "wealth %d", wealth)
		assert.True(t, trade.IsValidation(err))
	}
}

func TestResolveProperties(t *testing.T) {
	sett := &trade.Settlement{
		Name: "Ubersreik", Size: trade.SizeTown, Wealth: 3,
		Production: []trade.Tag{trade.TagTrade, trade.TagMetal},
	}

	props, err := trade.ResolveProperties(sett)
	require.NoError(t, err)
	assert.Equal(t, 3, props.SizeNumeric)
	assert.Equal(t, 1.00, props.WealthModifier)
	assert.Equal(t, "Comfortable", props.WealthDescription)
	assert.True(t, props.Trade)

	_, err = trade.ResolveProperties(nil)
	require.Error(t, err)
	assert.True(t, trade.IsValidation(err))
}

func TestCargoTypeValidate(t *testing.T) {
	cargo := trade.CargoType{
		Name: "Grain", Category: trade.TagGrain,
		SeasonalPrices: map[trade.Season]float64{
			trade.SeasonSpring: 24, trade.SeasonSummer: 18,
			trade.SeasonAutumn: 12, trade.SeasonWinter: 30,
		},
	}
	require.NoError(t, cargo.Validate())

	missing := cargo
	missing.SeasonalPrices = map[trade.Season]float64{trade.SeasonSpring: 24}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, trade.IsValidation(err))

	negative := cargo
	negative.SeasonalPrices = map[trade.Season]float64{
		trade.SeasonSpring: 24, trade.SeasonSummer: -1,
		trade.SeasonAutumn: 12, trade.SeasonWinter: 30,
	}
	assert.Error(t, negative.Validate())
}

func TestUnknownTags(t *testing.T) {
	sett := &trade.Settlement{
		Name: "Odd", Size: trade.SizeVillage, Wealth: 1,
		Production: []trade.Tag{trade.TagGrain, "Moonrock"},
	}
	assert.Equal(t, []trade.Tag{"Moonrock"}, sett.UnknownTags())
}
