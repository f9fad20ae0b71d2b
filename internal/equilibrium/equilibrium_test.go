package equilibrium_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/equilibrium"
	"github.com/keddard/tradewinds/internal/trade"
)

var grain = &trade.CargoType{
	Name: "Grain", Category: trade.TagGrain,
	SeasonalPrices: map[trade.Season]float64{
		trade.SeasonSpring: 24, trade.SeasonSummer: 18,
		trade.SeasonAutumn: 12, trade.SeasonWinter: 30,
	},
}

func TestNeutral(t *testing.T) {
	n := equilibrium.Neutral()
	assert.Equal(t, equilibrium.StateBalanced, n.State)
	assert.Zero(t, n.PricePercent)
	assert.Equal(t, 1.0, n.QuantityFactor)
	assert.Nil(t, n.PriceModifier())
}

func TestEquilibriumFailsSoft(t *testing.T) {
	e := equilibrium.NewEngine(1)
	sett := &trade.Settlement{Name: "Test", Size: trade.SizeTown, Wealth: 3}

	assert.Equal(t, equilibrium.Neutral(), e.Equilibrium(nil, grain, trade.SeasonSpring))
	assert.Equal(t, equilibrium.Neutral(), e.Equilibrium(sett, nil, trade.SeasonSpring))
	assert.Equal(t, equilibrium.Neutral(), e.Equilibrium(sett, grain, "monsoon"))

	var nilEngine *equilibrium.Engine
	assert.Equal(t, equilibrium.Neutral(), nilEngine.Equilibrium(sett, grain, trade.SeasonSpring))
}

func TestEquilibriumDeterministic(t *testing.T) {
	sett := &trade.Settlement{
		Name: "Auerswald", Size: trade.SizeSmallTown, Wealth: 3,
		Production: []trade.Tag{trade.TagGrain},
	}

	a := equilibrium.NewEngine(42)
	b := equilibrium.NewEngine(42)
	for _, season := range trade.Seasons {
		assert.Equal(t, a.Equilibrium(sett, grain, season), b.Equilibrium(sett, grain, season),
			"season %s", season)
	}
}

func TestEquilibriumStatesAreConsistent(t *testing.T) {
	e := equilibrium.NewEngine(7)
	settlements := []*trade.Settlement{
		{Name: "A", Size: trade.SizeVillage, Wealth: 1, Production: []trade.Tag{trade.TagGrain}},
		{Name: "B", Size: trade.SizeTown, Wealth: 3, Production: []trade.Tag{trade.TagTrade}},
		{Name: "C", Size: trade.SizeCityState, Wealth: 5, Production: []trade.Tag{trade.TagTrade, trade.TagFish}},
	}

	for _, sett := range settlements {
		for _, season := range trade.Seasons {
			adj := e.Equilibrium(sett, grain, season)
			switch adj.State {
			case equilibrium.StateBalanced:
				assert.Zero(t, adj.PricePercent)
				assert.Equal(t, 1.0, adj.QuantityFactor)
			case equilibrium.StateBlocked:
				assert.Zero(t, adj.QuantityFactor)
			case equilibrium.StateOversupplied:
				assert.Negative(t, adj.PricePercent)
				assert.Greater(t, adj.QuantityFactor, 1.0)
			case equilibrium.StateUndersupplied, equilibrium.StateDesperate:
				assert.Positive(t, adj.PricePercent)
				assert.Less(t, adj.QuantityFactor, 1.0)
			default:
				t.Fatalf("unexpected state %s", adj.State)
			}
		}
	}
}

func TestGenerateMerchants(t *testing.T) {
	src := entropy.NewSeeded(9)

	t.Run("counts follow the table", func(t *testing.T) {
		sett := &trade.Settlement{
			Name: "Stimmigen", Size: trade.SizeVillage, Wealth: 2,
			Production: []trade.Tag{trade.TagGrain},
		}
		merchants, err := equilibrium.GenerateMerchants(sett, equilibrium.RoleBuyer, nil, src)
		require.NoError(t, err)
		assert.Len(t, merchants, 1)
	})

	t.Run("trade settlements attract one extra", func(t *testing.T) {
		sett := &trade.Settlement{
			Name: "Ubersreik", Size: trade.SizeTown, Wealth: 3,
			Production: []trade.Tag{trade.TagTrade, trade.TagMetal},
		}
		merchants, err := equilibrium.GenerateMerchants(sett, equilibrium.RoleBuyer, nil, src)
		require.NoError(t, err)
		assert.Len(t, merchants, 4) // table 3 + trade bonus
	})

	t.Run("custom count table", func(t *testing.T) {
		counts := equilibrium.CountTable{
			equilibrium.RoleSeller: {1: 5},
		}
		sett := &trade.Settlement{
			Name: "Stimmigen", Size: trade.SizeVillage, Wealth: 2,
			Production: []trade.Tag{trade.TagGrain},
		}
		merchants, err := equilibrium.GenerateMerchants(sett, equilibrium.RoleSeller, counts, src)
		require.NoError(t, err)
		assert.Len(t, merchants, 5)
	})

	t.Run("each merchant is individual", func(t *testing.T) {
		sett := &trade.Settlement{
			Name: "Altdorf", Size: trade.SizeCityState, Wealth: 5,
			Production: []trade.Tag{trade.TagTrade},
		}
		merchants, err := equilibrium.GenerateMerchants(sett, equilibrium.RoleBuyer, nil, src)
		require.NoError(t, err)
		require.Len(t, merchants, 5)
		ids := make(map[string]bool)
		for _, m := range merchants {
			assert.NotEmpty(t, m.Name)
			assert.GreaterOrEqual(t, m.Negotiation, 1)
			assert.LessOrEqual(t, m.Negotiation, 10)
			ids[m.ID.String()] = true
			if m.Honesty.Dishonest {
				assert.GreaterOrEqual(t, m.Honesty.Inflation, 2)
				assert.LessOrEqual(t, m.Honesty.Inflation, 4)
			}
		}
		assert.Len(t, ids, 5, "merchant IDs are unique")
	})

	t.Run("invalid settlement errors", func(t *testing.T) {
		sett := &trade.Settlement{Name: "Bad", Size: "Metropolis", Wealth: 3}
		_, err := equilibrium.GenerateMerchants(sett, equilibrium.RoleBuyer, nil, src)
		require.Error(t, err)
	})
}
