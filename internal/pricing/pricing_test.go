package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keddard/tradewinds/internal/pricing"
	"github.com/keddard/tradewinds/internal/trade"
)

type fakeCargo map[string]*trade.CargoType

func (f fakeCargo) CargoType(name string) (*trade.CargoType, error) {
	cargo, ok := f[name]
	if !ok {
		return nil, trade.NewNotFound("cargo type " + name)
	}
	return cargo, nil
}

func testEngine() *pricing.Engine {
	return pricing.NewEngine(fakeCargo{
		"Grain": {
			Name: "Grain", Category: trade.TagGrain, UnitSize: 1,
			SeasonalPrices: map[trade.Season]float64{
				trade.SeasonSpring: 24, trade.SeasonSummer: 18,
				trade.SeasonAutumn: 12, trade.SeasonWinter: 30,
			},
		},
		"Metalwork": {
			Name: "Metalwork", Category: trade.TagMetal, UnitSize: 10,
			SeasonalPrices: map[trade.Season]float64{
				trade.SeasonSpring: 120, trade.SeasonSummer: 120,
				trade.SeasonAutumn: 126, trade.SeasonWinter: 132,
			},
			QualityTiers: []trade.QualityTier{
				{Name: "Poor", Max: 2, Multiplier: 0.6},
				{Name: "Average", Max: 6, Multiplier: 1.0},
				{Name: "Exceptional", Max: 99, Multiplier: 1.8},
			},
		},
	})
}

func TestBasePrice(t *testing.T) {
	e := testEngine()

	price, err := e.BasePrice("Grain", trade.SeasonAutumn, "")
	require.NoError(t, err)
	assert.Equal(t, 12.0, price)

	price, err = e.BasePrice("Metalwork", trade.SeasonSpring, "Exceptional")
	require.NoError(t, err)
	assert.Equal(t, 216.0, price)

	_, err = e.BasePrice("Silk", trade.SeasonSpring, "")
	require.Error(t, err)
	assert.True(t, trade.IsNotFound(err))

	_, err = e.BasePrice("Grain", trade.Season("monsoon"), "")
	require.Error(t, err)
	assert.True(t, trade.IsConfiguration(err))

	_, err = e.BasePrice("Metalwork", trade.SeasonSpring, "Legendary")
	require.Error(t, err)
	assert.True(t, trade.IsNotFound(err))
}

// Every breakdown must reproduce its final price from the modifier list.
func assertRoundTrip(t *testing.T, b *pricing.Breakdown) {
	t.Helper()
	sum := b.BasePrice
	for _, m := range b.Modifiers {
		sum += m.Amount
	}
	assert.InDelta(t, b.FinalUnitPrice, sum, 0.02, "final = base + sum(modifiers)")
	assert.Equal(t, math.Round(b.FinalUnitPrice*float64(b.TotalUnits)), b.TotalPrice,
		"total = round(final unit price * units)")
}

func TestBuyBreakdown(t *testing.T) {
	e := testEngine()

	t.Run("no modifiers", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{})
		require.NoError(t, err)
		assert.Equal(t, 24.0, b.BasePrice)
		assert.Equal(t, 24.0, b.FinalUnitPrice)
		assert.Equal(t, 10, b.TotalUnits)
		assert.Equal(t, 240.0, b.TotalPrice)
		assert.Empty(t, b.Modifiers)
		assertRoundTrip(t, b)
	})

	t.Run("partial purchase surcharge", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{Partial: true})
		require.NoError(t, err)
		require.Len(t, b.Modifiers, 1)
		assert.Equal(t, pricing.ModifierPartialPurchase, b.Modifiers[0].Type)
		assert.Equal(t, 2.4, b.Modifiers[0].Amount)
		assert.Equal(t, 26.4, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("successful haggle discounts ten percent", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{
			Haggle: &pricing.HaggleResult{Success: true},
		})
		require.NoError(t, err)
		assert.Equal(t, 21.6, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("talent doubles the discount", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{
			Haggle: &pricing.HaggleResult{Success: true, Talent: true},
		})
		require.NoError(t, err)
		assert.Equal(t, 19.2, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("failed haggle changes nothing", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{
			Haggle: &pricing.HaggleResult{},
		})
		require.NoError(t, err)
		assert.Equal(t, 24.0, b.FinalUnitPrice)
		require.Len(t, b.Modifiers, 1)
		assert.Zero(t, b.Modifiers[0].Amount)
		assertRoundTrip(t, b)
	})

	t.Run("partial then haggle stack in order", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 10, trade.SeasonSpring, pricing.BuyOptions{
			Partial: true,
			Haggle:  &pricing.HaggleResult{Success: true},
		})
		require.NoError(t, err)
		require.Len(t, b.Modifiers, 2)
		assert.Equal(t, pricing.ModifierPartialPurchase, b.Modifiers[0].Type)
		assert.Equal(t, pricing.ModifierHaggle, b.Modifiers[1].Type)
		// 24 * 1.1 * 0.9 = 23.76
		assert.Equal(t, 23.76, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("unit size drives total units", func(t *testing.T) {
		b, err := e.BuyBreakdown("Metalwork", 25, trade.SeasonSpring, pricing.BuyOptions{})
		require.NoError(t, err)
		assert.Equal(t, 3, b.TotalUnits) // ceil(25/10)
		assert.Equal(t, 360.0, b.TotalPrice)
	})

	t.Run("total follows the rounded unit price", func(t *testing.T) {
		// 24 * 1.12345 = 26.9628 rounds to 26.96; at 1000 units the total must
		// be 26960, not round(26962.8).
		b, err := e.BuyBreakdown("Grain", 1000, trade.SeasonSpring, pricing.BuyOptions{
			Extra: []pricing.Modifier{{
				Type:        pricing.ModifierEquilibrium,
				Description: "market undersupplied",
				Percent:     12.345,
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, 26.96, b.FinalUnitPrice)
		assert.Equal(t, 26960.0, b.TotalPrice)
		assertRoundTrip(t, b)
	})

	t.Run("seasonal comparison", func(t *testing.T) {
		b, err := e.BuyBreakdown("Grain", 1, trade.SeasonSpring, pricing.BuyOptions{})
		require.NoError(t, err)
		require.NotNil(t, b.Seasonal)
		assert.Equal(t, trade.SeasonAutumn, b.Seasonal.BestBuy)
		assert.Equal(t, trade.SeasonWinter, b.Seasonal.BestSell)
		assert.Equal(t, 30.0, b.Seasonal.Prices[trade.SeasonWinter])
	})

	t.Run("bad quantity", func(t *testing.T) {
		_, err := e.BuyBreakdown("Grain", 0, trade.SeasonSpring, pricing.BuyOptions{})
		require.Error(t, err)
		assert.True(t, trade.IsValidation(err))
	})
}

func TestSellBreakdown(t *testing.T) {
	e := testEngine()
	sett := &trade.Settlement{
		Name: "Stimmigen", Size: trade.SizeVillage, Wealth: 2,
		Production: []trade.Tag{trade.TagGrain},
	}

	t.Run("wealth modifier applies", func(t *testing.T) {
		b, err := e.SellBreakdown("Grain", 10, trade.SeasonSpring, sett, pricing.SellOptions{})
		require.NoError(t, err)
		require.Len(t, b.Modifiers, 1)
		assert.Equal(t, pricing.ModifierWealth, b.Modifiers[0].Type)
		// 24 * 0.8 = 19.2
		assert.Equal(t, 19.2, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("haggle raises the sale price", func(t *testing.T) {
		b, err := e.SellBreakdown("Grain", 10, trade.SeasonSpring, sett, pricing.SellOptions{
			Haggle: &pricing.HaggleResult{Success: true, Talent: true},
		})
		require.NoError(t, err)
		// 24 * 0.8 * 1.2 = 23.04
		assert.Equal(t, 23.04, b.FinalUnitPrice)
		assertRoundTrip(t, b)
	})

	t.Run("nil settlement fails", func(t *testing.T) {
		_, err := e.SellBreakdown("Grain", 10, trade.SeasonSpring, nil, pricing.SellOptions{})
		require.Error(t, err)
		assert.True(t, trade.IsValidation(err))
	})
}

func TestSpecialSalePrice(t *testing.T) {
	e := testEngine()

	t.Run("desperate is exactly half", func(t *testing.T) {
		for _, season := range trade.Seasons {
			b, err := e.SpecialSalePrice("Grain", 10, season, pricing.SaleDesperate)
			require.NoError(t, err)
			assert.Equal(t, b.BasePrice/2, b.FinalUnitPrice, "season %s", season)
			assertRoundTrip(t, b)
		}
	})

	t.Run("rumor is exactly double", func(t *testing.T) {
		for _, season := range trade.Seasons {
			b, err := e.SpecialSalePrice("Grain", 10, season, pricing.SaleRumor)
			require.NoError(t, err)
			assert.Equal(t, b.BasePrice*2, b.FinalUnitPrice, "season %s", season)
			assertRoundTrip(t, b)
		}
	})

	t.Run("unknown sale type", func(t *testing.T) {
		_, err := e.SpecialSalePrice("Grain", 10, trade.SeasonSpring, "firesale")
		require.Error(t, err)
		assert.True(t, trade.IsConfiguration(err))
	})
}

func TestHaggleOutcomes(t *testing.T) {
	outcomes := pricing.HaggleOutcomes(100, pricing.TransactionBuy)
	require.Len(t, outcomes, 4)
	assert.Equal(t, 100.0, outcomes[0].UnitPrice) // no haggle
	assert.Equal(t, 100.0, outcomes[1].UnitPrice) // failed
	assert.Equal(t, 90.0, outcomes[2].UnitPrice)  // success
	assert.Equal(t, 80.0, outcomes[3].UnitPrice)  // success + talent

	outcomes = pricing.HaggleOutcomes(100, pricing.TransactionSell)
	assert.Equal(t, 110.0, outcomes[2].UnitPrice)
	assert.Equal(t, 120.0, outcomes[3].UnitPrice)
}

func TestApplyHaggleResult(t *testing.T) {
	m := pricing.ApplyHaggleResult(200, pricing.HaggleResult{Success: true}, pricing.TransactionBuy)
	assert.Equal(t, -10.0, m.Percent)
	assert.Equal(t, -20.0, m.Amount)

	m = pricing.ApplyHaggleResult(200, pricing.HaggleResult{Success: true, Talent: true}, pricing.TransactionSell)
	assert.Equal(t, 20.0, m.Percent)
	assert.Equal(t, 40.0, m.Amount)

	m = pricing.ApplyHaggleResult(200, pricing.HaggleResult{}, pricing.TransactionBuy)
	assert.Zero(t, m.Percent)
	assert.Zero(t, m.Amount)
}
