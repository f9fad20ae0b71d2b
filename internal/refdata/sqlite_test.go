package refdata_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keddard/tradewinds/internal/refdata"
	"github.com/keddard/tradewinds/internal/trade"
)

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.db")

	db, err := refdata.Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.False(t, db.HasData())
	require.NoError(t, db.Seed(refdata.SeedDataset()))
	assert.True(t, db.HasData())

	ds, err := db.Load()
	require.NoError(t, err)

	store, err := refdata.NewMemoryStore(ds)
	require.NoError(t, err)
	assert.Empty(t, store.Warnings())
	assert.Len(t, store.AllSettlements(), 8)
	assert.Len(t, store.AllCargoTypes(), 12)

	// Spot-check a JSON-encoded column survived the trip.
	grunburg, err := store.Settlement("Grunburg")
	require.NoError(t, err)
	assert.Equal(t, []string{"wine_quality"}, grunburg.QualityFlags)
	assert.True(t, grunburg.IsTrade())

	metalwork, err := store.CargoType("Metalwork")
	require.NoError(t, err)
	require.Len(t, metalwork.QualityTiers, 5)
	assert.Equal(t, 1.8, metalwork.QualityTiers[4].Multiplier)

	bonus, ok := store.FlagBonus("wine_quality", "Wine")
	assert.True(t, ok)
	assert.Equal(t, 2, bonus)
}

func TestSQLiteReseedReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.db")

	db, err := refdata.Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Seed(refdata.SeedDataset()))

	small := refdata.Dataset{
		Settlements: []trade.Settlement{
			{Region: "Reikland", Name: "Stimmigen", Size: trade.SizeVillage, Wealth: 2,
				Production: []trade.Tag{trade.TagGrain}},
		},
		CargoTypes: []trade.CargoType{
			{Name: "Grain", Category: trade.TagGrain, UnitSize: 1,
				SeasonalPrices: map[trade.Season]float64{
					trade.SeasonSpring: 24, trade.SeasonSummer: 18,
					trade.SeasonAutumn: 12, trade.SeasonWinter: 30,
				}},
		},
	}
	require.NoError(t, db.Seed(small))

	ds, err := db.Load()
	require.NoError(t, err)
	assert.Len(t, ds.Settlements, 1)
	assert.Len(t, ds.CargoTypes, 1)
}
