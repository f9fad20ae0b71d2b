package refdata

import "github.com/keddard/tradewinds/internal/trade"

// SeedDataset is the built-in reference dataset, written on first open so
// the binary runs without an external data file. Prices are pennies per
// cargo unit.
func SeedDataset() Dataset {
	return Dataset{
		Settlements: []trade.Settlement{
			{
				Region:     "Reikland",
				Name:       "Ubersreik",
				Size:       trade.SizeTown,
				Wealth:     3,
				Population: 3500,
				Production: []trade.Tag{trade.TagTrade, trade.TagMetal, trade.TagTimber},
				Garrison:   "50c/100b",
				Ruler:      "Town council",
			},
			{
				Region:     "Reikland",
				Name:       "Auerswald",
				Size:       trade.SizeSmallTown,
				Wealth:     3,
				Population: 1200,
				Production: []trade.Tag{trade.TagGrain, trade.TagWool, trade.TagAgriculture},
				Ruler:      "Lady Emmanuelle von Korden",
			},
			{
				Region:     "Reikland",
				Name:       "Stimmigen",
				Size:       trade.SizeVillage,
				Wealth:     2,
				Population: 150,
				Production: []trade.Tag{trade.TagGrain},
			},
			{
				Region:       "Reikland",
				Name:         "Grunburg",
				Size:         trade.SizeSmallTown,
				Wealth:       3,
				Population:   900,
				Production:   []trade.Tag{trade.TagTrade, trade.TagWine},
				QualityFlags: []string{"wine_quality"},
			},
			{
				Region:     "Reikland",
				Name:       "Altdorf",
				Size:       trade.SizeCityState,
				Wealth:     5,
				Population: 105000,
				Production: []trade.Tag{trade.TagTrade},
				Garrison:   "5000a/10000b",
				Ruler:      "Emperor Karl Franz",
				Notes:      "Imperial capital; every kind of cargo moves through its wharves.",
			},
			{
				Region:     "Grey Mountains",
				Name:       "Grauwacht",
				Size:       trade.SizeFort,
				Wealth:     2,
				Population: 400,
				Production: []trade.Tag{trade.TagOre},
				Garrison:   "200a",
			},
			{
				Region:     "Grey Mountains",
				Name:       "Kaltenbach",
				Size:       trade.SizeMine,
				Wealth:     1,
				Population: 250,
				Production: []trade.Tag{trade.TagMetal, trade.TagOre},
			},
			{
				Region:     "Wasteland",
				Name:       "Marienburg",
				Size:       trade.SizeCityState,
				Wealth:     5,
				Population: 130000,
				Production: []trade.Tag{trade.TagTrade, trade.TagFish},
				Ruler:      "Directorate",
				Notes:      "Greatest port in the Old World.",
			},
		},
		CargoTypes: []trade.CargoType{
			{
				Name:               "Grain",
				Category:           trade.TagGrain,
				SeasonalPrices:     seasonPrices(24, 18, 12, 30),
				EncumbrancePerUnit: 10,
				UnitSize:           1,
			},
			{
				Name:               "Wool",
				Category:           trade.TagWool,
				SeasonalPrices:     seasonPrices(36, 30, 42, 48),
				EncumbrancePerUnit: 8,
				UnitSize:           1,
			},
			{
				Name:               "Metalwork",
				Category:           trade.TagMetal,
				SeasonalPrices:     seasonPrices(120, 120, 126, 132),
				EncumbrancePerUnit: 25,
				UnitSize:           1,
				QualityTiers: []trade.QualityTier{
					{Name: "Poor", Max: 2, Multiplier: 0.6},
					{Name: "Common", Max: 4, Multiplier: 0.85},
					{Name: "Average", Max: 6, Multiplier: 1.0},
					{Name: "High", Max: 8, Multiplier: 1.3},
					{Name: "Exceptional", Max: 1<<31 - 1, Multiplier: 1.8},
				},
			},
			{
				Name:               "Ore",
				Category:           trade.TagOre,
				SeasonalPrices:     seasonPrices(60, 60, 66, 72),
				EncumbrancePerUnit: 40,
				UnitSize:           1,
			},
			{
				Name:               "Timber",
				Category:           trade.TagTimber,
				SeasonalPrices:     seasonPrices(48, 42, 48, 60),
				EncumbrancePerUnit: 30,
				UnitSize:           1,
			},
			{
				Name:               "Fish",
				Category:           trade.TagFish,
				SeasonalPrices:     seasonPrices(30, 24, 30, 45),
				EncumbrancePerUnit: 12,
				UnitSize:           1,
			},
			{
				Name:               "Wine",
				Category:           trade.TagWine,
				SeasonalPrices:     seasonPrices(240, 240, 216, 264),
				EncumbrancePerUnit: 15,
				UnitSize:           1,
			},
			{
				Name:               "Brandy",
				Category:           trade.TagBrandy,
				SeasonalPrices:     seasonPrices(360, 360, 336, 396),
				EncumbrancePerUnit: 15,
				UnitSize:           1,
			},
			{
				Name:               "Livestock",
				Category:           trade.TagLivestock,
				SeasonalPrices:     seasonPrices(90, 75, 60, 105),
				EncumbrancePerUnit: 0,
				UnitSize:           1,
			},
			{
				Name:               "Salt",
				Category:           trade.TagSalt,
				SeasonalPrices:     seasonPrices(84, 84, 84, 96),
				EncumbrancePerUnit: 20,
				UnitSize:           1,
			},
			{
				Name:               "Cloth",
				Category:           trade.TagCloth,
				SeasonalPrices:     seasonPrices(144, 144, 150, 156),
				EncumbrancePerUnit: 10,
				UnitSize:           1,
			},
			{
				Name:               "Furs",
				Category:           trade.TagFurs,
				SeasonalPrices:     seasonPrices(108, 84, 120, 180),
				EncumbrancePerUnit: 12,
				UnitSize:           1,
			},
		},
		TradePool: []trade.Tag{
			trade.TagGrain, trade.TagWool, trade.TagMetal, trade.TagTimber,
			trade.TagFish, trade.TagSalt, trade.TagCloth, trade.TagFurs,
		},
		FlagBonuses: map[string]map[string]int{
			"wine_quality": {
				"Wine":   2,
				"Brandy": 1,
			},
		},
	}
}

func seasonPrices(spring, summer, autumn, winter float64) map[trade.Season]float64 {
	return map[trade.Season]float64{
		trade.SeasonSpring: spring,
		trade.SeasonSummer: summer,
		trade.SeasonAutumn: autumn,
		trade.SeasonWinter: winter,
	}
}
