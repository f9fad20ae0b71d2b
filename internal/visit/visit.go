// Package visit orchestrates one market visit: availability first, then
// cargo generation, quality and honesty, pricing, and the optional
// equilibrium layer. Sell-side visits run the restriction rules before any
// pricing.
package visit

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/keddard/tradewinds/internal/availability"
	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/equilibrium"
	"github.com/keddard/tradewinds/internal/pricing"
	"github.com/keddard/tradewinds/internal/quality"
	"github.com/keddard/tradewinds/internal/refdata"
	"github.com/keddard/tradewinds/internal/trade"
)

// Chance that a rumor buyer materializes on a sell attempt.
const rumorChance = 0.10

// Default merchant dishonesty probability when no equilibrium layer supplies
// per-merchant honesty.
const baseDishonestyChance = 0.25

// Calculator runs full visit calculations. The equilibrium engine is
// optional; nil means plain wealth-only pricing, resolved once at
// construction rather than checked feature-by-feature.
type Calculator struct {
	store  refdata.Store
	pricer *pricing.Engine
	eq     *equilibrium.Engine
	src    entropy.Source
	log    *slog.Logger
	counts equilibrium.CountTable
}

// NewCalculator wires a calculator. eq may be nil; log may be nil for a
// silent calculator.
func NewCalculator(store refdata.Store, eq *equilibrium.Engine, src entropy.Source, log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Calculator{
		store:  store,
		pricer: pricing.NewEngine(store),
		eq:     eq,
		src:    src,
		log:    log,
	}
}

// SetMerchantCounts overrides the merchant count table; nil restores the
// default per-size table.
func (c *Calculator) SetMerchantCounts(counts equilibrium.CountTable) {
	c.counts = counts
}

// QualityReport carries true and claimed quality side by side, so an
// appraisal can reveal a dishonest merchant later.
type QualityReport struct {
	Score       int                 `json:"score,omitempty"`
	Tier        string              `json:"tier,omitempty"`
	Wine        *quality.WineResult `json:"wine,omitempty"`
	Honesty     quality.Honesty     `json:"honesty"`
	ClaimedTier string              `json:"claimed_tier,omitempty"`
	ClaimedWine *quality.WineResult `json:"claimed_wine,omitempty"`
}

// BuyReport is the result of a buy-side visit.
type BuyReport struct {
	Settlement   string                   `json:"settlement"`
	Season       trade.Season             `json:"season"`
	Availability availability.CheckResult `json:"availability"`
	Category     trade.Tag                `json:"category,omitempty"`
	Cargo        *trade.CargoType         `json:"cargo,omitempty"`
	Size         *availability.SizeResult `json:"size,omitempty"`
	Equilibrium  equilibrium.Adjustment   `json:"equilibrium"`
	OfferedUnits int                      `json:"offered_units"`
	Quality      *QualityReport           `json:"quality,omitempty"`
	Price        *pricing.Breakdown       `json:"price,omitempty"`
	Sellers      []equilibrium.Merchant   `json:"sellers,omitempty"`
}

// BuyOptions tunes a buy-side visit.
type BuyOptions struct {
	Haggle  *pricing.HaggleResult
	Partial bool
}

// Buy runs the buy-side flow for one settlement visit.
func (c *Calculator) Buy(settlementName string, season trade.Season, opts BuyOptions) (*BuyReport, error) {
	if !season.Valid() {
		return nil, trade.NewConfiguration(fmt.Sprintf("unknown season %q", season))
	}
	sett, err := c.store.Settlement(settlementName)
	if err != nil {
		return nil, err
	}

	report := &BuyReport{
		Settlement:  sett.Name,
		Season:      season,
		Equilibrium: equilibrium.Neutral(),
	}

	report.Availability, err = availability.Check(sett, c.src)
	if err != nil {
		return nil, err
	}
	if !report.Availability.Available {
		c.log.Info("no cargo available",
			"settlement", sett.Name,
			"roll", report.Availability.Roll,
			"chance", report.Availability.Chance,
		)
		return report, nil
	}

	report.Category, err = availability.DetermineCargoCategory(sett, c.store.TradeGoodsPool(), c.src)
	if err != nil {
		return nil, err
	}
	report.Cargo, err = c.store.CargoTypeByCategory(report.Category)
	if err != nil {
		return nil, err
	}

	size, err := availability.CargoSize(sett, c.src)
	if err != nil {
		return nil, err
	}
	report.Size = &size

	// Optional enhancement: equilibrium state adjusts quantity and layers a
	// price modifier on top of the wealth-only engine.
	if c.eq != nil {
		report.Equilibrium = c.eq.Equilibrium(sett, report.Cargo, season)
	}
	report.OfferedUnits = int(math.Round(float64(size.TotalSize) * report.Equilibrium.QuantityFactor))
	if report.OfferedUnits <= 0 {
		c.log.Info("market blocked", "settlement", sett.Name, "cargo", report.Cargo.Name,
			"state", report.Equilibrium.State)
		return report, nil
	}

	if c.eq != nil {
		report.Sellers, err = equilibrium.GenerateMerchants(sett, equilibrium.RoleSeller, c.counts, c.src)
		if err != nil {
			return nil, err
		}
	}

	report.Quality, err = c.rollQuality(sett, report.Cargo, report.Sellers)
	if err != nil {
		return nil, err
	}

	priceOpts := pricing.BuyOptions{
		Partial:     opts.Partial,
		Haggle:      opts.Haggle,
		QualityTier: tierForPricing(report.Cargo, report.Quality),
	}
	if m := report.Equilibrium.PriceModifier(); m != nil {
		priceOpts.Extra = append(priceOpts.Extra, *m)
	}
	report.Price, err = c.pricer.BuyBreakdown(report.Cargo.Name, report.OfferedUnits, season, priceOpts)
	if err != nil {
		return nil, err
	}

	c.log.Info("cargo generated",
		"settlement", sett.Name,
		"cargo", report.Cargo.Name,
		"units", report.OfferedUnits,
		"unit_price", report.Price.FinalUnitPrice,
		"state", report.Equilibrium.State,
	)
	return report, nil
}

// rollQuality rolls true quality for the cargo and the merchant's claim.
// Wine and brandy use the extended band system with settlement flag bonuses;
// everything else maps a d10 score through the tier ladder.
func (c *Calculator) rollQuality(sett *trade.Settlement, cargo *trade.CargoType, sellers []equilibrium.Merchant) (*QualityReport, error) {
	report := &QualityReport{}

	// The presenting seller's honesty governs the claim. Without the merchant
	// layer, honesty is rolled directly.
	if len(sellers) > 0 {
		report.Honesty = sellers[0].Honesty
	} else {
		report.Honesty = quality.RollHonesty(baseDishonestyChance, c.src)
	}

	if cargo.IsWineBrandy() {
		var bonuses []quality.BonusPart
		for _, flag := range sett.QualityFlags {
			if bonus, ok := c.store.FlagBonus(flag, cargo.Name); ok {
				bonuses = append(bonuses, quality.BonusPart{Source: flag, Amount: bonus})
			}
		}
		wine, err := quality.RollWine(bonuses, c.src)
		if err != nil {
			return nil, err
		}
		report.Wine = &wine
		if report.Honesty.Dishonest {
			claimed, err := quality.InflateWine(wine, report.Honesty.Inflation)
			if err != nil {
				return nil, err
			}
			report.ClaimedWine = &claimed
		}
		return report, nil
	}

	ladder := ladderFor(cargo)
	report.Score = entropy.D10(c.src)
	idx, err := quality.MapTier(report.Score, ladder)
	if err != nil {
		return nil, err
	}
	report.Tier = ladder[idx].Name
	if report.Honesty.Dishonest {
		claimed, err := quality.InflateTier(idx, report.Honesty.Inflation, ladder)
		if err != nil {
			return nil, err
		}
		report.ClaimedTier = ladder[claimed].Name
	}
	return report, nil
}

// ladderFor converts a cargo's own tier table to the quality ladder, falling
// back to the default five tiers.
func ladderFor(cargo *trade.CargoType) []quality.Tier {
	if len(cargo.QualityTiers) == 0 {
		return quality.DefaultLadder
	}
	ladder := make([]quality.Tier, len(cargo.QualityTiers))
	for i, t := range cargo.QualityTiers {
		ladder[i] = quality.Tier{Name: t.Name, Max: t.Max}
	}
	return ladder
}

// tierForPricing returns the claimed tier name when the cargo defines price
// multipliers per tier: the buyer pays for what the merchant asserts.
func tierForPricing(cargo *trade.CargoType, q *QualityReport) string {
	if len(cargo.QualityTiers) == 0 || q == nil {
		return ""
	}
	if q.ClaimedTier != "" {
		return q.ClaimedTier
	}
	return q.Tier
}
