// Package pricing computes buy/sell prices from seasonal base price, wealth,
// haggling, and special-sale multipliers, producing an itemized breakdown.
// Every applied modifier is recorded with its rationale so the final price is
// always reproducible: final = base + sum of modifier amounts.
package pricing

import (
	"fmt"
	"math"

	"github.com/keddard/tradewinds/internal/trade"
)

// TransactionType distinguishes buying from selling; haggle modifiers invert
// sign between the two.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// ModifierType names a price adjustment category.
type ModifierType string

const (
	ModifierPartialPurchase ModifierType = "partial_purchase"
	ModifierHaggle          ModifierType = "haggle"
	ModifierWealth          ModifierType = "wealth"
	ModifierSpecialSale     ModifierType = "special_sale"
	ModifierEquilibrium     ModifierType = "equilibrium"
)

// SaleType selects a special disposal sale.
type SaleType string

const (
	SaleDesperate SaleType = "desperate"
	SaleRumor     SaleType = "rumor"
)

// Modifier is one signed price adjustment in a breakdown. Percent is relative
// to the running price at the time the modifier is applied; Amount is the
// resulting per-unit delta in pennies.
type Modifier struct {
	Type        ModifierType `json:"type"`
	Description string       `json:"description"`
	Percent     float64      `json:"percent"`
	Amount      float64      `json:"amount"`
	Rationale   string       `json:"rationale"`
}

// SeasonalComparison shows the cargo's unit base price across all four
// seasons, with the best and worst seasons for each side of the trade.
type SeasonalComparison struct {
	Prices    map[trade.Season]float64 `json:"prices"`
	BestBuy   trade.Season             `json:"best_buy"`
	WorstBuy  trade.Season             `json:"worst_buy"`
	BestSell  trade.Season             `json:"best_sell"`
	WorstSell trade.Season             `json:"worst_sell"`
}

// Breakdown is the itemized result of one price calculation. Unit prices are
// rounded to two decimal places, the total to the nearest penny.
type Breakdown struct {
	CargoName      string              `json:"cargo_name"`
	Season         trade.Season        `json:"season"`
	Transaction    TransactionType     `json:"transaction"`
	QualityTier    string              `json:"quality_tier,omitempty"`
	BasePrice      float64             `json:"base_price"`
	Modifiers      []Modifier          `json:"modifiers"`
	FinalUnitPrice float64             `json:"final_unit_price"`
	Quantity       int                 `json:"quantity"`
	TotalUnits     int                 `json:"total_units"`
	TotalPrice     float64             `json:"total_price"`
	Seasonal       *SeasonalComparison `json:"seasonal,omitempty"`
}

// HaggleResult is the outcome of an actual negotiation roll.
type HaggleResult struct {
	Success bool `json:"success"`
	Talent  bool `json:"talent"` // bonus negotiation talent doubles the swing
}

// HaggleOutcome is one row of the what-if preview table.
type HaggleOutcome struct {
	Scenario  string  `json:"scenario"`
	Percent   float64 `json:"percent"`
	UnitPrice float64 `json:"unit_price"`
}

// BuyOptions tunes a buying breakdown.
type BuyOptions struct {
	// Partial indicates the caller is not buying the full available quantity,
	// which draws a flat surcharge.
	Partial bool
	Haggle  *HaggleResult
	// QualityTier selects a tier multiplier when the cargo defines tiers.
	QualityTier string
	// Extra carries adjustments layered on by the equilibrium strategy.
	Extra []Modifier
}

// SellOptions tunes a selling breakdown.
type SellOptions struct {
	Haggle      *HaggleResult
	QualityTier string
	Extra       []Modifier
}

// CargoSource supplies cargo type records; the reference data store
// implements it.
type CargoSource interface {
	CargoType(name string) (*trade.CargoType, error)
}

// Engine is the price calculation engine. It owns no mutable state; every
// method is a pure function of its inputs and the reference data.
type Engine struct {
	cargo CargoSource
}

// NewEngine creates a pricing engine over a cargo source.
func NewEngine(cargo CargoSource) *Engine {
	return &Engine{cargo: cargo}
}

// BasePrice looks up the cargo's season price, applying the matching quality
// tier multiplier when the cargo defines tiers.
func (e *Engine) BasePrice(cargoName string, season trade.Season, qualityTier string) (float64, error) {
	cargo, err := e.cargo.CargoType(cargoName)
	if err != nil {
		return 0, err
	}
	price, err := cargo.SeasonPrice(season)
	if err != nil {
		return 0, err
	}
	if qualityTier == "" {
		return price, nil
	}
	for _, tier := range cargo.QualityTiers {
		if tier.Name == qualityTier {
			return price * tier.Multiplier, nil
		}
	}
	return 0, trade.NewNotFound(fmt.Sprintf("cargo %q has no quality tier %q", cargoName, qualityTier))
}

// BuyBreakdown computes the buying price for a quantity of cargo. Modifiers
// apply in order: partial-purchase surcharge, then haggle.
func (e *Engine) BuyBreakdown(cargoName string, quantity int, season trade.Season, opts BuyOptions) (*Breakdown, error) {
	if quantity <= 0 {
		return nil, trade.NewValidation("quantity must be positive")
	}
	cargo, err := e.cargo.CargoType(cargoName)
	if err != nil {
		return nil, err
	}
	base, err := e.BasePrice(cargoName, season, opts.QualityTier)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		CargoName:   cargoName,
		Season:      season,
		Transaction: TransactionBuy,
		QualityTier: opts.QualityTier,
		BasePrice:   round2(base),
		Quantity:    quantity,
	}
	price := base

	if opts.Partial {
		price = b.apply(price, Modifier{
			Type:        ModifierPartialPurchase,
			Description: "partial purchase",
			Percent:     10,
			Rationale:   "seller surcharge for breaking up the lot",
		})
	}
	if opts.Haggle != nil {
		price = b.apply(price, haggleModifier(*opts.Haggle, TransactionBuy))
	}
	for _, m := range opts.Extra {
		price = b.apply(price, m)
	}

	e.finish(b, cargo, price)
	return b, nil
}

// SellBreakdown computes the selling price at a settlement: seasonal base,
// then the settlement's wealth modifier, then haggle with inverted sign.
func (e *Engine) SellBreakdown(cargoName string, quantity int, season trade.Season, sett *trade.Settlement, opts SellOptions) (*Breakdown, error) {
	if quantity <= 0 {
		return nil, trade.NewValidation("quantity must be positive")
	}
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		return nil, err
	}
	cargo, err := e.cargo.CargoType(cargoName)
	if err != nil {
		return nil, err
	}
	base, err := e.BasePrice(cargoName, season, opts.QualityTier)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		CargoName:   cargoName,
		Season:      season,
		Transaction: TransactionSell,
		QualityTier: opts.QualityTier,
		BasePrice:   round2(base),
		Quantity:    quantity,
	}
	price := base

	price = b.apply(price, Modifier{
		Type:        ModifierWealth,
		Description: fmt.Sprintf("wealth modifier (%s)", props.WealthDescription),
		Percent:     round2((props.WealthModifier - 1) * 100),
		Rationale:   fmt.Sprintf("settlement wealth rating %d pays x%.2f", sett.Wealth, props.WealthModifier),
	})
	if opts.Haggle != nil {
		price = b.apply(price, haggleModifier(*opts.Haggle, TransactionSell))
	}
	for _, m := range opts.Extra {
		price = b.apply(price, m)
	}

	e.finish(b, cargo, price)
	return b, nil
}

// SpecialSalePrice computes a desperate (x0.5) or rumor (x2.0) disposal
// sale. Venue legality for desperate sales is enforced by the restriction
// rules, not here.
func (e *Engine) SpecialSalePrice(cargoName string, quantity int, season trade.Season, saleType SaleType) (*Breakdown, error) {
	var percent float64
	var rationale string
	switch saleType {
	case SaleDesperate:
		percent, rationale = -50, "desperate sale at half market value"
	case SaleRumor:
		percent, rationale = 100, "rumor-driven buyer pays double"
	default:
		return nil, trade.NewConfiguration(fmt.Sprintf("unknown sale type %q", saleType))
	}
	if quantity <= 0 {
		return nil, trade.NewValidation("quantity must be positive")
	}
	cargo, err := e.cargo.CargoType(cargoName)
	if err != nil {
		return nil, err
	}
	base, err := cargo.SeasonPrice(season)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		CargoName:   cargoName,
		Season:      season,
		Transaction: TransactionSell,
		BasePrice:   round2(base),
		Quantity:    quantity,
	}
	price := b.apply(base, Modifier{
		Type:        ModifierSpecialSale,
		Description: string(saleType) + " sale",
		Percent:     percent,
		Rationale:   rationale,
	})

	e.finish(b, cargo, price)
	return b, nil
}

// HaggleOutcomes returns the four canonical negotiation scenarios as a
// preview table, so a caller can show what-if pricing before rolling.
func HaggleOutcomes(basePrice float64, txn TransactionType) []HaggleOutcome {
	scenarios := []struct {
		label  string
		result *HaggleResult
	}{
		{"no haggle", nil},
		{"failed haggle", &HaggleResult{}},
		{"successful haggle", &HaggleResult{Success: true}},
		{"successful haggle with talent", &HaggleResult{Success: true, Talent: true}},
	}

	outcomes := make([]HaggleOutcome, 0, len(scenarios))
	for _, sc := range scenarios {
		percent := 0.0
		if sc.result != nil {
			percent = hagglePercent(*sc.result, txn)
		}
		outcomes = append(outcomes, HaggleOutcome{
			Scenario:  sc.label,
			Percent:   percent,
			UnitPrice: round2(basePrice * (1 + percent/100)),
		})
	}
	return outcomes
}

// ApplyHaggleResult returns the single modifier applicable for an actual
// pass/fail negotiation.
func ApplyHaggleResult(basePrice float64, result HaggleResult, txn TransactionType) Modifier {
	m := haggleModifier(result, txn)
	m.Amount = round2(basePrice * m.Percent / 100)
	return m
}

// SeasonalComparisonFor builds the informational four-season price table for
// a cargo type.
func (e *Engine) SeasonalComparisonFor(cargoName string) (*SeasonalComparison, error) {
	cargo, err := e.cargo.CargoType(cargoName)
	if err != nil {
		return nil, err
	}
	return seasonalComparison(cargo)
}

func haggleModifier(result HaggleResult, txn TransactionType) Modifier {
	percent := hagglePercent(result, txn)
	desc := "haggle failed"
	rationale := "negotiation failed, price unchanged"
	if result.Success {
		desc = "haggle succeeded"
		rationale = "successful negotiation"
		if result.Talent {
			desc += " (talent)"
			rationale = "successful negotiation with bonus talent"
		}
	}
	return Modifier{
		Type:        ModifierHaggle,
		Description: desc,
		Percent:     percent,
		Rationale:   rationale,
	}
}

func hagglePercent(result HaggleResult, txn TransactionType) float64 {
	if !result.Success {
		return 0
	}
	percent := 10.0
	if result.Talent {
		percent = 20.0
	}
	if txn == TransactionBuy {
		return -percent
	}
	return percent
}

// apply records a modifier against the running price and returns the new
// price. Amounts are computed before rounding so final = base + sum(amounts)
// holds exactly.
func (b *Breakdown) apply(price float64, m Modifier) float64 {
	delta := price * m.Percent / 100
	if m.Amount != 0 {
		// Pre-computed amounts (equilibrium adjustments) are taken as-is.
		delta = m.Amount
	}
	m.Amount = round2(delta)
	b.Modifiers = append(b.Modifiers, m)
	return price + delta
}

func (e *Engine) finish(b *Breakdown, cargo *trade.CargoType, price float64) {
	unitSize := cargo.UnitSize
	if unitSize < 1 {
		unitSize = 1
	}
	b.FinalUnitPrice = round2(price)
	b.TotalUnits = (b.Quantity + unitSize - 1) / unitSize
	b.TotalPrice = math.Round(b.FinalUnitPrice * float64(b.TotalUnits))
	if cmp, err := seasonalComparison(cargo); err == nil {
		b.Seasonal = cmp
	}
}

func seasonalComparison(cargo *trade.CargoType) (*SeasonalComparison, error) {
	cmp := &SeasonalComparison{Prices: make(map[trade.Season]float64, len(trade.Seasons))}
	for _, season := range trade.Seasons {
		price, err := cargo.SeasonPrice(season)
		if err != nil {
			return nil, err
		}
		cmp.Prices[season] = round2(price)
		if cmp.BestBuy == "" || price < cmp.Prices[cmp.BestBuy] {
			cmp.BestBuy = season
		}
		if cmp.WorstSell == "" || price < cmp.Prices[cmp.WorstSell] {
			cmp.WorstSell = season
		}
		if cmp.BestSell == "" || price > cmp.Prices[cmp.BestSell] {
			cmp.BestSell = season
		}
		if cmp.WorstBuy == "" || price > cmp.Prices[cmp.WorstBuy] {
			cmp.WorstBuy = season
		}
	}
	return cmp, nil
}

// round2 rounds to two decimal places (display precision for unit prices).
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
