// Package equilibrium derives a settlement's longer-term supply/demand state
// for a cargo and generates the individual merchants present on a visit. The
// whole layer is an optional enhancement over base pricing: callers hold a
// nil *Engine to fall back to plain wealth-only pricing, and every method
// degrades to a neutral result when data is missing.
package equilibrium

import (
	"hash/fnv"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/keddard/tradewinds/internal/pricing"
	"github.com/keddard/tradewinds/internal/trade"
)

// State is a qualitative supply-demand condition.
type State string

const (
	StateBalanced      State = "balanced"
	StateOversupplied  State = "oversupplied"
	StateUndersupplied State = "undersupplied"
	StateDesperate     State = "desperate"
	StateBlocked       State = "blocked"
)

// Adjustment is the price/quantity consequence of an equilibrium state,
// layered on top of the wealth modifier by the price engine.
type Adjustment struct {
	State          State   `json:"state"`
	PricePercent   float64 `json:"price_percent"`
	QuantityFactor float64 `json:"quantity_factor"`
	Reason         string  `json:"reason"`
}

// Neutral is the balanced, zero-modifier adjustment used whenever the layer
// cannot classify.
func Neutral() Adjustment {
	return Adjustment{State: StateBalanced, QuantityFactor: 1, Reason: "no supply/demand pressure"}
}

// PriceModifier renders the adjustment as a price-engine modifier, or nil
// for a neutral state.
func (a Adjustment) PriceModifier() *pricing.Modifier {
	if a.PricePercent == 0 {
		return nil
	}
	return &pricing.Modifier{
		Type:        pricing.ModifierEquilibrium,
		Description: "market " + string(a.State),
		Percent:     a.PricePercent,
		Rationale:   a.Reason,
	}
}

// adjustments maps each non-neutral state to its consequences.
var adjustments = map[State]Adjustment{
	StateOversupplied: {
		State: StateOversupplied, PricePercent: -15, QuantityFactor: 1.25,
		Reason: "local glut: sellers undercut each other",
	},
	StateUndersupplied: {
		State: StateUndersupplied, PricePercent: 25, QuantityFactor: 0.75,
		Reason: "scarce goods command a premium",
	},
	StateDesperate: {
		State: StateDesperate, PricePercent: 50, QuantityFactor: 0.5,
		Reason: "the settlement is desperate for this cargo",
	},
	StateBlocked: {
		State: StateBlocked, PricePercent: 0, QuantityFactor: 0,
		Reason: "the market is saturated with its own produce; no buyers",
	},
}

// Engine classifies supply/demand states. Drift between seasons comes from
// simplex noise over (settlement+cargo, season), so repeated visits within a
// season are stable but states shift as the year turns.
type Engine struct {
	noise opensimplex.Noise
}

// NewEngine creates an equilibrium engine with a deterministic drift seed.
func NewEngine(seed int64) *Engine {
	return &Engine{noise: opensimplex.NewNormalized(seed)}
}

// Equilibrium derives the settlement's supply/demand state for a cargo this
// season. Missing or invalid inputs yield the neutral adjustment, never an
// error.
func (e *Engine) Equilibrium(sett *trade.Settlement, cargo *trade.CargoType, season trade.Season) Adjustment {
	if e == nil || sett == nil || cargo == nil || !season.Valid() {
		return Neutral()
	}

	score := 0.0
	produces := sett.HasTag(cargo.Category)
	if produces {
		score += 1 // home production pushes supply up
	}
	if sett.Wealth >= 4 {
		score -= 1 // rich settlements absorb goods
	}
	if sett.Wealth <= 2 {
		score += 0.5 // poor settlements buy little
	}
	score += seasonalPressure(cargo.Category, season)
	score += (e.drift(sett.Name+"/"+cargo.Name, season) - 0.5) * 2

	switch {
	case score >= 2.5 && produces:
		return adjustments[StateBlocked]
	case score >= 1:
		return adjustments[StateOversupplied]
	case score <= -2:
		return adjustments[StateDesperate]
	case score <= -1:
		return adjustments[StateUndersupplied]
	}
	return Neutral()
}

// seasonalPressure shifts supply for season-bound categories: harvest goods
// flood autumn markets and run short by winter.
func seasonalPressure(category trade.Tag, season trade.Season) float64 {
	harvest := category == trade.TagGrain || category == trade.TagAgriculture ||
		category == trade.TagLivestock
	switch season {
	case trade.SeasonAutumn:
		if harvest {
			return 1
		}
	case trade.SeasonWinter:
		if harvest || category == trade.TagFish {
			return -1
		}
		if category == trade.TagFurs {
			return -0.5
		}
	case trade.SeasonSummer:
		if category == trade.TagFurs {
			return 0.5
		}
	}
	return 0
}

// drift samples stable per-(settlement,cargo,season) noise in [0, 1].
func (e *Engine) drift(key string, season trade.Season) float64 {
	h := fnv.New32a()
	h.Write([]byte(key))
	x := float64(h.Sum32()%10000) / 100 // spread keys across noise space
	return e.noise.Eval2(x, float64(season.Index()))
}
