// Package quality rolls true cargo quality and decides whether the merchant
// misrepresents it. True and claimed values are both retained so a later
// appraisal can reveal the deception.
package quality

import (
	"fmt"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/trade"
)

// Tier is one rung of the ordinary-cargo quality ladder. Max is the highest
// quality score the tier covers; the final tier is open-ended.
type Tier struct {
	Name string `json:"name"`
	Max  int    `json:"max"`
}

// DefaultLadder is the five-tier ladder used when the cargo type does not
// supply its own thresholds.
var DefaultLadder = []Tier{
	{Name: "Poor", Max: 2},
	{Name: "Common", Max: 4},
	{Name: "Average", Max: 6},
	{Name: "High", Max: 8},
	{Name: "Exceptional", Max: 1<<31 - 1},
}

// MapTier maps a numeric quality score to a tier index in the ladder. Scores
// past every threshold fall back to the last entry rather than erroring.
func MapTier(score int, ladder []Tier) (int, error) {
	if len(ladder) == 0 {
		return 0, trade.NewConfiguration("quality ladder is empty")
	}
	for i, tier := range ladder {
		if score <= tier.Max {
			return i, nil
		}
	}
	return len(ladder) - 1, nil
}

// Honesty records a merchant's honesty draw. A dishonest merchant inflates
// the claimed quality by 2–4 points.
type Honesty struct {
	Dishonest bool `json:"dishonest"`
	Inflation int  `json:"inflation,omitempty"`
}

// RollHonesty draws the merchant's honesty. dishonestyChance is a
// probability in [0, 1].
func RollHonesty(dishonestyChance float64, src entropy.Source) Honesty {
	if !entropy.Chance(src, dishonestyChance) {
		return Honesty{}
	}
	return Honesty{
		Dishonest: true,
		Inflation: entropy.IntBetween(src, 2, 4),
	}
}

// InflateTier shifts a tier index up the ladder by the merchant's inflation,
// clamped to the top tier. The true index is left untouched.
func InflateTier(trueIndex, inflation int, ladder []Tier) (int, error) {
	if len(ladder) == 0 {
		return 0, trade.NewConfiguration("quality ladder is empty")
	}
	if trueIndex < 0 || trueIndex >= len(ladder) {
		return 0, trade.NewValidation(fmt.Sprintf("tier index %d outside ladder", trueIndex))
	}
	claimed := trueIndex + inflation
	if claimed >= len(ladder) {
		claimed = len(ladder) - 1
	}
	return claimed, nil
}
