// Package availability decides whether cargo exists at a settlement this
// visit, which cargo category it is, and how much of it there is.
package availability

import (
	"github.com/samber/lo"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/trade"
)

// CheckResult records one availability check.
type CheckResult struct {
	Available bool `json:"available"`
	Roll      int  `json:"roll"`
	Chance    int  `json:"chance"`
}

// SizeResult records one cargo-quantity determination. Both rolls and the
// chosen multiplier are reported so a game table can audit the draw.
type SizeResult struct {
	TotalSize      int  `json:"total_size"`
	BaseMultiplier int  `json:"base_multiplier"`
	SizeMultiplier int  `json:"size_multiplier"`
	Roll1          int  `json:"roll1"`
	Roll2          *int `json:"roll2,omitempty"`
	TradeBonus     bool `json:"trade_bonus"`
}

// Chance returns the percentage probability that cargo exists at the
// settlement: min((size + wealth) * 10, 100).
func Chance(sett *trade.Settlement) (int, error) {
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		return 0, err
	}
	chance := (props.SizeNumeric + sett.Wealth) * 10
	if chance > 100 {
		chance = 100
	}
	return chance, nil
}

// Check draws one percentile roll against the settlement's availability
// chance.
func Check(sett *trade.Settlement, src entropy.Source) (CheckResult, error) {
	chance, err := Chance(sett)
	if err != nil {
		return CheckResult{}, err
	}
	roll := entropy.Percentile(src)
	return CheckResult{
		Available: roll <= chance,
		Roll:      roll,
		Chance:    chance,
	}, nil
}

// DetermineCargoCategory selects the cargo category offered this visit.
//
// If the settlement carries the generic Trade tag alongside specific goods,
// one specific good is chosen at random among them. If Trade is the only tag,
// a category is drawn from the general trade-goods pool. Otherwise the
// primary specific category is used directly. Non-Trade settlements never
// receive goods outside their declared categories.
func DetermineCargoCategory(sett *trade.Settlement, pool []trade.Tag, src entropy.Source) (trade.Tag, error) {
	if sett == nil {
		return "", trade.NewValidation("settlement is nil")
	}
	if len(sett.Production) == 0 {
		return "", trade.NewValidation("settlement " + sett.Name + " has no production categories")
	}

	specific := lo.Filter(sett.Production, func(t trade.Tag, _ int) bool {
		return t != trade.TagTrade && t.Known()
	})

	switch {
	case sett.IsTrade() && len(specific) > 0:
		return specific[entropy.IntBetween(src, 0, len(specific)-1)], nil
	case sett.IsTrade():
		if len(pool) == 0 {
			return "", trade.NewConfiguration("general trade-goods pool is empty")
		}
		return pool[entropy.IntBetween(src, 0, len(pool)-1)], nil
	case len(specific) > 0:
		return specific[0], nil
	}
	return "", trade.NewValidation("settlement " + sett.Name + " has no usable production categories")
}

// CargoSize determines the quantity of cargo on offer, in abstract cargo
// units. Trade settlements draw a second independent roll and keep the better
// of the two rounded values.
func CargoSize(sett *trade.Settlement, src entropy.Source) (SizeResult, error) {
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		return SizeResult{}, err
	}

	base := props.SizeNumeric + sett.Wealth
	roll1 := entropy.Percentile(src)
	multiplier := roundUpTen(roll1)

	result := SizeResult{
		BaseMultiplier: base,
		Roll1:          roll1,
	}

	if props.Trade {
		roll2 := entropy.Percentile(src)
		result.Roll2 = &roll2
		result.TradeBonus = true
		if rounded := roundUpTen(roll2); rounded > multiplier {
			multiplier = rounded
		}
	}

	result.SizeMultiplier = multiplier
	result.TotalSize = base * multiplier
	return result, nil
}

// roundUpTen rounds a percentile roll up to the next multiple of 10.
func roundUpTen(n int) int {
	return (n + 9) / 10 * 10
}
