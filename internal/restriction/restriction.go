// Package restriction enforces where and when previously purchased cargo may
// legally be resold, and how many buyers exist for a sale attempt.
package restriction

import (
	"fmt"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/trade"
)

// Selling back into the settlement of purchase is illegal until a week has
// passed.
const resaleCooldownDays = 7

// Eligibility is the result of a sale-eligibility check.
type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Errors   []string `json:"errors,omitempty"`
}

// VillageResult reports the village sale restriction for a cargo/season.
type VillageResult struct {
	Restricted  bool `json:"restricted"`
	MaxQuantity int  `json:"max_quantity"` // 0 when the sale is blocked outright
}

// CheckSaleEligibility decides whether a lot may be sold at the target
// settlement given its purchase record and the days elapsed since purchase.
func CheckSaleEligibility(lot trade.CargoLot, target *trade.Settlement, record trade.PurchaseRecord, daysElapsed int) (Eligibility, error) {
	if target == nil {
		return Eligibility{}, trade.NewValidation("target settlement is nil")
	}
	if lot.CargoName == "" {
		return Eligibility{}, trade.NewValidation("cargo lot missing cargo name")
	}

	var errs []string
	if target.Name == record.SettlementName && daysElapsed < resaleCooldownDays {
		errs = append(errs, fmt.Sprintf(
			"cannot resell in %s until %d days after purchase (%d elapsed)",
			target.Name, resaleCooldownDays, daysElapsed))
	}
	return Eligibility{Eligible: len(errs) == 0, Errors: errs}, nil
}

// BuyerChance returns the percentage probability that any buyer exists for a
// sale attempt: sizeRating * 10, plus 30 for Trade settlements.
func BuyerChance(sett *trade.Settlement, cargoName string) (int, error) {
	if cargoName == "" {
		return 0, trade.NewValidation("cargo name is empty")
	}
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		return 0, err
	}
	chance := props.SizeNumeric * 10
	if props.Trade {
		chance += 30
	}
	return chance, nil
}

// CheckVillageRestrictions applies the village sale rule: non-Grain cargo may
// only be sold into Village-class settlements during spring, and then only in
// a randomized 1–10 unit band. Outside spring a village buys none of it.
// Settlements above village size are unrestricted; Grain is always exempt.
func CheckVillageRestrictions(sett *trade.Settlement, cargo *trade.CargoType, season trade.Season, src entropy.Source) (VillageResult, error) {
	if cargo == nil {
		return VillageResult{}, trade.NewValidation("cargo type is nil")
	}
	if !season.Valid() {
		return VillageResult{}, trade.NewConfiguration(fmt.Sprintf("unknown season %q", season))
	}
	if _, err := trade.ResolveProperties(sett); err != nil {
		return VillageResult{}, err
	}

	if cargo.Category == trade.TagGrain {
		return VillageResult{}, nil
	}
	if sett.Size != trade.SizeVillage {
		return VillageResult{}, nil
	}
	if season != trade.SeasonSpring {
		return VillageResult{Restricted: true, MaxQuantity: 0}, nil
	}
	return VillageResult{
		Restricted:  true,
		MaxQuantity: entropy.IntBetween(src, 1, 10),
	}, nil
}

// IsTradeSettlement reports whether the settlement carries the Trade flag,
// which gates desperate sales and the buyer-chance bonus.
func IsTradeSettlement(sett *trade.Settlement) bool {
	return sett != nil && sett.IsTrade()
}
