package quality

import (
	"fmt"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/trade"
)

// Wine and brandy use an extended quality system: a d10 roll plus settlement
// bonuses, clamped to [1, 12] and mapped through six fixed bands, each with a
// canonical price in crowns.

// CrownPennies converts crowns (the canonical pricing unit for wine bands) to
// pennies, the base monetary unit.
const CrownPennies = 240

const (
	wineRollMin = 1
	wineRollMax = 12
)

// WineBand is one band of the wine/brandy quality table.
type WineBand struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Name   string `json:"name"`
	Crowns int    `json:"crowns"` // canonical per-unit price
}

// WineBands covers [1, 12] with no gaps or overlaps.
var WineBands = []WineBand{
	{Min: 1, Max: 1, Name: "Swill", Crowns: 1},
	{Min: 2, Max: 3, Name: "Passable", Crowns: 2},
	{Min: 4, Max: 5, Name: "Average", Crowns: 4},
	{Min: 6, Max: 7, Name: "Good", Crowns: 8},
	{Min: 8, Max: 9, Name: "Excellent", Crowns: 16},
	{Min: 10, Max: 12, Name: "Top Shelf", Crowns: 30},
}

// BonusPart is one named contribution to a wine quality roll, e.g. a
// settlement's wine_quality flag bonus for a specific cargo.
type BonusPart struct {
	Source string `json:"source"`
	Amount int    `json:"amount"`
}

// WineResult reports one wine/brandy quality roll.
type WineResult struct {
	Roll         int         `json:"roll"`
	Bonuses      []BonusPart `json:"bonuses,omitempty"`
	Clamped      int         `json:"clamped"`
	Band         string      `json:"band"`
	PricePennies float64     `json:"price_pennies"`
}

// WineBandFor returns the band covering a clamped roll value.
func WineBandFor(value int) (WineBand, error) {
	for _, band := range WineBands {
		if value >= band.Min && value <= band.Max {
			return band, nil
		}
	}
	return WineBand{}, trade.NewValidation(fmt.Sprintf("wine roll %d outside [%d,%d]", value, wineRollMin, wineRollMax))
}

// RollWine draws a d10, applies the settlement bonuses, and clamps the
// result into [1, 12]. Bonuses can legitimately push the roll two points past
// the die range; the clamp preserves that headroom and no more.
func RollWine(bonuses []BonusPart, src entropy.Source) (WineResult, error) {
	roll := entropy.D10(src)
	total := roll
	for _, b := range bonuses {
		total += b.Amount
	}
	clamped := clampWine(total)

	band, err := WineBandFor(clamped)
	if err != nil {
		return WineResult{}, err
	}
	return WineResult{
		Roll:         roll,
		Bonuses:      bonuses,
		Clamped:      clamped,
		Band:         band.Name,
		PricePennies: float64(band.Crowns * CrownPennies),
	}, nil
}

// InflateWine produces the merchant's claimed quality for a wine/brandy lot:
// inflation is added to the clamped roll, capped at 12, and remapped through
// the band table. The true result is left untouched.
func InflateWine(actual WineResult, inflation int) (WineResult, error) {
	claimed := actual
	claimed.Clamped = clampWine(actual.Clamped + inflation)
	band, err := WineBandFor(claimed.Clamped)
	if err != nil {
		return WineResult{}, err
	}
	claimed.Band = band.Name
	claimed.PricePennies = float64(band.Crowns * CrownPennies)
	return claimed, nil
}

func clampWine(v int) int {
	if v < wineRollMin {
		return wineRollMin
	}
	if v > wineRollMax {
		return wineRollMax
	}
	return v
}
