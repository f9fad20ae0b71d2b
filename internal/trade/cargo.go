package trade

import "fmt"

// QualityTier is a named quality level with its price multiplier. Tiers are
// ordered worst to best; Max is the highest quality score the tier covers.
type QualityTier struct {
	Name       string  `json:"name"`
	Max        int     `json:"max"`
	Multiplier float64 `json:"multiplier"`
}

// CargoType is a tradeable good. Prices are in pennies per unit, one per
// season; all four must be positive.
type CargoType struct {
	Name               string             `json:"name" validate:"required"`
	Category           Tag                `json:"category" validate:"required"`
	SeasonalPrices     map[Season]float64 `json:"seasonal_prices"`
	QualityTiers       []QualityTier      `json:"quality_tiers,omitempty"`
	EncumbrancePerUnit float64            `json:"encumbrance_per_unit"`
	UnitSize           int                `json:"unit_size"` // units per sale block, min 1
}

// SeasonPrice returns the base price for a season.
func (c *CargoType) SeasonPrice(season Season) (float64, error) {
	if !season.Valid() {
		return 0, NewConfiguration(fmt.Sprintf("unknown season %q", season))
	}
	price, ok := c.SeasonalPrices[season]
	if !ok {
		return 0, NewNotFound(fmt.Sprintf("cargo %q has no %s price", c.Name, season))
	}
	return price, nil
}

// Validate checks the cargo invariants: all four seasons resolve to a
// positive price.
func (c *CargoType) Validate() error {
	if c.Name == "" {
		return NewValidation("cargo type missing name")
	}
	for _, season := range Seasons {
		price, ok := c.SeasonalPrices[season]
		if !ok || price <= 0 {
			return NewValidation(fmt.Sprintf("cargo %q: %s price must be positive", c.Name, season))
		}
	}
	return nil
}

// IsWineBrandy reports whether the cargo uses the extended wine/brandy
// quality system.
func (c *CargoType) IsWineBrandy() bool {
	return c.Category == TagWine || c.Category == TagBrandy
}

// CargoLot is a previously purchased quantity of one cargo type, carried by
// the caller between visits for resale.
type CargoLot struct {
	CargoName string `json:"cargo_name"`
	Quantity  int    `json:"quantity"`
}

// PurchaseRecord gates resale eligibility: where and when a lot was bought.
type PurchaseRecord struct {
	SettlementName string `json:"settlement_name"`
	PurchaseDay    int    `json:"purchase_day"` // campaign day, caller-defined epoch
}
