package trade

import "fmt"

// wealthModifiers is the fixed wealth rating → price multiplier table.
// Static, never mutated.
var wealthModifiers = map[int]float64{
	1: 0.50,
	2: 0.80,
	3: 1.00,
	4: 1.05,
	5: 1.10,
}

// wealthDescriptions gives the human-readable label per wealth rating.
var wealthDescriptions = map[int]string{
	1: "Destitute",
	2: "Poor",
	3: "Comfortable",
	4: "Prosperous",
	5: "Rich",
}

// WealthModifier returns the price multiplier for a wealth rating (1–5).
func WealthModifier(wealth int) (float64, error) {
	m, ok := wealthModifiers[wealth]
	if !ok {
		return 0, NewValidation(fmt.Sprintf("wealth rating %d out of range [1,5]", wealth))
	}
	return m, nil
}

// WealthDescription returns the label for a wealth rating, or "" if unknown.
func WealthDescription(wealth int) string {
	return wealthDescriptions[wealth]
}

// SettlementProperties is the resolved numeric view of a settlement the
// engines calculate from.
type SettlementProperties struct {
	SizeNumeric       int     `json:"size_numeric"`
	WealthModifier    float64 `json:"wealth_modifier"`
	WealthDescription string  `json:"wealth_description"`
	Trade             bool    `json:"trade"`
}

// ResolveProperties validates a settlement and returns its numeric properties.
func ResolveProperties(s *Settlement) (SettlementProperties, error) {
	if s == nil {
		return SettlementProperties{}, NewValidation("settlement is nil")
	}
	size, err := s.SizeRating()
	if err != nil {
		return SettlementProperties{}, err
	}
	mod, err := WealthModifier(s.Wealth)
	if err != nil {
		return SettlementProperties{}, err
	}
	return SettlementProperties{
		SizeNumeric:       size,
		WealthModifier:    mod,
		WealthDescription: WealthDescription(s.Wealth),
		Trade:             s.IsTrade(),
	}, nil
}
