package trade

import "fmt"

// Size classifies a settlement. Each size resolves to a numeric rating 1–4
// that drives availability and cargo-volume formulas.
type Size string

const (
	SizeVillage   Size = "Village"
	SizeSmallTown Size = "SmallTown"
	SizeTown      Size = "Town"
	SizeCity      Size = "City"
	SizeCityState Size = "CityState"
	SizeFort      Size = "Fort"
	SizeMine      Size = "Mine"
)

// sizeRatings maps every settlement size to its rating. City and CityState
// share the top rating; forts and mines trade like small towns and villages.
var sizeRatings = map[Size]int{
	SizeVillage:   1,
	SizeSmallTown: 2,
	SizeTown:      3,
	SizeCity:      4,
	SizeCityState: 4,
	SizeFort:      2,
	SizeMine:      1,
}

// Rating returns the numeric size rating (1–4).
func (s Size) Rating() (int, error) {
	r, ok := sizeRatings[s]
	if !ok {
		return 0, NewConfiguration(fmt.Sprintf("unknown settlement size %q", s))
	}
	return r, nil
}

// Settlement is a place with size/wealth/production attributes. Loaded once
// from the reference store and immutable during a calculation.
type Settlement struct {
	Region     string `json:"region" db:"region"`
	Name       string `json:"name" db:"name" validate:"required"`
	Size       Size   `json:"size" db:"size" validate:"required"`
	Wealth     int    `json:"wealth" db:"wealth" validate:"gte=1,lte=5"`
	Population int    `json:"population" db:"population" validate:"gte=0"`
	Production []Tag  `json:"production" db:"-"`

	// QualityFlags name reference-table bonus rows that apply to this
	// settlement's goods, e.g. "wine_quality" for famed vineyard regions.
	QualityFlags []string `json:"quality_flags,omitempty" db:"-"`

	// Descriptive fields, unused by calculations.
	Garrison string `json:"garrison,omitempty" db:"garrison"`
	Ruler    string `json:"ruler,omitempty" db:"ruler"`
	Notes    string `json:"notes,omitempty" db:"notes"`
}

// SizeRating resolves the settlement's numeric size rating.
func (s *Settlement) SizeRating() (int, error) {
	return s.Size.Rating()
}

// HasTag reports whether the settlement carries a production tag.
func (s *Settlement) HasTag(tag Tag) bool {
	for _, t := range s.Production {
		if t == tag {
			return true
		}
	}
	return false
}

// IsTrade reports whether the settlement is Trade-flagged. Trade settlements
// get the best-of-two cargo-size roll, a buyer-chance bonus, and are the only
// legal venue for desperate sales.
func (s *Settlement) IsTrade() bool {
	return s.HasTag(TagTrade)
}

// UnknownTags returns production tags outside the recognized set.
func (s *Settlement) UnknownTags() []Tag {
	var unknown []Tag
	for _, t := range s.Production {
		if !t.Known() {
			unknown = append(unknown, t)
		}
	}
	return unknown
}
