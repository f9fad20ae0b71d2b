// Package refdata is the reference data store: immutable settlement and
// cargo records plus the lookup tables the engines read. Data lives in
// SQLite and is loaded whole into an in-memory store at startup; the core
// only ever sees the read interface.
package refdata

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/keddard/tradewinds/internal/trade"
)

// Store is the read interface the engines consume.
type Store interface {
	CargoType(name string) (*trade.CargoType, error)
	CargoTypeByCategory(category trade.Tag) (*trade.CargoType, error)
	AllCargoTypes() []trade.CargoType
	Settlement(name string) (*trade.Settlement, error)
	AllSettlements() []trade.Settlement
	TradeGoodsPool() []trade.Tag
	FlagBonus(flag, cargoName string) (int, bool)
}

// Dataset is the raw reference data before validation.
type Dataset struct {
	Settlements []trade.Settlement
	CargoTypes  []trade.CargoType
	TradePool   []trade.Tag
	// FlagBonuses: quality flag → cargo name → bonus points.
	FlagBonuses map[string]map[string]int
}

// MemoryStore is a validated, immutable in-memory reference store.
type MemoryStore struct {
	settlements map[string]trade.Settlement
	cargoTypes  map[string]trade.CargoType
	byCategory  map[trade.Tag]string // category → cargo name
	tradePool   []trade.Tag
	flagBonuses map[string]map[string]int
	warnings    []string
}

// NewMemoryStore validates a dataset and builds the store. Malformed records
// fail the load; unknown production tags only produce warnings.
func NewMemoryStore(ds Dataset) (*MemoryStore, error) {
	validate := validator.New()

	s := &MemoryStore{
		settlements: make(map[string]trade.Settlement, len(ds.Settlements)),
		cargoTypes:  make(map[string]trade.CargoType, len(ds.CargoTypes)),
		byCategory:  make(map[trade.Tag]string, len(ds.CargoTypes)),
		tradePool:   ds.TradePool,
		flagBonuses: ds.FlagBonuses,
	}

	for _, sett := range ds.Settlements {
		if err := validate.Struct(sett); err != nil {
			return nil, trade.WrapValidation(err, fmt.Sprintf("settlement %q", sett.Name))
		}
		if _, err := sett.SizeRating(); err != nil {
			return nil, err
		}
		if _, ok := s.settlements[sett.Name]; ok {
			return nil, trade.NewValidation(fmt.Sprintf("duplicate settlement %q", sett.Name))
		}
		for _, tag := range sett.UnknownTags() {
			s.warnings = append(s.warnings, fmt.Sprintf("settlement %q: unknown production tag %q", sett.Name, tag))
		}
		s.settlements[sett.Name] = sett
	}

	for _, cargo := range ds.CargoTypes {
		if err := validate.Struct(cargo); err != nil {
			return nil, trade.WrapValidation(err, fmt.Sprintf("cargo %q", cargo.Name))
		}
		if err := cargo.Validate(); err != nil {
			return nil, err
		}
		if _, ok := s.cargoTypes[cargo.Name]; ok {
			return nil, trade.NewValidation(fmt.Sprintf("duplicate cargo type %q", cargo.Name))
		}
		s.cargoTypes[cargo.Name] = cargo
		if _, ok := s.byCategory[cargo.Category]; !ok {
			s.byCategory[cargo.Category] = cargo.Name
		}
	}

	for _, tag := range ds.TradePool {
		if _, ok := s.byCategory[tag]; !ok {
			s.warnings = append(s.warnings, fmt.Sprintf("trade pool tag %q has no cargo type", tag))
		}
	}

	return s, nil
}

// Warnings returns configuration warnings collected during the load.
func (s *MemoryStore) Warnings() []string { return s.warnings }

// CargoType returns a cargo record by name.
func (s *MemoryStore) CargoType(name string) (*trade.CargoType, error) {
	cargo, ok := s.cargoTypes[name]
	if !ok {
		return nil, trade.NewNotFound(fmt.Sprintf("cargo type %q", name))
	}
	return &cargo, nil
}

// CargoTypeByCategory returns the cargo record for a production category.
func (s *MemoryStore) CargoTypeByCategory(category trade.Tag) (*trade.CargoType, error) {
	name, ok := s.byCategory[category]
	if !ok {
		return nil, trade.NewNotFound(fmt.Sprintf("no cargo type for category %q", category))
	}
	return s.CargoType(name)
}

// AllCargoTypes returns every cargo record, sorted by name.
func (s *MemoryStore) AllCargoTypes() []trade.CargoType {
	all := lo.Values(s.cargoTypes)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Settlement returns a settlement record by name.
func (s *MemoryStore) Settlement(name string) (*trade.Settlement, error) {
	sett, ok := s.settlements[name]
	if !ok {
		return nil, trade.NewNotFound(fmt.Sprintf("settlement %q", name))
	}
	return &sett, nil
}

// AllSettlements returns every settlement record, sorted by name.
func (s *MemoryStore) AllSettlements() []trade.Settlement {
	all := lo.Values(s.settlements)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// TradeGoodsPool returns the general pool drawn from when Trade is a
// settlement's only production flag.
func (s *MemoryStore) TradeGoodsPool() []trade.Tag { return s.tradePool }

// FlagBonus looks up a source-flag bonus for a cargo, e.g. the wine_quality
// bonus a famed region adds to its wine rolls.
func (s *MemoryStore) FlagBonus(flag, cargoName string) (int, bool) {
	byCargo, ok := s.flagBonuses[flag]
	if !ok {
		return 0, false
	}
	bonus, ok := byCargo[cargoName]
	return bonus, ok
}
