// Package currency formats canonical penny amounts into named denominations
// for display. The denomination table and display order are configuration,
// not core pricing logic.
package currency

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/keddard/tradewinds/internal/trade"
)

// Denomination is one named coin with its value in the canonical smallest
// unit.
type Denomination struct {
	Name   string `json:"name"`
	Plural string `json:"plural"`
	Value  int64  `json:"value"` // pennies per coin
}

// Table is an ordered set of denominations, largest first.
type Table []Denomination

// DefaultTable: 1 crown = 20 shillings = 240 pennies.
func DefaultTable() Table {
	return Table{
		{Name: "crown", Plural: "crowns", Value: 240},
		{Name: "shilling", Plural: "shillings", Value: 12},
		{Name: "penny", Plural: "pennies", Value: 1},
	}
}

// Validate checks that the table is ordered largest-first and ends at the
// canonical unit.
func (t Table) Validate() error {
	if len(t) == 0 {
		return trade.NewConfiguration("denomination table is empty")
	}
	for i, d := range t {
		if d.Value <= 0 {
			return trade.NewConfiguration(fmt.Sprintf("denomination %q has non-positive value", d.Name))
		}
		if i > 0 && d.Value >= t[i-1].Value {
			return trade.NewConfiguration("denomination table must be ordered largest first")
		}
	}
	if t[len(t)-1].Value != 1 {
		return trade.NewConfiguration("denomination table must end at the canonical unit")
	}
	return nil
}

// Format renders a penny amount as mixed denominations, e.g.
// "1 crown 2 shillings 3 pennies". Zero formats as zero of the smallest
// denomination.
func (t Table) Format(pennies int64) string {
	negative := pennies < 0
	if negative {
		pennies = -pennies
	}

	var parts []string
	remaining := pennies
	for _, d := range t {
		count := remaining / d.Value
		if count == 0 {
			continue
		}
		remaining -= count * d.Value
		name := d.Name
		if count != 1 {
			name = d.Plural
		}
		parts = append(parts, humanize.Comma(count)+" "+name)
	}

	if len(parts) == 0 {
		small := t[len(t)-1]
		parts = append(parts, "0 "+small.Plural)
	}

	out := strings.Join(parts, " ")
	if negative {
		out = "-" + out
	}
	return out
}
