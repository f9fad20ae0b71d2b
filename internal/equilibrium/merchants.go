package equilibrium

import (
	"github.com/google/uuid"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/quality"
	"github.com/keddard/tradewinds/internal/trade"
)

// Role distinguishes buying from selling merchants.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Merchant is one individual trader present at a settlement on a visit. Each
// carries its own negotiation skill and honesty state, which is what makes
// haggling and dishonesty settlement- and visit-specific rather than global
// constants.
type Merchant struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Role        Role            `json:"role"`
	Negotiation int             `json:"negotiation"` // d10 skill
	Honesty     quality.Honesty `json:"honesty"`
}

// CountTable maps settlement size rating → merchant count per role.
type CountTable map[Role]map[int]int

// DefaultCounts: sellers are scarce everywhere; buyers scale with settlement
// size.
func DefaultCounts() CountTable {
	return CountTable{
		RoleSeller: {1: 1, 2: 1, 3: 2, 4: 2},
		RoleBuyer:  {1: 1, 2: 2, 3: 3, 4: 4},
	}
}

// Base chance that any given merchant misrepresents quality.
const defaultDishonestyChance = 0.25

var (
	merchantFirstNames = []string{
		"Aldric", "Berta", "Corvin", "Dagna", "Ewald", "Frieda",
		"Gustav", "Hilde", "Ivo", "Jutta", "Klaus", "Lena",
	}
	merchantTrades = []string{
		"the Factor", "the Chandler", "the Broker", "the Carter",
		"the Shipwright", "the Warehouser",
	}
)

// GenerateMerchants produces the merchants present for a role this visit.
// The count comes from the table (falling back to one merchant when the
// table has no entry); Trade settlements attract one extra. The draw depends
// only on the settlement and the entropy source, not on engine state.
func GenerateMerchants(sett *trade.Settlement, role Role, counts CountTable, src entropy.Source) ([]Merchant, error) {
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = DefaultCounts()
	}

	n := 1
	if byRole, ok := counts[role]; ok {
		if c, ok := byRole[props.SizeNumeric]; ok {
			n = c
		}
	}
	if props.Trade {
		n++
	}

	merchants := make([]Merchant, 0, n)
	for i := 0; i < n; i++ {
		first := merchantFirstNames[entropy.IntBetween(src, 0, len(merchantFirstNames)-1)]
		epithet := merchantTrades[entropy.IntBetween(src, 0, len(merchantTrades)-1)]
		merchants = append(merchants, Merchant{
			ID:          uuid.New(),
			Name:        first + " " + epithet,
			Role:        role,
			Negotiation: entropy.D10(src),
			Honesty:     quality.RollHonesty(defaultDishonestyChance, src),
		})
	}
	return merchants, nil
}
