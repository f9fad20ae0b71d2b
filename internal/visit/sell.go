package visit

import (
	"fmt"

	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/equilibrium"
	"github.com/keddard/tradewinds/internal/pricing"
	"github.com/keddard/tradewinds/internal/restriction"
	"github.com/keddard/tradewinds/internal/trade"
)

// SellRequest describes a sale attempt for a previously purchased lot.
type SellRequest struct {
	Lot            trade.CargoLot        `json:"lot"`
	SettlementName string                `json:"settlement_name"`
	Season         trade.Season          `json:"season"`
	Purchase       trade.PurchaseRecord  `json:"purchase"`
	DaysElapsed    int                   `json:"days_elapsed"`
	Haggle         *pricing.HaggleResult `json:"haggle,omitempty"`
	// SaleType requests a special disposal sale ("desperate" or "rumor");
	// empty means an ordinary sale.
	SaleType pricing.SaleType `json:"sale_type,omitempty"`
}

// SellReport is the result of a sell-side visit.
type SellReport struct {
	Settlement  string                     `json:"settlement"`
	Season      trade.Season               `json:"season"`
	Eligibility restriction.Eligibility    `json:"eligibility"`
	BuyerChance int                        `json:"buyer_chance,omitempty"`
	BuyerRoll   int                        `json:"buyer_roll,omitempty"`
	BuyerFound  bool                       `json:"buyer_found"`
	Village     *restriction.VillageResult `json:"village,omitempty"`
	// RumorMissed is set when a rumor sale was requested but the rumor check
	// failed; the sale proceeds at ordinary pricing.
	RumorMissed   bool                   `json:"rumor_missed,omitempty"`
	SellableUnits int                    `json:"sellable_units"`
	Equilibrium   equilibrium.Adjustment `json:"equilibrium"`
	Price         *pricing.Breakdown     `json:"price,omitempty"`
	Buyers        []equilibrium.Merchant `json:"buyers,omitempty"`
}

// Sell runs the sell-side flow: eligibility, buyer availability, village
// restriction, then pricing. Restriction failures produce a report, not an
// error; only malformed input errors.
func (c *Calculator) Sell(req SellRequest) (*SellReport, error) {
	if !req.Season.Valid() {
		return nil, trade.NewConfiguration(fmt.Sprintf("unknown season %q", req.Season))
	}
	sett, err := c.store.Settlement(req.SettlementName)
	if err != nil {
		return nil, err
	}
	cargo, err := c.store.CargoType(req.Lot.CargoName)
	if err != nil {
		return nil, err
	}
	if req.Lot.Quantity <= 0 {
		return nil, trade.NewValidation("lot quantity must be positive")
	}

	report := &SellReport{
		Settlement:  sett.Name,
		Season:      req.Season,
		Equilibrium: equilibrium.Neutral(),
	}

	report.Eligibility, err = restriction.CheckSaleEligibility(req.Lot, sett, req.Purchase, req.DaysElapsed)
	if err != nil {
		return nil, err
	}
	if !report.Eligibility.Eligible {
		c.log.Info("sale ineligible", "settlement", sett.Name, "errors", report.Eligibility.Errors)
		return report, nil
	}

	// Desperate sales are only legal at Trade settlements.
	if req.SaleType == pricing.SaleDesperate && !restriction.IsTradeSettlement(sett) {
		return nil, trade.NewValidation(
			fmt.Sprintf("desperate sales require a Trade settlement; %s is not one", sett.Name))
	}

	report.BuyerChance, err = restriction.BuyerChance(sett, req.Lot.CargoName)
	if err != nil {
		return nil, err
	}
	report.BuyerRoll = entropy.Percentile(c.src)
	report.BuyerFound = report.BuyerRoll <= report.BuyerChance
	if !report.BuyerFound {
		c.log.Info("no buyer found", "settlement", sett.Name, "cargo", req.Lot.CargoName,
			"roll", report.BuyerRoll, "chance", report.BuyerChance)
		return report, nil
	}

	village, err := restriction.CheckVillageRestrictions(sett, cargo, req.Season, c.src)
	if err != nil {
		return nil, err
	}
	report.Village = &village

	report.SellableUnits = req.Lot.Quantity
	if village.Restricted {
		if village.MaxQuantity == 0 {
			c.log.Info("village will not buy", "settlement", sett.Name,
				"cargo", cargo.Name, "season", req.Season)
			report.SellableUnits = 0
			return report, nil
		}
		if report.SellableUnits > village.MaxQuantity {
			report.SellableUnits = village.MaxQuantity
		}
	}

	saleType := req.SaleType
	if saleType == pricing.SaleRumor {
		if !entropy.Chance(c.src, rumorChance) {
			report.RumorMissed = true
			saleType = ""
		}
	}

	if c.eq != nil {
		report.Equilibrium = c.eq.Equilibrium(sett, cargo, req.Season)
		report.Buyers, err = equilibrium.GenerateMerchants(sett, equilibrium.RoleBuyer, c.counts, c.src)
		if err != nil {
			return nil, err
		}
	}

	if saleType != "" {
		report.Price, err = c.pricer.SpecialSalePrice(cargo.Name, report.SellableUnits, req.Season, saleType)
	} else {
		opts := pricing.SellOptions{Haggle: req.Haggle}
		if m := report.Equilibrium.PriceModifier(); m != nil {
			opts.Extra = append(opts.Extra, *m)
		}
		report.Price, err = c.pricer.SellBreakdown(cargo.Name, report.SellableUnits, req.Season, sett, opts)
	}
	if err != nil {
		return nil, err
	}

	c.log.Info("sale priced",
		"settlement", sett.Name,
		"cargo", cargo.Name,
		"units", report.SellableUnits,
		"unit_price", report.Price.FinalUnitPrice,
		"total", report.Price.TotalPrice,
	)
	return report, nil
}
