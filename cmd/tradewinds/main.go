// Command tradewinds runs the settlement trade economy calculator: either a
// one-shot market visit printed to stdout, or the HTTP API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/keddard/tradewinds/internal/api"
	"github.com/keddard/tradewinds/internal/config"
	"github.com/keddard/tradewinds/internal/currency"
	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/equilibrium"
	"github.com/keddard/tradewinds/internal/refdata"
	"github.com/keddard/tradewinds/internal/trade"
	"github.com/keddard/tradewinds/internal/visit"
)

func main() {
	settlementFlag := flag.String("settlement", "", "run a one-shot visit at this settlement and exit")
	seasonFlag := flag.String("season", "", "season for the one-shot visit (defaults to config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(cfg.LogLevel),
		TimeFormat: time.Kitchen,
	})))

	store, err := openStore(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open reference store", "error", err)
		os.Exit(1)
	}
	for _, warning := range store.Warnings() {
		slog.Warn("reference data", "warning", warning)
	}

	var eq *equilibrium.Engine
	if !cfg.NoEquilibrium {
		eq = equilibrium.NewEngine(int64(cfg.Seed) + 1)
	}

	if *settlementFlag != "" {
		runVisit(cfg, store, eq, *settlementFlag, *seasonFlag)
		return
	}

	server := &api.Server{Store: store, Eq: eq, Port: cfg.Port, MerchantCounts: merchantCounts(cfg)}
	if err := server.Start(); err != nil {
		slog.Error("HTTP server error", "error", err)
		os.Exit(1)
	}
}

// openStore opens the SQLite reference database, seeding it with the
// built-in dataset on first run, and loads it into memory.
func openStore(path string) (*refdata.MemoryStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := refdata.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if !db.HasData() {
		slog.Info("seeding reference database", "path", path)
		if err := db.Seed(refdata.SeedDataset()); err != nil {
			return nil, err
		}
	}

	ds, err := db.Load()
	if err != nil {
		return nil, err
	}
	store, err := refdata.NewMemoryStore(ds)
	if err != nil {
		return nil, err
	}
	slog.Info("reference data loaded",
		"settlements", len(store.AllSettlements()),
		"cargo_types", len(store.AllCargoTypes()),
	)
	return store, nil
}

func runVisit(cfg config.Config, store refdata.Store, eq *equilibrium.Engine, settlement, seasonStr string) {
	if seasonStr == "" {
		seasonStr = cfg.Season
	}
	season, err := trade.ParseSeason(seasonStr)
	if err != nil {
		slog.Error("bad season", "error", err)
		os.Exit(1)
	}

	var src entropy.Source = entropy.NewCrypto()
	if cfg.Seed != 0 {
		src = entropy.NewSeeded(cfg.Seed)
	}

	calc := visit.NewCalculator(store, eq, src, slog.Default())
	calc.SetMerchantCounts(merchantCounts(cfg))
	report, err := calc.Buy(settlement, season, visit.BuyOptions{})
	if err != nil {
		slog.Error("visit failed", "error", err)
		os.Exit(1)
	}

	printReport(report)
}

func printReport(report *visit.BuyReport) {
	coins := currency.DefaultTable()

	fmt.Printf("%s, %s\n", report.Settlement, report.Season)
	fmt.Printf("availability: rolled %d against %d%%\n",
		report.Availability.Roll, report.Availability.Chance)
	if !report.Availability.Available {
		fmt.Println("no cargo available this visit")
		return
	}
	if report.OfferedUnits == 0 {
		fmt.Printf("market %s: nothing offered\n", report.Equilibrium.State)
		return
	}

	fmt.Printf("cargo: %s x%d (market %s)\n",
		report.Cargo.Name, report.OfferedUnits, report.Equilibrium.State)
	if q := report.Quality; q != nil {
		switch {
		case q.Wine != nil && q.ClaimedWine != nil:
			fmt.Printf("quality: %s (claimed %s)\n", q.Wine.Band, q.ClaimedWine.Band)
		case q.Wine != nil:
			fmt.Printf("quality: %s\n", q.Wine.Band)
		case q.ClaimedTier != "":
			fmt.Printf("quality: %s (claimed %s)\n", q.Tier, q.ClaimedTier)
		default:
			fmt.Printf("quality: %s\n", q.Tier)
		}
	}
	if p := report.Price; p != nil {
		fmt.Printf("unit price: %s\n", coins.Format(int64(p.FinalUnitPrice)))
		for _, m := range p.Modifiers {
			fmt.Printf("  %-28s %+.2f (%s)\n", m.Description, m.Amount, m.Rationale)
		}
		fmt.Printf("total (%d units): %s\n", p.TotalUnits, coins.Format(int64(p.TotalPrice)))
	}
	for _, seller := range report.Sellers {
		honesty := "honest"
		if seller.Honesty.Dishonest {
			honesty = "dishonest"
		}
		fmt.Printf("seller: %s (negotiation %d, %s)\n", seller.Name, seller.Negotiation, honesty)
	}
}

// merchantCounts builds a flat count-table override from config, or nil for
// the default per-size table.
func merchantCounts(cfg config.Config) equilibrium.CountTable {
	if cfg.Merchants <= 0 {
		return nil
	}
	perSize := map[int]int{1: cfg.Merchants, 2: cfg.Merchants, 3: cfg.Merchants, 4: cfg.Merchants}
	return equilibrium.CountTable{
		equilibrium.RoleBuyer:  perSize,
		equilibrium.RoleSeller: perSize,
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
