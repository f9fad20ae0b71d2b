// Package api serves the trade calculator over HTTP. All endpoints are
// read-only; the visit endpoint is rate limited because each call rolls a
// fresh market state for a game table.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/keddard/tradewinds/internal/availability"
	"github.com/keddard/tradewinds/internal/entropy"
	"github.com/keddard/tradewinds/internal/equilibrium"
	"github.com/keddard/tradewinds/internal/pricing"
	"github.com/keddard/tradewinds/internal/refdata"
	"github.com/keddard/tradewinds/internal/trade"
	"github.com/keddard/tradewinds/internal/visit"
)

// Server exposes the reference data and calculator over HTTP.
type Server struct {
	Store refdata.Store
	Eq    *equilibrium.Engine // nil disables the equilibrium layer
	Port  int
	// MerchantCounts overrides the merchant count table; nil uses the default.
	MerchantCounts equilibrium.CountTable
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	visitLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/settlements", s.handleSettlements)
	mux.HandleFunc("GET /api/v1/settlement/{name}", s.handleSettlementDetail)
	mux.HandleFunc("GET /api/v1/cargo", s.handleCargo)
	mux.HandleFunc("GET /api/v1/quote", s.handleQuote)
	mux.HandleFunc("GET /api/v1/visit", RateLimitMiddleware(visitLimiter, s.handleVisit))
	return mux
}

// Start serves the HTTP API; it blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"settlements": len(s.Store.AllSettlements()),
		"cargo_types": len(s.Store.AllCargoTypes()),
		"equilibrium": s.Eq != nil,
	})
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.AllSettlements())
}

func (s *Server) handleSettlementDetail(w http.ResponseWriter, r *http.Request) {
	sett, err := s.Store.Settlement(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	props, err := trade.ResolveProperties(sett)
	if err != nil {
		writeError(w, err)
		return
	}
	chance, err := availability.Chance(sett)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"settlement":          sett,
		"properties":          props,
		"availability_chance": chance,
	})
}

func (s *Server) handleCargo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.AllCargoTypes())
}

// handleQuote returns a price preview for a cargo/season: base price, the
// four-season comparison, and the canonical haggle outcome table.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	cargoName := r.URL.Query().Get("cargo")
	season, err := trade.ParseSeason(r.URL.Query().Get("season"))
	if err != nil {
		writeError(w, err)
		return
	}

	engine := pricing.NewEngine(s.Store)
	base, err := engine.BasePrice(cargoName, season, "")
	if err != nil {
		writeError(w, err)
		return
	}
	seasonal, err := engine.SeasonalComparisonFor(cargoName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cargo":      cargoName,
		"season":     season,
		"base_price": base,
		"seasonal":   seasonal,
		"buy":        pricing.HaggleOutcomes(base, pricing.TransactionBuy),
		"sell":       pricing.HaggleOutcomes(base, pricing.TransactionSell),
	})
}

// handleVisit rolls a full buy-side visit. A seed parameter makes the result
// reproducible; without one the roll uses crypto randomness.
func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	season, err := trade.ParseSeason(q.Get("season"))
	if err != nil {
		writeError(w, err)
		return
	}

	var src entropy.Source = entropy.NewCrypto()
	if seedStr := q.Get("seed"); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			writeError(w, trade.NewValidation("seed must be an unsigned integer"))
			return
		}
		src = entropy.NewSeeded(seed)
	}

	calc := visit.NewCalculator(s.Store, s.Eq, src, slog.Default())
	calc.SetMerchantCounts(s.MerchantCounts)
	report, err := calc.Buy(q.Get("settlement"), season, visit.BuyOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: validation and
// configuration problems are the caller's fault, unknown keys are 404.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case trade.IsNotFound(err):
		status = http.StatusNotFound
	case trade.IsValidation(err), trade.IsConfiguration(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
