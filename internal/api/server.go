// Package api serves the world state over HTTP. All endpoints are GET and
// read-only: the API observes the economy, it never steers it.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/talgya/wareworld/internal/engine"
	"github.com/talgya/wareworld/internal/entity"
	"github.com/talgya/wareworld/internal/events"
	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/world"
)

// Server serves the world state over HTTP.
type Server struct {
	Sim   *engine.Simulation
	Ring  *events.Ring // recent events for /events; may be nil
	Hub   *Hub         // live websocket feed; may be nil
	RunID string
	Port  int
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/entities", s.handleEntities)
	mux.HandleFunc("/api/v1/entity/", s.handleEntity)
	mux.HandleFunc("/api/v1/market", s.handleMarket)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	if s.Hub != nil {
		mux.HandleFunc("/ws", s.Hub.ServeWS)
	}

	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("api server failed", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("api encode failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":   s.RunID,
		"day":      s.Sim.LastDay,
		"entities": s.Sim.World.EntityCount(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.Stats)
}

type entityView struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Wares    map[string]uint64 `json:"wares"`
	Recipes  []string          `json:"recipes"`
	OfferIDs []market.OfferID  `json:"offer_ids"`
}

func viewEntity(id int, e *entity.Entity) entityView {
	wares := make(map[string]uint64, e.Wares.Len())
	for _, t := range e.Wares.TypesSorted() {
		wares[t.String()] = uint64(e.Wares.AmountOf(t))
	}
	recipes := make([]string, len(e.Recipes))
	for i, rec := range e.Recipes {
		recipes[i] = rec.String()
	}
	return entityView{ID: id, Name: e.Name, Wares: wares, Recipes: recipes, OfferIDs: e.OfferIDs}
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	list := make([]entityView, 0, s.Sim.World.EntityCount())
	for id, e := range s.Sim.World.Entities() {
		list = append(list, viewEntity(id, e))
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/entity/")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 || id >= s.Sim.World.EntityCount() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such entity"})
		return
	}
	writeJSON(w, http.StatusOK, viewEntity(id, s.Sim.World.Entity(world.EntityID(id))))
}

type offerView struct {
	ID        market.OfferID  `json:"id"`
	Side      string          `json:"side"`
	Ware      string          `json:"ware"`
	Remaining uint64          `json:"remaining"`
	UnitPrice uint64          `json:"unit_price"`
	Owner     market.EntityID `json:"owner"`
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	offers := s.Sim.World.Market().Offers()
	list := make([]offerView, 0, len(offers))
	for _, o := range offers {
		list = append(list, offerView{
			ID:        o.ID,
			Side:      o.Side.String(),
			Ware:      o.Ware.Type.String(),
			Remaining: uint64(o.Remaining()),
			UnitPrice: uint64(o.UnitPrice.Amount),
			Owner:     o.Owner,
		})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.Ring == nil {
		writeJSON(w, http.StatusOK, []events.Event{})
		return
	}
	writeJSON(w, http.StatusOK, s.Ring.Recent())
}
