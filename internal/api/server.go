// Package api provides the read-only HTTP API for watching a run.
// Every endpoint is GET; there is no control plane.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/antcolony/internal/engine"
	"github.com/talgya/antcolony/internal/persistence"
)

// Server serves the engine's published status and the results ledger.
type Server struct {
	Eng  *engine.Engine
	DB   *persistence.DB // Optional; ledger endpoints answer 503 without it
	Addr string

	// Requests per minute per client on ledger endpoints. 0 = 120.
	QueryRate int
}

// Handler builds the routed handler.
func (s *Server) Handler() http.Handler {
	rate := s.QueryRate
	if rate <= 0 {
		rate = 120
	}
	queryLimiter := NewRateLimiter(rate, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/episodes", RateLimitMiddleware(queryLimiter, s.handleEpisodes))
	mux.HandleFunc("GET /api/v1/teams", RateLimitMiddleware(queryLimiter, s.handleTeams))
	return corsMiddleware(mux)
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", s.Addr, "ledger", s.DB != nil)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP shutdown", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// CORS_ORIGINS adds a comma-separated list to the localhost dev servers.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) status(w http.ResponseWriter) (*engine.Status, bool) {
	st := s.Eng.Status()
	if st == nil {
		http.Error(w, "no episode started yet", http.StatusServiceUnavailable)
		return nil, false
	}
	return st, true
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, ok := s.status(w)
	if !ok {
		return
	}
	storage := 0
	if len(st.Snapshot.Colonies) > 0 {
		storage = st.Snapshot.Colonies[0].Storage
	}
	writeJSON(w, map[string]any{
		"run_id":         st.RunID,
		"team":           st.Team,
		"episode":        st.Episode,
		"running":        st.Running,
		"tick":           st.Snapshot.Tick,
		"done":           st.Snapshot.Done,
		"colony_storage": storage,
		"total_storage":  st.Snapshot.TotalStorage(),
		"remaining_food": st.Snapshot.RemainingFood(),
		"stats":          st.Stats,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	st, ok := s.status(w)
	if !ok {
		return
	}
	writeJSON(w, st.Snapshot)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	st, ok := s.status(w)
	if !ok {
		return
	}
	limit := queryLimit(r, 50)
	events := st.Events
	if cat := r.URL.Query().Get("category"); cat != "" {
		var filtered []engine.Event
		for _, e := range events {
			if e.Category == cat {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	writeJSON(w, events[start:])
}

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no results ledger", http.StatusServiceUnavailable)
		return
	}
	rows, err := s.DB.RecentEpisodes(queryLimit(r, 50))
	if err != nil {
		slog.Error("query episodes", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []persistence.EpisodeRow{}
	}
	writeJSON(w, rows)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no results ledger", http.StatusServiceUnavailable)
		return
	}
	type teamView struct {
		persistence.TeamRow
		StorageCurve []float64 `json:"storage_curve,omitempty"`
	}

	rows, err := s.DB.TeamStats(s.Eng.RunID)
	if err != nil {
		slog.Error("query teams", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	withCurve := r.URL.Query().Get("curve") == "1"
	out := make([]teamView, 0, len(rows))
	for _, row := range rows {
		v := teamView{TeamRow: row}
		if withCurve {
			if v.StorageCurve, err = s.DB.StorageCurve(s.Eng.RunID, row.Team); err != nil {
				slog.Error("query storage curve", "team", row.Team, "error", err)
				http.Error(w, "query failed", http.StatusInternalServerError)
				return
			}
		}
		out = append(out, v)
	}
	writeJSON(w, out)
}

func queryLimit(r *http.Request, def int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Debug("write response", "error", err)
	}
}
