// Package api serves the world over HTTP: read-only GET endpoints for
// observers, a WebSocket snapshot stream for render clients, and
// bearer-token POST endpoints for the command surface.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jmercer/vale/internal/engine"
	"github.com/jmercer/vale/internal/entity"
	"github.com/jmercer/vale/internal/mind"
	"github.com/jmercer/vale/internal/sim"
	"github.com/jmercer/vale/internal/vec"
)

// Server serves world state over HTTP. Handlers never touch the simulation
// directly: reads come from the latest published snapshot, writes go through
// the simulation's command queue.
type Server struct {
	Sim      *sim.Simulation
	Eng      *engine.Engine
	Mind     *mind.Client
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu     sync.RWMutex
	latest sim.Snapshot

	hub *hub
}

// Publish stores the newest snapshot and fans it out to stream clients.
// Called from the engine's frame callback.
func (s *Server) Publish(snap sim.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.broadcast(snap)
	}
}

func (s *Server) snapshot() sim.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.hub = newHub()
	askLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stream", s.hub.handleStream)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/command", s.adminOnly(s.handleCommand))
	mux.HandleFunc("/api/v1/ask", s.adminOnly(RateLimitMiddleware(askLimiter, s.handleAsk)))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "mind", s.Mind.Enabled())

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// VALE_CORS_ORIGINS to a comma-separated list of extra allowed origins;
// localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("VALE_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no VALE_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()

	agents, resources := 0, 0
	for _, e := range snap.Entities {
		if e.Kind == "resource" {
			resources++
		} else {
			agents++
		}
	}

	writeJSON(w, map[string]any{
		"name":      "Vale",
		"tick":      snap.Tick,
		"sim_time":  snap.SimTime,
		"speed":     s.Eng.Speed(),
		"agents":    agents,
		"resources": resources,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	out := make([]sim.EntityView, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		if e.Kind != "resource" {
			out = append(out, e)
		}
	}
	writeJSON(w, out)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot().Events)
}

// commandRequest is the wire form of one typed command.
type commandRequest struct {
	AgentID  entity.ID `json:"agent_id"`
	Action   string    `json:"action"`
	X        float64   `json:"x"`
	Z        float64   `json:"z"`
	TargetID entity.ID `json:"target_id"`
	Running  bool      `json:"running"`
	Message  string    `json:"message"`
	Duration float64   `json:"duration"`
	Distance float64   `json:"distance"`
	Amount   float64   `json:"amount"`
}

var commandKinds = map[string]sim.CommandKind{
	"move":           sim.CommandMoveTo,
	"move_to_entity": sim.CommandMoveToEntity,
	"stop":           sim.CommandStop,
	"say":            sim.CommandSay,
	"attack":         sim.CommandAttack,
	"follow":         sim.CommandFollow,
	"stop_follow":    sim.CommandStopFollow,
	"damage":         sim.CommandDamage,
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	kind, ok := commandKinds[req.Action]
	if !ok {
		http.Error(w, "unknown action: "+req.Action, http.StatusBadRequest)
		return
	}
	if req.AgentID == 0 {
		http.Error(w, "agent_id required", http.StatusBadRequest)
		return
	}

	s.Sim.Enqueue(sim.Command{
		AgentID:  req.AgentID,
		Kind:     kind,
		Position: vec.Vec3{X: req.X, Z: req.Z},
		TargetID: req.TargetID,
		Running:  req.Running,
		Message:  req.Message,
		Duration: req.Duration,
		Distance: req.Distance,
		Amount:   req.Amount,
	})
	writeJSON(w, map[string]any{"queued": true})
}

// handleAsk interprets a free-text request into a script and stages it for
// replay. Interpretation runs against the published snapshot, so the model
// call never blocks a tick.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if !s.Mind.Enabled() {
		http.Error(w, "interpreted commands disabled (no API key)", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		AgentID entity.ID `json:"agent_id"`
		Text    string    `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.AgentID == 0 || strings.TrimSpace(req.Text) == "" {
		http.Error(w, "agent_id and text required", http.StatusBadRequest)
		return
	}

	snap := s.snapshot()
	obs := make([]mind.Observation, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		obs = append(obs, mind.Observation{
			ID:         e.ID,
			Kind:       e.Kind,
			Name:       e.Name,
			Profession: e.Profession,
			X:          e.Position.X,
			Z:          e.Position.Z,
			Health:     e.Health,
			Dead:       e.Dead,
		})
	}

	steps, err := mind.Interpret(r.Context(), s.Mind, req.AgentID, obs, req.Text)
	if err != nil {
		slog.Warn("interpret failed", "agent", req.AgentID, "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	script := mind.NewScript(s.Sim.Registry, req.AgentID, steps)
	s.Sim.AddHook(script)
	writeJSON(w, map[string]any{"batch": script.Batch, "steps": steps})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Speed < 0 || req.Speed > 10 {
		http.Error(w, "speed must be in [0, 10]", http.StatusBadRequest)
		return
	}

	s.Eng.SetSpeed(req.Speed)
	slog.Info("speed changed", "speed", req.Speed)
	writeJSON(w, map[string]any{"speed": req.Speed})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
