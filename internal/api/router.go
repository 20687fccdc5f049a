package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/config"
	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/db"
	"github.com/qninhdt/last-compound/server/internal/game"
	mw "github.com/qninhdt/last-compound/server/internal/middleware"
	"github.com/qninhdt/last-compound/server/internal/random"
	"github.com/qninhdt/last-compound/server/internal/validation"
)

// Server handles HTTP requests
type Server struct {
	router      chi.Router
	db          *db.DB
	catalog     *content.Catalog
	logger      *zap.Logger
	secret      []byte
	maxBody     int64
	games       map[string]*game.GameEngine
	gamesMu     sync.RWMutex
	rateLimiter *mw.RateLimiter
	now         func() time.Time
}

// NewServer creates a new API server
func NewServer(database *db.DB, catalog *content.Catalog, logger *zap.Logger, cfg config.Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:      chi.NewRouter(),
		db:          database,
		catalog:     catalog,
		logger:      logger,
		secret:      []byte(cfg.JWTSecret),
		maxBody:     cfg.MaxBodyBytes,
		games:       make(map[string]*game.GameEngine),
		rateLimiter: mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		now:         time.Now,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(s.maxBody))

	// Public endpoint (no auth required)
	s.router.Post("/api/auth/token", s.issueToken)

	s.router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(s.secret))
		r.Post("/api/sessions", s.createSession)
		r.Get("/api/sessions", s.listSessions)

		r.Route("/api/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Get("/history", s.getHistory)
			r.Post("/advance", command[emptyRequest](s, nil, applyAdvance))
			r.Post("/select", command(s, validateSelect, applySelect))
			r.Post("/move", command(s, validateMove, applyMove))
			r.Post("/attack", command(s, validateDieCommand, applyAttack))
			r.Post("/search", command(s, validateDieCommand, applySearch))
			r.Post("/fortify", command(s, validateDieCommand, applyFortify))
			r.Post("/sanitize", command(s, validateDieCommand, applySanitize))
			r.Post("/deposit", command(s, validateSurvivorCommand, applyDeposit))
			r.Post("/skill", command(s, validateSkill, applySkill))
			r.Post("/item", command(s, validateItem, applyItem))
			r.Post("/reroll", command(s, validateReroll, applyReroll))
			r.Post("/starvation", command(s, validateSurvivorCommand, applyStarvation))
			r.Post("/crossroad", command(s, validateCrossroad, applyCrossroad))
		})
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (sanitized)
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// decodeBody decodes an optional JSON body into v
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// sessionFor validates the session id, checks ownership and returns the live engine
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*game.GameEngine, bool) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}
	if !s.checkOwnership(w, r, sessionID) {
		return nil, false
	}

	s.gamesMu.RLock()
	engine, ok := s.games[sessionID]
	s.gamesMu.RUnlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return engine, true
}

// checkOwnership verifies the caller owns the session
func (s *Server) checkOwnership(w http.ResponseWriter, r *http.Request, sessionID string) bool {
	userID := mw.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user ID")
		return false
	}

	isOwner, err := s.db.IsSessionOwner(sessionID, userID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return false
	}
	if err != nil {
		s.logger.Error("ownership lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return false
	}
	if !isOwner {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

// archiveIfFinished stores the outcome of a finished session and drops its
// engine. Only the request that removes the engine archives it.
func (s *Server) archiveIfFinished(engine *game.GameEngine, snap *game.Snapshot) {
	if snap.Status == game.StatusPlaying {
		return
	}

	s.gamesMu.Lock()
	live, ok := s.games[engine.ID]
	if !ok || live != engine {
		s.gamesMu.Unlock()
		return
	}
	delete(s.games, engine.ID)
	s.gamesMu.Unlock()

	if err := s.db.SaveOutcome(snap); err != nil {
		s.logger.Error("archive outcome failed", zap.String("session_id", engine.ID), zap.Error(err))
		s.gamesMu.Lock()
		s.games[engine.ID] = engine
		s.gamesMu.Unlock()
		return
	}
	s.logger.Info("session archived",
		zap.String("session_id", engine.ID),
		zap.String("status", string(snap.Status)),
		zap.Int("day", snap.Day),
	)
}

// sessionView is the body returned for a live session
type sessionView struct {
	State           *game.Snapshot `json:"state"`
	EligibleChoices []bool         `json:"eligible_choices,omitempty"`
}

// sessionSummary is one entry of the caller's session list
type sessionSummary struct {
	ID   string `json:"id"`
	Live bool   `json:"live"`
}

func viewOf(snap *game.Snapshot, eligible []bool) sessionView {
	return sessionView{State: snap, EligibleChoices: eligible}
}

// newRand seeds a session generator, drawing a fresh seed when none is given
func newRand(seed *int64) (random.Source, int64, error) {
	if seed != nil {
		return random.New(*seed), *seed, nil
	}
	fresh, err := random.NewSeed()
	if err != nil {
		return nil, 0, err
	}
	return random.New(fresh), fresh, nil
}
