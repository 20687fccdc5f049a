package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/db"
	"github.com/qninhdt/last-compound/server/internal/game"
	mw "github.com/qninhdt/last-compound/server/internal/middleware"
	"github.com/qninhdt/last-compound/server/internal/validation"
)

// issueToken hands out a guest bearer token for a fresh user id
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	userID := uuid.NewString()
	token, err := mw.IssueToken(s.secret, userID, s.now())
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data: map[string]string{
			"token":   token,
			"user_id": userID,
		},
	})
}

// createSession sets up a new session owned by the caller
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed *int64 `json:"seed"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rng, seed, err := newRand(req.Seed)
	if err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	// Generate server-side session ID (don't trust client)
	sessionID := uuid.NewString()
	engine, err := game.NewGameEngine(sessionID, s.catalog, rng, s.logger)
	if err != nil {
		s.logger.Error("session setup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	snap, eligible := engine.View()

	err = s.db.SaveSession(db.Session{
		ID:          sessionID,
		OwnerID:     mw.UserIDFromContext(r.Context()),
		Seed:        seed,
		ObjectiveID: snap.Objective.ID,
	})
	if err != nil {
		s.logger.Error("save session failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	s.gamesMu.Lock()
	s.games[sessionID] = engine
	s.gamesMu.Unlock()

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    viewOf(snap, eligible),
	})
}

// listSessions lists all sessions owned by the caller
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.db.GetUserSessions(mw.UserIDFromContext(r.Context()))
	if err != nil {
		s.logger.Error("list sessions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	sessions := make([]sessionSummary, 0, len(ids))
	s.gamesMu.RLock()
	for _, id := range ids {
		_, live := s.games[id]
		sessions = append(sessions, sessionSummary{ID: id, Live: live})
	}
	s.gamesMu.RUnlock()

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    sessions,
	})
}

// getSession returns the current snapshot of a live session
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    viewOf(engine.View()),
	})
}

// deleteSession drops a session, live or archived, and its outcome
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkOwnership(w, r, sessionID) {
		return
	}

	s.gamesMu.Lock()
	delete(s.games, sessionID)
	s.gamesMu.Unlock()

	if err := s.db.DeleteSession(sessionID); err != nil {
		s.logger.Error("delete session failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    "Session deleted",
	})
}

// getHistory returns the archived outcome of a finished session
func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if err := validation.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if !s.checkOwnership(w, r, sessionID) {
		return
	}

	outcome, err := s.db.LoadOutcome(sessionID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session has not finished")
		return
	}
	if err != nil {
		s.logger.Error("load outcome failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    outcome,
	})
}

// command builds a handler that decodes T, validates it and applies it to the engine.
// Rule violations are silent no-ops in the engine, so the caller always gets the new snapshot.
func command[T any](s *Server, validate func(T) error, apply func(*game.GameEngine, T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, ok := s.sessionFor(w, r)
		if !ok {
			return
		}

		var req T
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if validate != nil {
			if err := validate(req); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		apply(engine, req)
		snap, eligible := engine.View()
		s.archiveIfFinished(engine, snap)

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    viewOf(snap, eligible),
		})
	}
}

type emptyRequest struct{}

type survivorRequest struct {
	SurvivorID string `json:"survivor_id"`
}

type dieRequest struct {
	SurvivorID string `json:"survivor_id"`
	Die        int    `json:"die"`
}

type moveRequest struct {
	SurvivorID string `json:"survivor_id"`
	LocationID string `json:"location_id"`
	Die        int    `json:"die"`
}

type skillRequest struct {
	SurvivorID string `json:"survivor_id"`
	TargetID   string `json:"target_id"`
}

type itemRequest struct {
	SurvivorID string `json:"survivor_id"`
	ItemID     string `json:"item_id"`
}

type rerollRequest struct {
	Die int `json:"die"`
}

type crossroadRequest struct {
	SurvivorID string `json:"survivor_id"`
	Choice     int    `json:"choice"`
}

func applyAdvance(e *game.GameEngine, _ emptyRequest) { e.AdvancePhase() }

func validateSelect(req survivorRequest) error {
	return validation.ValidateOptionalEntityID("survivor", req.SurvivorID)
}

func applySelect(e *game.GameEngine, req survivorRequest) { e.SelectSurvivor(req.SurvivorID) }

func validateSurvivorCommand(req survivorRequest) error {
	return validation.ValidateEntityID("survivor", req.SurvivorID)
}

func applyDeposit(e *game.GameEngine, req survivorRequest) { e.DepositItems(req.SurvivorID) }

func applyStarvation(e *game.GameEngine, req survivorRequest) { e.ResolveStarvation(req.SurvivorID) }

func validateDieCommand(req dieRequest) error {
	if err := validation.ValidateEntityID("survivor", req.SurvivorID); err != nil {
		return err
	}
	return validation.ValidateDieValue(req.Die)
}

func applyAttack(e *game.GameEngine, req dieRequest) { e.Attack(req.SurvivorID, req.Die) }

func applySearch(e *game.GameEngine, req dieRequest) { e.Search(req.SurvivorID, req.Die) }

func applyFortify(e *game.GameEngine, req dieRequest) { e.Fortify(req.SurvivorID, req.Die) }

func applySanitize(e *game.GameEngine, req dieRequest) { e.Sanitize(req.SurvivorID, req.Die) }

func validateMove(req moveRequest) error {
	if err := validation.ValidateEntityID("survivor", req.SurvivorID); err != nil {
		return err
	}
	if err := validation.ValidateEntityID("location", req.LocationID); err != nil {
		return err
	}
	return validation.ValidateDieValue(req.Die)
}

func applyMove(e *game.GameEngine, req moveRequest) {
	e.MoveSurvivor(req.SurvivorID, req.LocationID, req.Die)
}

func validateSkill(req skillRequest) error {
	if err := validation.ValidateEntityID("survivor", req.SurvivorID); err != nil {
		return err
	}
	return validation.ValidateOptionalEntityID("target", req.TargetID)
}

func applySkill(e *game.GameEngine, req skillRequest) { e.UseSkill(req.SurvivorID, req.TargetID) }

func validateItem(req itemRequest) error {
	if err := validation.ValidateEntityID("survivor", req.SurvivorID); err != nil {
		return err
	}
	return validation.ValidateEntityID("item", req.ItemID)
}

func applyItem(e *game.GameEngine, req itemRequest) { e.UseItem(req.SurvivorID, req.ItemID) }

func validateReroll(req rerollRequest) error {
	return validation.ValidateDieValue(req.Die)
}

func applyReroll(e *game.GameEngine, req rerollRequest) { e.RerollDie(req.Die) }

func validateCrossroad(req crossroadRequest) error {
	if err := validation.ValidateOptionalEntityID("survivor", req.SurvivorID); err != nil {
		return err
	}
	return validation.ValidateChoice(req.Choice)
}

func applyCrossroad(e *game.GameEngine, req crossroadRequest) {
	e.ResolveCrossroad(req.SurvivorID, req.Choice)
}
