package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qninhdt/last-compound/server/internal/game"
)

// ErrNotFound is returned when a session or outcome does not exist
var ErrNotFound = errors.New("not found")

// DB wraps database operations
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Session is a registered session
type Session struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Seed        int64     `json:"seed"`
	ObjectiveID string    `json:"objective_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Outcome is the archived result of a finished session
type Outcome struct {
	SessionID   string    `json:"session_id"`
	Status      string    `json:"status"`
	Day         int       `json:"day"`
	Morale      int       `json:"morale"`
	ObjectiveID string    `json:"objective_id"`
	Survivors   []string  `json:"survivors"`
	Log         []string  `json:"log"`
	FinishedAt  time.Time `json:"finished_at"`
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dbPath, err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs database migrations
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		objective_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS outcomes (
		session_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		day INTEGER NOT NULL,
		morale INTEGER NOT NULL,
		objective_id TEXT NOT NULL,
		survivors_json TEXT NOT NULL,
		log_json TEXT NOT NULL,
		finished_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_owner_id ON sessions(owner_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveSession registers a new session and its owner
func (db *DB) SaveSession(s Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO sessions (id, owner_id, seed, objective_id)
		VALUES (?, ?, ?, ?)
	`, s.ID, s.OwnerID, s.Seed, s.ObjectiveID)
	return err
}

// GetSession returns a registered session
func (db *DB) GetSession(sessionID string) (*Session, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	s := &Session{}
	err := db.conn.QueryRow(`
		SELECT id, owner_id, seed, objective_id, created_at FROM sessions WHERE id = ?
	`, sessionID).Scan(&s.ID, &s.OwnerID, &s.Seed, &s.ObjectiveID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// IsSessionOwner checks if user owns the session
func (db *DB) IsSessionOwner(sessionID, userID string) (bool, error) {
	s, err := db.GetSession(sessionID)
	if err != nil {
		return false, err
	}
	return s.OwnerID == userID, nil
}

// GetUserSessions returns all sessions owned by a user, newest first
func (db *DB) GetUserSessions(userID string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id FROM sessions WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// SaveOutcome archives a finished session
func (db *DB) SaveOutcome(snap *game.Snapshot) error {
	if snap.Status == game.StatusPlaying {
		return fmt.Errorf("session %s is still playing", snap.ID)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	survivors := make([]string, 0, len(snap.Survivors))
	for _, sv := range snap.Survivors {
		survivors = append(survivors, sv.ID)
	}
	survivorsJSON, err := json.Marshal(survivors)
	if err != nil {
		return err
	}
	logJSON, err := json.Marshal(snap.Log)
	if err != nil {
		return err
	}

	objectiveID := ""
	if snap.Objective != nil {
		objectiveID = snap.Objective.ID
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, snap.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("session %s: %w", snap.ID, ErrNotFound)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO outcomes (
			session_id, status, day, morale, objective_id, survivors_json, log_json
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, string(snap.Status), snap.Day, snap.Morale, objectiveID, survivorsJSON, logJSON)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadOutcome returns the archived outcome of a session
func (db *DB) LoadOutcome(sessionID string) (*Outcome, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var (
		o                      = &Outcome{SessionID: sessionID}
		survivorsJSON, logJSON string
	)
	err := db.conn.QueryRow(`
		SELECT status, day, morale, objective_id, survivors_json, log_json, finished_at
		FROM outcomes
		WHERE session_id = ?
	`, sessionID).Scan(&o.Status, &o.Day, &o.Morale, &o.ObjectiveID, &survivorsJSON, &logJSON, &o.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("outcome %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(survivorsJSON), &o.Survivors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(logJSON), &o.Log); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteSession deletes a session and its outcome
func (db *DB) DeleteSession(sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM outcomes WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return err
	}
	return tx.Commit()
}
