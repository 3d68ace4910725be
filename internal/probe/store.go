// Package probe records raw key-command probes in SQLite. The SmartCast key
// space is undocumented; the log is how reverse-engineered (codeset, code)
// pairs and their outcomes survive between sessions.
package probe

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Probe is one recorded key-command attempt
type Probe struct {
	ID        int64     `json:"id"`
	Codeset   int       `json:"codeset"`
	Code      int       `json:"code"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Store handles SQLite probe log operations
type Store struct {
	db *sql.DB
}

// Open creates or opens the probe log at the given path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open probe log: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS key_probes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		codeset INTEGER NOT NULL,
		code INTEGER NOT NULL,
		action TEXT NOT NULL,
		success INTEGER NOT NULL,
		detail TEXT,
		created_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_key_probes_codeset ON key_probes(codeset, code)`)
	return err
}

// Record appends a probe and fills in its ID and timestamp
func (s *Store) Record(p *Probe) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO key_probes (codeset, code, action, success, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Codeset, p.Code, p.Action, p.Success, p.Detail, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record probe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read probe id: %w", err)
	}
	p.ID = id
	return nil
}

// List returns the most recent probes, newest first
func (s *Store) List(limit int) ([]Probe, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, codeset, code, action, success, detail, created_at FROM key_probes ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list probes: %w", err)
	}
	defer rows.Close()

	return scanProbes(rows)
}

// Successes returns only the probes the TV accepted, newest first
func (s *Store) Successes(limit int) ([]Probe, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, codeset, code, action, success, detail, created_at FROM key_probes WHERE success = 1 ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list probes: %w", err)
	}
	defer rows.Close()

	return scanProbes(rows)
}

func scanProbes(rows *sql.Rows) ([]Probe, error) {
	var probes []Probe
	for rows.Next() {
		var p Probe
		if err := rows.Scan(&p.ID, &p.Codeset, &p.Code, &p.Action, &p.Success, &p.Detail, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan probe: %w", err)
		}
		probes = append(probes, p)
	}
	return probes, rows.Err()
}
