package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lu-zhengda/macsweep/internal/log"
)

// Deletion methods recorded with each entry.
const (
	MethodPermanent = "permanent"
	MethodPurge     = "purge"
)

// Entry represents a single cleanup operation recorded in the history.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Category   string    `json:"category"`
	Items      int       `json:"items"`
	Failed     int       `json:"failed"`
	BytesFreed int64     `json:"bytes_freed"`
	Method     string    `json:"method"`
}

// CategoryStats holds aggregate statistics for a single category.
type CategoryStats struct {
	BytesFreed int64 `json:"bytes_freed"`
	Cleanups   int   `json:"cleanups"`
}

// Stats holds aggregate cleanup statistics.
type Stats struct {
	TotalFreed    int64                    `json:"total_freed"`
	TotalCleanups int                      `json:"total_cleanups"`
	ByCategory    map[string]CategoryStats `json:"by_category"`
	Recent        []Entry                  `json:"recent"`
}

// History stores cleanup records in a SQLite database.
type History struct {
	db *sql.DB
}

// DefaultPath returns the default history database location:
// ~/.local/share/macsweep/history.db
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".local", "share", "macsweep", "history.db")
}

// Open opens or creates the history database at path.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	} {
		if _, err := db.Exec(p); err != nil {
			log.Debug().Err(err).Str("pragma", p).Msg("failed to set pragma")
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// Record stores entries in a single transaction.
func (h *History) Record(entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO cleanups (ts, category, items, failed, bytes_freed, method) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		method := e.Method
		if method == "" {
			method = MethodPermanent
		}
		if _, err := stmt.Exec(e.Timestamp.UnixNano(), e.Category, e.Items, e.Failed, e.BytesFreed, method); err != nil {
			return fmt.Errorf("failed to record %s: %w", e.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

// Load returns every entry, oldest first.
func (h *History) Load() ([]Entry, error) {
	return h.query(`SELECT ts, category, items, failed, bytes_freed, method FROM cleanups ORDER BY ts ASC, id ASC`)
}

func (h *History) query(q string, args ...any) ([]Entry, error) {
	rows, err := h.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts int64
		)
		if err := rows.Scan(&ts, &e.Category, &e.Items, &e.Failed, &e.BytesFreed, &e.Method); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Timestamp = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats computes aggregate statistics from the history.
func (h *History) Stats() (Stats, error) {
	s := Stats{ByCategory: make(map[string]CategoryStats)}

	rows, err := h.db.Query(`SELECT category, COUNT(*), COALESCE(SUM(bytes_freed), 0) FROM cleanups GROUP BY category`)
	if err != nil {
		return s, fmt.Errorf("failed to aggregate history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			cs   CategoryStats
		)
		if err := rows.Scan(&name, &cs.Cleanups, &cs.BytesFreed); err != nil {
			return s, fmt.Errorf("failed to scan history stats: %w", err)
		}
		s.ByCategory[name] = cs
		s.TotalCleanups += cs.Cleanups
		s.TotalFreed += cs.BytesFreed
	}
	if err := rows.Err(); err != nil {
		return s, err
	}

	recent, err := h.query(`SELECT ts, category, items, failed, bytes_freed, method FROM cleanups ORDER BY ts DESC, id DESC LIMIT 5`)
	if err != nil {
		return s, err
	}
	s.Recent = recent
	return s, nil
}
