package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tabtidy/internal/config"
	"tabtidy/internal/tabs"
)

// ErrNothingToUndo is returned when the journal slot is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Store manages journal and settings persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record overwrites the single journal slot with the given record.
func (s *Store) Record(ctx context.Context, record ActionRecord) error {
	closedJSON, err := json.Marshal(record.ClosedTabs)
	if err != nil {
		return fmt.Errorf("marshal closed tabs: %w", err)
	}
	batchesJSON, err := json.Marshal(record.GroupedIDBatches)
	if err != nil {
		return fmt.Errorf("marshal grouped batches: %w", err)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO action_journal (slot, kind, job_id, closed_tabs_json, grouped_batches_json, rationale, created_at)
         VALUES (1, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(slot) DO UPDATE SET
             kind = excluded.kind,
             job_id = excluded.job_id,
             closed_tabs_json = excluded.closed_tabs_json,
             grouped_batches_json = excluded.grouped_batches_json,
             rationale = excluded.rationale,
             created_at = excluded.created_at`,
		string(record.Kind),
		record.JobID,
		string(closedJSON),
		string(batchesJSON),
		record.Rationale,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// Last reads the journal slot. An empty slot returns ErrNothingToUndo.
func (s *Store) Last(ctx context.Context) (ActionRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT kind, job_id, closed_tabs_json, grouped_batches_json, rationale, created_at
         FROM action_journal WHERE slot = 1`,
	)

	var (
		kind        string
		jobID       string
		closedJSON  string
		batchesJSON string
		rationale   string
		createdAt   string
	)
	if err := row.Scan(&kind, &jobID, &closedJSON, &batchesJSON, &rationale, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ActionRecord{}, ErrNothingToUndo
		}
		return ActionRecord{}, fmt.Errorf("scan journal slot: %w", err)
	}

	record := ActionRecord{
		Kind:      Kind(kind),
		JobID:     jobID,
		Rationale: rationale,
	}
	if err := json.Unmarshal([]byte(closedJSON), &record.ClosedTabs); err != nil {
		return ActionRecord{}, fmt.Errorf("unmarshal closed tabs: %w", err)
	}
	if err := json.Unmarshal([]byte(batchesJSON), &record.GroupedIDBatches); err != nil {
		return ActionRecord{}, fmt.Errorf("unmarshal grouped batches: %w", err)
	}
	if record.ClosedTabs == nil {
		record.ClosedTabs = []tabs.ClosedTabMeta{}
	}
	if record.GroupedIDBatches == nil {
		record.GroupedIDBatches = [][]int64{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return ActionRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	record.CreatedAt = parsed
	return record, nil
}

// Clear empties the journal slot. Clearing an empty slot is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM action_journal WHERE slot = 1"); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// GetSetting reads one settings value. Missing keys return ("", false).
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scan setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting upserts one settings value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// RemoveSetting deletes one settings key. Missing keys are a no-op.
func (s *Store) RemoveSetting(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove setting %q: %w", key, err)
	}
	return nil
}
