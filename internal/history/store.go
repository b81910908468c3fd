package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"introcut/internal/config"
)

// Store persists detection outcomes in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// storedTimeFormat is RFC 3339 with a fixed-width nine-digit fraction so the
// TEXT column orders chronologically under lexicographic ORDER BY. Timestamps
// are stored in UTC, keeping the offset suffix uniform.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the history database under the configured
// history directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.HistoryDir, "history.db"))
}

// OpenPath initializes or connects to the history database at an explicit
// location.
func OpenPath(dbPath string) (*Store, error) {
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
	if err := store.initSchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save persists a detection record. A missing ID is assigned; a missing
// timestamp is set to the current time. The stored record is returned.
func (s *Store) Save(ctx context.Context, record Record) (Record, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(record.MediaPath) == "" {
		return Record{}, errors.New("save detection: empty media path")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Details == "" {
		record.Details = "{}"
	}

	var outro sql.NullFloat64
	if record.OutroStart != nil {
		outro = sql.NullFloat64{Float64: *record.OutroStart, Valid: true}
	}

	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx,
			`INSERT INTO detections (id, media_path, subtitle_path, intro_end, outro_start, confidence, method, details, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.MediaPath, record.SubtitlePath, record.IntroEnd, outro,
			record.Confidence, record.Method, record.Details,
			record.CreatedAt.UTC().Format(storedTimeFormat))
		return execErr
	})
	if err != nil {
		return Record{}, fmt.Errorf("save detection: %w", err)
	}
	return record, nil
}

// Recent returns the newest records, most recent first. A non-positive limit
// returns every record.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, media_path, subtitle_path, intro_end, outro_start, confidence, method, details, created_at
		FROM detections ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ForMedia returns every record for one media path, most recent first.
func (s *Store) ForMedia(ctx context.Context, mediaPath string) ([]Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, media_path, subtitle_path, intro_end, outro_start, confidence, method, details, created_at
		 FROM detections WHERE media_path = ? ORDER BY created_at DESC, id DESC`, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("list detections for media: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Clear removes every record and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var deleted int64
	err := retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, "DELETE FROM detections")
		if execErr != nil {
			return execErr
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("clear detections: %w", err)
	}
	return deleted, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			record    Record
			outro     sql.NullFloat64
			createdAt string
		)
		if err := rows.Scan(&record.ID, &record.MediaPath, &record.SubtitlePath, &record.IntroEnd,
			&outro, &record.Confidence, &record.Method, &record.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		if outro.Valid {
			value := outro.Float64
			record.OutroStart = &value
		}
		parsed, err := time.Parse(storedTimeFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse detection timestamp: %w", err)
		}
		record.CreatedAt = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detections: %w", err)
	}
	return records, nil
}
