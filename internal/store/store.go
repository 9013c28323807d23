package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/urduproxy/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_history (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		service_name TEXT NOT NULL,
		translated_text TEXT NOT NULL DEFAULT '',
		found BOOLEAN DEFAULT FALSE,
		status_code INTEGER DEFAULT 0,
		error_kind TEXT DEFAULT '',
		latency_ms INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_created ON translation_history(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRecord stores one handled request. The source text is NFC-normalized
// so equal inputs typed on different keyboards group together.
func (s *Store) SaveRecord(ctx context.Context, rec internal.TranslationRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_history (id, source_text, source_lang, target_lang, service_name, translated_text, found, status_code, error_kind, latency_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, normalizeText(rec.SourceText), rec.SourceLang, rec.TargetLang, rec.ServiceName,
		rec.TranslatedText, rec.Found, rec.StatusCode, rec.ErrorKind, rec.Latency.Milliseconds(), rec.Timestamp)
	return err
}

// List returns up to limit records, newest first. limit ≤ 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]internal.TranslationRecord, error) {
	query := `SELECT id, source_text, source_lang, target_lang, service_name, translated_text, found, status_code, error_kind, latency_ms, created_at FROM translation_history ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []internal.TranslationRecord
	for rows.Next() {
		var r internal.TranslationRecord
		var latencyMs int64
		if err := rows.Scan(&r.ID, &r.SourceText, &r.SourceLang, &r.TargetLang, &r.ServiceName,
			&r.TranslatedText, &r.Found, &r.StatusCode, &r.ErrorKind, &latencyMs, &r.Timestamp); err != nil {
			return nil, err
		}
		r.Latency = time.Duration(latencyMs) * time.Millisecond
		results = append(results, r)
	}

	return results, rows.Err()
}

// Stats summarises the recorded history.
type Stats struct {
	Total        int
	Translated   int
	NotFound     int
	Failed       int
	AvgLatencyMs float64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error_kind = '' AND found THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error_kind = '' AND NOT found THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error_kind != '' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(latency_ms), 0)
		FROM translation_history`).Scan(
		&stats.Total,
		&stats.Translated,
		&stats.NotFound,
		&stats.Failed,
		&stats.AvgLatencyMs,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Delete permanently removes a record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("record not found: %s", id)
	}
	return nil
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
