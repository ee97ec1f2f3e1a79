package history

import (
	"context"
	"database/sql"
	"fmt"

	"emailcrawler/internal/usecase"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens or creates the database file at path and its email_history table.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS email_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT,
		emails TEXT
	)`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.Debug("sqlite history store opened", zap.String("path", path))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, url string, emails []string) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO email_history (url, emails) VALUES (?, ?)", url, joinEmails(emails))
	if err != nil {
		s.logger.Error("history append error", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}

// Latest returns up to n records, newest first.
func (s *SQLiteStore) Latest(ctx context.Context, n int) ([]usecase.HistoryRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id, url, emails FROM email_history ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []usecase.HistoryRecord
	for rows.Next() {
		var rec usecase.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Emails); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
