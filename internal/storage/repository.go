// Package storage implements the ledger store ports on a local SQLite
// database. It mirrors the sheet layout: rows keep their insertion position
// forever and a cleared row stays behind as an empty gap.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	ports "github.com/danylakopych/familybudgetbot/internal/sheets"
	"github.com/danylakopych/familybudgetbot/internal/sheets/memory"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Ledger = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadAll returns the synthetic header row followed by every transaction in
// insertion order. Cleared transactions are emitted as empty rows so that
// positions line up with what a sheet range read would produce.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ts, user, kind, amount, category, description, cleared
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	out := [][]string{append([]string(nil), memory.Header...)}
	for rows.Next() {
		var ts, user, kind, amount, category, description string
		var cleared int
		if err := rows.Scan(&ts, &user, &kind, &amount, &category, &description, &cleared); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if cleared != 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, []string{ts, user, kind, amount, category, description})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Append inserts one six-cell row.
func (r *SQLiteRepository) Append(ctx context.Context, row []string) error {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (ts, user, kind, amount, category, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		get(0), get(1), get(2), get(3), get(4), get(5))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Clear marks the transaction at the given ReadAll position as cleared. The
// header sits at position 0, so position n is the n-th inserted transaction.
func (r *SQLiteRepository) Clear(ctx context.Context, row int) error {
	if row < 1 {
		return fmt.Errorf("row %d is not clearable", row)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET cleared = 1
		 WHERE id = (SELECT id FROM transactions ORDER BY id LIMIT 1 OFFSET ?)`,
		row-1)
	if err != nil {
		return fmt.Errorf("clear transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("clear transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("row %d out of range", row)
	}
	return nil
}
