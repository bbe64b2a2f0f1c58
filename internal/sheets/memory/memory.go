// Package memory is an in-process ledger store used by tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "github.com/danylakopych/familybudgetbot/internal/sheets"
)

// Header is the fixed first row of the ledger range.
var Header = []string{"Timestamp", "User", "Kind", "Amount", "Category", "Description"}

type Store struct {
	mu   sync.Mutex
	rows [][]string
}

var _ ports.Ledger = (*Store)(nil)

// New returns a store holding only the header row.
func New() *Store {
	return &Store{rows: [][]string{append([]string(nil), Header...)}}
}

// ReadAll returns a copy of every row, cleared gaps included.
func (s *Store) ReadAll(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Append adds one row at the end.
func (s *Store) Append(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

// Clear blanks the row at the given position, leaving a gap. The position is
// never reused.
func (s *Store) Clear(_ context.Context, row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 1 || row >= len(s.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	s.rows[row] = nil
	return nil
}
