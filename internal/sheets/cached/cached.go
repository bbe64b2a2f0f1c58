// Package cached wraps a ledger with a short-lived read cache. Every report
// command re-reads the whole sheet; a burst of commands in one chat would
// otherwise burn through the Sheets API quota for no new data.
package cached

import (
	"context"
	"sync"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/sheets"
)

// Store is a sheets.Ledger decorator that serves ReadAll from memory while
// the cached snapshot is younger than the TTL. Writes go straight through
// and drop the snapshot, so a follow-up read always sees the new row.
type Store struct {
	inner sheets.Ledger
	ttl   time.Duration

	mu        sync.Mutex
	rows      [][]string
	fetchedAt time.Time

	now func() time.Time
}

func Wrap(inner sheets.Ledger, ttl time.Duration) *Store {
	return &Store{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) ReadAll(ctx context.Context) ([][]string, error) {
	s.mu.Lock()
	if s.rows != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		rows := copyRows(s.rows)
		s.mu.Unlock()
		return rows, nil
	}
	s.mu.Unlock()

	rows, err := s.inner.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rows = copyRows(rows)
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return rows, nil
}

func (s *Store) Append(ctx context.Context, row []string) error {
	if err := s.inner.Append(ctx, row); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

func (s *Store) Clear(ctx context.Context, row int) error {
	if err := s.inner.Clear(ctx, row); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Invalidate drops the cached snapshot so the next read hits the backend.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.rows = nil
	s.mu.Unlock()
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
