package cached

import (
	"context"
	"testing"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/sheets/memory"
)

type countingLedger struct {
	*memory.Store
	reads int
}

func (c *countingLedger) ReadAll(ctx context.Context) ([][]string, error) {
	c.reads++
	return c.Store.ReadAll(ctx)
}

func newFixture(ttl time.Duration) (*Store, *countingLedger, *time.Time) {
	inner := &countingLedger{Store: memory.New()}
	s := Wrap(inner, ttl)
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, inner, &now
}

func TestReadAllServedFromCacheWithinTTL(t *testing.T) {
	s, inner, _ := newFixture(time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.ReadAll(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if inner.reads != 1 {
		t.Errorf("backend reads = %d, want 1", inner.reads)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	s, inner, now := newFixture(time.Minute)
	ctx := context.Background()

	_, _ = s.ReadAll(ctx)
	*now = now.Add(61 * time.Second)
	_, _ = s.ReadAll(ctx)

	if inner.reads != 2 {
		t.Errorf("backend reads = %d, want 2 after expiry", inner.reads)
	}
}

func TestWritesInvalidate(t *testing.T) {
	s, inner, _ := newFixture(time.Minute)
	ctx := context.Background()

	_, _ = s.ReadAll(ctx)
	row := []string{"15.03.2025, 12:00", "Данило", "Витрата", "-250", "🍔 Їжа", ""}
	if err := s.Append(ctx, row); err != nil {
		t.Fatal(err)
	}

	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("appended row not visible: %v", rows)
	}
	if inner.reads != 2 {
		t.Errorf("backend reads = %d, want 2 after invalidation", inner.reads)
	}

	if err := s.Clear(ctx, 1); err != nil {
		t.Fatal(err)
	}
	rows, _ = s.ReadAll(ctx)
	if len(rows[1]) != 0 {
		t.Errorf("cleared row still cached: %v", rows[1])
	}
}

func TestCachedRowsAreCopies(t *testing.T) {
	s, _, _ := newFixture(time.Minute)
	ctx := context.Background()
	_ = s.Append(ctx, []string{"a", "b", "c", "1", "d", ""})

	rows, _ := s.ReadAll(ctx)
	rows[1][3] = "tampered"

	again, _ := s.ReadAll(ctx)
	if again[1][3] != "1" {
		t.Error("cache exposed internal state")
	}
}
