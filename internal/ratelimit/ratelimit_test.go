package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(perMinute int) (*Limiter, *time.Time) {
	l := New(Config{PerMinute: perMinute, CleanupInterval: time.Hour})
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(3)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow(1) {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if l.Allow(1) {
		t.Error("request over the limit allowed")
	}
}

func TestWindowResets(t *testing.T) {
	l, now := newTestLimiter(2)
	defer l.Stop()

	l.Allow(1)
	l.Allow(1)
	if l.Allow(1) {
		t.Fatal("limit not enforced")
	}

	*now = now.Add(61 * time.Second)
	if !l.Allow(1) {
		t.Error("new window did not reset the counter")
	}
}

func TestChatsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1)
	defer l.Stop()

	if !l.Allow(1) || !l.Allow(2) {
		t.Fatal("first request denied")
	}
	if l.Allow(1) {
		t.Error("chat 1 over limit allowed")
	}
	if l.ActiveChats() != 2 {
		t.Errorf("active chats = %d, want 2", l.ActiveChats())
	}
}

func TestCleanupDropsStaleChats(t *testing.T) {
	l, now := newTestLimiter(5)
	defer l.Stop()

	l.Allow(1)
	*now = now.Add(11 * time.Minute)
	l.Allow(2)
	l.cleanupStaleEntries()

	if l.ActiveChats() != 1 {
		t.Errorf("active chats = %d, want 1 after cleanup", l.ActiveChats())
	}
}
