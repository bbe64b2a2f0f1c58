// Package ratelimit throttles per-chat message handling so a misbehaving
// client cannot flood the ledger backends through the bot.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu           sync.Mutex
	chats        map[int64]*chatInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	perMinute       int
	cleanupInterval time.Duration

	now func() time.Time
}

type chatInfo struct {
	windowStart time.Time
	requests    int
}

type Config struct {
	PerMinute       int
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		PerMinute:       30,
		CleanupInterval: 5 * time.Minute,
	}
}

func New(cfg Config) *Limiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = DefaultConfig().PerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		chats:           make(map[int64]*chatInfo),
		stopCleanup:     make(chan struct{}),
		perMinute:       cfg.PerMinute,
		cleanupInterval: cfg.CleanupInterval,
		now:             time.Now,
	}
	go l.startCleanup()
	return l
}

// Allow reports whether another message from the chat fits into the
// current one-minute window.
func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	chat, exists := l.chats[chatID]
	if !exists || now.Sub(chat.windowStart) > time.Minute {
		l.chats[chatID] = &chatInfo{windowStart: now, requests: 1}
		return true
	}

	chat.requests++
	return chat.requests <= l.perMinute
}

// ActiveChats returns the number of currently tracked chats.
func (l *Limiter) ActiveChats() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.chats)
}

func (l *Limiter) startCleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupStaleEntries()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) cleanupStaleEntries() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-10 * time.Minute)
	for id, chat := range l.chats {
		if chat.windowStart.Before(cutoff) {
			delete(l.chats, id)
		}
	}
}

// Stop shuts down the cleanup goroutine.
func (l *Limiter) Stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}
