// Package backend selects and builds the ledger store the bot runs against.
package backend

import (
	"github.com/danylakopych/familybudgetbot/internal/sheets"
)

// Type names a ledger backend.
type Type string

const (
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Sheets, SQLite, Memory:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result holds the built ledger and an optional cleanup function.
type Result struct {
	Ledger  sheets.Ledger
	Cleanup CleanupFunc
}
