package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/config"
	applog "github.com/danylakopych/familybudgetbot/internal/log"
	"github.com/danylakopych/familybudgetbot/internal/sheets/cached"
	gsheet "github.com/danylakopych/familybudgetbot/internal/sheets/google"
	"github.com/danylakopych/familybudgetbot/internal/sheets/memory"
	"github.com/danylakopych/familybudgetbot/internal/storage"
)

// How long a fetched spreadsheet snapshot stays good for reports. Only the
// sheets backend is cached; sqlite and memory reads are local and cheap.
const sheetsReadTTL = 30 * time.Second

// New builds the ledger named by cfg.DataBackend.
func New(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*Result, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	log := logger.WithComponent(applog.ComponentStorage)

	t := Type(cfg.DataBackend)
	switch t {
	case Sheets:
		creds, err := cfg.Credentials()
		if err != nil {
			return nil, err
		}
		cli, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, creds)
		if err != nil {
			return nil, fmt.Errorf("initialize google sheets client: %w", err)
		}
		log.Info("initialized google sheets backend",
			"sheet", cfg.GoogleSheetName, "read_ttl", sheetsReadTTL)
		return &Result{Ledger: cached.Wrap(cli, sheetsReadTTL)}, nil

	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		log.Info("initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Ledger: repo, Cleanup: repo.Close}, nil

	case Memory:
		log.Info("initialized in-memory backend")
		return &Result{Ledger: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
