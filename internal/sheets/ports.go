package sheets

import "context"

// Ports for the ledger store. The ledger is an append-only ordered sequence
// of six-cell rows with the header at position 0. None of the calls carry
// transactional semantics; each one is a single independent operation that
// may fail.
type (
	RowReader interface {
		// ReadAll returns every row of the ledger range, header included.
		// Cleared rows come back empty and must be kept in place so that
		// positions stay addressable.
		ReadAll(ctx context.Context) ([][]string, error)
	}

	RowAppender interface {
		// Append adds one row after the last occupied one.
		Append(ctx context.Context, row []string) error
	}

	RowClearer interface {
		// Clear blanks the row at the given position in the ReadAll
		// sequence (header at 0). The position is never reused.
		Clear(ctx context.Context, row int) error
	}

	// Ledger is the full store surface consumed by the bot.
	Ledger interface {
		RowReader
		RowAppender
		RowClearer
	}
)
