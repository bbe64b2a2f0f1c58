// Package core holds the ledger record model and the query engine that
// derives windowed aggregates from the raw sheet rows. Everything here is
// pure: rows in, values out, no I/O.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the two transaction types.
type Kind int

const (
	KindUnknown Kind = iota
	KindIncome
	KindExpense
)

// Localized kind labels as stored in the ledger.
const (
	LabelIncome  = "Дохід"
	LabelExpense = "Витрата"
)

// TimeLayout is the uk-UA short date-time format used for the timestamp cell.
const TimeLayout = "02.01.2006, 15:04"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid kind")
)

// Label returns the stored label for the kind, empty for KindUnknown.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return LabelIncome
	case KindExpense:
		return LabelExpense
	}
	return ""
}

// KindFromLabel maps a stored kind label back to its Kind.
// Anything unrecognized is KindUnknown and excluded from every aggregate.
func KindFromLabel(s string) Kind {
	switch strings.TrimSpace(s) {
	case LabelIncome:
		return KindIncome
	case LabelExpense:
		return KindExpense
	}
	return KindUnknown
}

// Record is one ledger row. Records are immutable once written; deletion
// clears the row in place and leaves a gap.
type Record struct {
	// Time is the parsed timestamp. Zero when the stored cell did not
	// parse; such records never match any date window.
	Time time.Time
	// User is the author's display name. Not a stable identity.
	User string
	Kind Kind
	// Amount is signed as stored: positive income, negative expense.
	Amount      float64
	Category    string
	Description string
	// Row is the position of the record in the read range, with the
	// header occupying position 0.
	Row int
}

// NewRecord builds a completed-session record. amount is the positive value
// entered by the user; the stored sign is derived from kind.
func NewRecord(now time.Time, user string, kind Kind, amount float64, category, description string) (Record, error) {
	if kind != KindIncome && kind != KindExpense {
		return Record{}, ErrInvalidKind
	}
	if !(amount > 0) || math.IsInf(amount, 1) {
		return Record{}, ErrInvalidAmount
	}
	signed := amount
	if kind == KindExpense {
		signed = -amount
	}
	return Record{
		Time:        now,
		User:        user,
		Kind:        kind,
		Amount:      signed,
		Category:    category,
		Description: description,
	}, nil
}

// AbsAmount returns the unsigned amount.
func (r Record) AbsAmount() float64 {
	return math.Abs(r.Amount)
}

// Cells serializes the record into the six-column row schema:
// Timestamp | User | Kind | Amount | Category | Description.
func (r Record) Cells() []string {
	return []string{
		r.Time.Format(TimeLayout),
		r.User,
		r.Kind.Label(),
		strconv.FormatFloat(r.Amount, 'f', -1, 64),
		r.Category,
		r.Description,
	}
}

// ParseRow maps one raw row at position row to a Record. It reports false for
// empty rows: cleared rows read back with no cells and must stay out of every
// aggregate. Parsing is forgiving: a malformed amount becomes 0 and an
// unparseable timestamp becomes the zero time (the record is kept but fails
// every window).
func ParseRow(row int, cells []string) (Record, bool) {
	empty := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			empty = false
			break
		}
	}
	if empty {
		return Record{}, false
	}

	return Record{
		Row:         row,
		Time:        parseTime(cell(cells, 0)),
		User:        cell(cells, 1),
		Kind:        KindFromLabel(cell(cells, 2)),
		Amount:      parseAmount(cell(cells, 3)),
		Category:    cell(cells, 4),
		Description: cell(cells, 5),
	}, true
}

// Load converts the full raw row sequence into records, skipping the header
// at position 0 and any cleared rows. Row positions are preserved so that a
// record can be mapped back to a clearable range.
func Load(rows [][]string) []Record {
	if len(rows) <= 1 {
		return nil
	}
	out := make([]Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if rec, ok := ParseRow(i, rows[i]); ok {
			out = append(out, rec)
		}
	}
	return out
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{TimeLayout, "02.01.2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
