package core

import (
	"sort"
	"time"
)

// Window is a date predicate used to scope aggregations. Records whose
// timestamp failed to parse carry the zero time and match no window.
type Window func(t time.Time) bool

// SameDay matches timestamps on the same calendar day as ref.
func SameDay(ref time.Time) Window {
	ry, rm, rd := ref.Date()
	return func(t time.Time) bool {
		if t.IsZero() {
			return false
		}
		y, m, d := t.Date()
		return y == ry && m == rm && d == rd
	}
}

// TrailingWeek matches timestamps within the trailing 7-day window ending at
// ref. Only the lower bound is enforced.
func TrailingWeek(ref time.Time) Window {
	from := ref.Add(-7 * 24 * time.Hour)
	return func(t time.Time) bool {
		return !t.IsZero() && !t.Before(from)
	}
}

// SameMonth matches timestamps in the same calendar month and year as ref.
func SameMonth(ref time.Time) Window {
	return func(t time.Time) bool {
		return !t.IsZero() && t.Year() == ref.Year() && t.Month() == ref.Month()
	}
}

// AllTime matches every parseable timestamp.
func AllTime() Window {
	return func(t time.Time) bool { return true }
}

// Summary holds windowed totals. Expense is the sum of absolute expense
// amounts regardless of stored sign.
type Summary struct {
	Income  float64
	Expense float64
}

// Balance is income minus expense.
func (s Summary) Balance() float64 {
	return s.Income - s.Expense
}

// Totals sums income and expense within the window.
func Totals(recs []Record, in Window) Summary {
	var s Summary
	for _, r := range recs {
		if !in(r.Time) {
			continue
		}
		switch r.Kind {
		case KindIncome:
			s.Income += r.Amount
		case KindExpense:
			s.Expense += r.AbsAmount()
		}
	}
	return s
}

// CategoryTotal is one entry of a per-category expense breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// ExpenseByCategory partitions windowed expense amounts by category, sorted
// by descending total. Ties keep first-seen input order.
func ExpenseByCategory(recs []Record, in Window) []CategoryTotal {
	totals := map[string]float64{}
	var order []string
	for _, r := range recs {
		if r.Kind != KindExpense || !in(r.Time) {
			continue
		}
		if _, seen := totals[r.Category]; !seen {
			order = append(order, r.Category)
		}
		totals[r.Category] += r.AbsAmount()
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// CategoryExpense sums windowed expenses for one category. Used for the
// targeted budget re-check after an append.
func CategoryExpense(recs []Record, in Window, category string) float64 {
	var total float64
	for _, r := range recs {
		if r.Kind == KindExpense && r.Category == category && in(r.Time) {
			total += r.AbsAmount()
		}
	}
	return total
}

// UserDayExpenses returns the expenses recorded by user (exact display-name
// match) on the same calendar day as ref, in input order.
func UserDayExpenses(recs []Record, ref time.Time, user string) []Record {
	day := SameDay(ref)
	var out []Record
	for _, r := range recs {
		if r.Kind == KindExpense && r.User == user && day(r.Time) {
			out = append(out, r)
		}
	}
	return out
}

// AverageDaily divides a month-to-date total by the elapsed days of the
// month, not the full month length.
func AverageDaily(monthTotal float64, ref time.Time) float64 {
	return monthTotal / float64(ref.Day())
}

// LastRecordBy scans the records from the end backward and returns the
// highest-positioned record whose user matches exactly. Cleared rows are
// already absent from recs and are never considered.
func LastRecordBy(recs []Record, user string) (Record, bool) {
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].User == user {
			return recs[i], true
		}
	}
	return Record{}, false
}
