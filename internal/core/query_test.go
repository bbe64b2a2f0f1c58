package core

import (
	"math"
	"testing"
	"time"
)

var ref = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func rec(t time.Time, user string, kind Kind, amount float64, category string) Record {
	return Record{Time: t, User: user, Kind: kind, Amount: amount, Category: category}
}

func TestWindows(t *testing.T) {
	cases := []struct {
		name   string
		window Window
		t      time.Time
		want   bool
	}{
		{"same day matches", SameDay(ref), ref.Add(-3 * time.Hour), true},
		{"previous day no match", SameDay(ref), ref.AddDate(0, 0, -1), false},
		{"zero time no day match", SameDay(ref), time.Time{}, false},
		{"six days ago in week", TrailingWeek(ref), ref.AddDate(0, 0, -6), true},
		{"exactly seven days ago in week", TrailingWeek(ref), ref.Add(-7 * 24 * time.Hour), true},
		{"eight days ago out of week", TrailingWeek(ref), ref.AddDate(0, 0, -8), false},
		{"zero time no week match", TrailingWeek(ref), time.Time{}, false},
		{"first of month matches", SameMonth(ref), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"same month other year no match", SameMonth(ref), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"zero time no month match", SameMonth(ref), time.Time{}, false},
		{"all time matches zero", AllTime(), time.Time{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.window(tc.t); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTotalsAndBalance(t *testing.T) {
	recs := []Record{
		rec(ref, "A", KindIncome, 1000, "💼 Зарплата"),
		rec(ref, "A", KindExpense, -250, "🍔 Їжа"),
		rec(ref, "B", KindExpense, -100, "🏠 Дім"),
		rec(ref.AddDate(0, -1, 0), "A", KindExpense, -999, "🍔 Їжа"), // out of month
		rec(ref, "A", KindUnknown, 77, ""),                           // unknown kind ignored
	}

	s := Totals(recs, SameMonth(ref))
	if s.Income != 1000 {
		t.Errorf("income = %v, want 1000", s.Income)
	}
	if s.Expense != 350 {
		t.Errorf("expense = %v, want 350", s.Expense)
	}
	if s.Balance() != s.Income-s.Expense {
		t.Errorf("balance = %v, want income-expense", s.Balance())
	}
}

func TestExpenseAbsRegardlessOfSign(t *testing.T) {
	// A positive-stored expense still counts by absolute value.
	recs := []Record{
		rec(ref, "A", KindExpense, 40, "🍔 Їжа"),
		rec(ref, "A", KindExpense, -60, "🍔 Їжа"),
	}
	if s := Totals(recs, AllTime()); s.Expense != 100 {
		t.Errorf("expense = %v, want 100", s.Expense)
	}
}

func TestExpenseByCategory(t *testing.T) {
	recs := []Record{
		rec(ref, "A", KindExpense, -100, "🏠 Дім"),
		rec(ref, "A", KindExpense, -300, "🍔 Їжа"),
		rec(ref, "B", KindExpense, -200, "🏠 Дім"),
		rec(ref, "B", KindExpense, -300, "🚗 Транспорт"),
		rec(ref, "A", KindIncome, 500, "💼 Зарплата"),
	}

	got := ExpenseByCategory(recs, SameMonth(ref))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Descending by total; 300-300 tie keeps input order (Їжа before Транспорт).
	if got[0].Category != "🍔 Їжа" || got[1].Category != "🚗 Транспорт" || got[2].Category != "🏠 Дім" {
		t.Errorf("order = %v", got)
	}

	// Partition property: category totals sum to the window expense total.
	var sum float64
	for _, ct := range got {
		sum += ct.Total
	}
	if want := Totals(recs, SameMonth(ref)).Expense; math.Abs(sum-want) > 1e-9 {
		t.Errorf("sum of category totals = %v, want %v", sum, want)
	}
}

func TestCategoryExpense(t *testing.T) {
	recs := []Record{
		rec(ref, "A", KindExpense, -100, "🍔 Їжа"),
		rec(ref, "B", KindExpense, -50, "🍔 Їжа"),
		rec(ref, "A", KindExpense, -70, "🏠 Дім"),
		rec(ref.AddDate(0, -1, 0), "A", KindExpense, -500, "🍔 Їжа"),
	}
	if got := CategoryExpense(recs, SameMonth(ref), "🍔 Їжа"); got != 150 {
		t.Errorf("got %v, want 150", got)
	}
	if got := CategoryExpense(recs, SameMonth(ref), "🎭 Розваги"); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestUserDayExpenses(t *testing.T) {
	recs := []Record{
		rec(ref, "Данило", KindExpense, -100, "🍔 Їжа"),
		rec(ref, "Данило", KindIncome, 500, "💼 Зарплата"),
		rec(ref, "Оля", KindExpense, -50, "🍔 Їжа"),
		rec(ref.AddDate(0, 0, -1), "Данило", KindExpense, -70, "🏠 Дім"),
	}
	got := UserDayExpenses(recs, ref, "Данило")
	if len(got) != 1 || got[0].Amount != -100 {
		t.Errorf("got %v, want single -100 expense", got)
	}
}

func TestAverageDaily(t *testing.T) {
	if got := AverageDaily(450, ref); got != 30 {
		t.Errorf("got %v, want 30 (450 over 15 elapsed days)", got)
	}
}

func TestLastRecordBy(t *testing.T) {
	recs := []Record{
		{Row: 1, User: "Данило"},
		{Row: 2, User: "Оля"},
		{Row: 4, User: "Данило"},
		{Row: 5, User: "Оля"},
	}
	got, ok := LastRecordBy(recs, "Данило")
	if !ok || got.Row != 4 {
		t.Errorf("got row %d ok=%v, want row 4", got.Row, ok)
	}
	if _, ok := LastRecordBy(recs, "Іван"); ok {
		t.Error("found a record for an unknown user")
	}
}
