package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/core"
	"github.com/danylakopych/familybudgetbot/internal/sheets"
	"github.com/danylakopych/familybudgetbot/internal/sheets/memory"
)

func seededBot(t *testing.T) (*Bot, *memory.Store) {
	t.Helper()
	store := memory.New()
	// This month, various days.
	seedRow(t, store, testNow, "Данило", core.LabelExpense, -250, "🍔 Їжа", "lunch")
	seedRow(t, store, testNow.Add(-2*time.Hour), "Данило", core.LabelExpense, -100, "🏠 Дім", "")
	seedRow(t, store, testNow.AddDate(0, 0, -3), "Оля", core.LabelExpense, -150, "🍔 Їжа", "")
	seedRow(t, store, testNow.AddDate(0, 0, -10), "Оля", core.LabelIncome, 2000, "💼 Зарплата", "")
	// Previous month, must stay out of month windows.
	seedRow(t, store, testNow.AddDate(0, -1, 0), "Данило", core.LabelExpense, -999, "🎭 Розваги", "old")
	return newTestBot(store), store
}

func TestReportMonthTotals(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/report")
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	text := replies[0].Text

	for _, want := range []string{
		"Звіт за березень 2025",
		"💰 Доходи: 2000.00 грн",
		"💸 Витрати: 500.00 грн",
		"📈 Баланс: 1500.00 грн",
		"🍔 Їжа: 400.00 грн (80.0%)",
		"🏠 Дім: 100.00 грн (20.0%)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "🎭 Розваги") {
		t.Error("report included a previous-month expense")
	}
}

func TestReportEmptyLedger(t *testing.T) {
	b := newTestBot(memory.New())
	replies := send(t, b, "/report")
	if len(replies) != 1 || replies[0].Text != msgNoReportData {
		t.Fatalf("expected no-data notice, got %+v", replies)
	}
}

func TestReportZeroExpenseMonthHasNoPercentages(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow, "Оля", core.LabelIncome, 2000, "💼 Зарплата", "")
	b := newTestBot(store)

	replies := send(t, b, "/report")
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	if strings.Contains(replies[0].Text, "NaN") {
		t.Errorf("report attempted a percentage on zero expenses:\n%s", replies[0].Text)
	}
	if !strings.Contains(replies[0].Text, "💰 Доходи: 2000.00 грн") {
		t.Errorf("income missing:\n%s", replies[0].Text)
	}
}

func TestBalanceAllTime(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/balance")
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	text := replies[0].Text
	// All-time: 2000 income, 500 this month + 999 last month expense.
	for _, want := range []string{
		"💰 Доходи: 2000.00 грн",
		"💸 Витрати: 1499.00 грн",
		"✅ Баланс: 501.00 грн",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("balance missing %q:\n%s", want, text)
		}
	}
}

func TestBalanceNegativeMarker(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow, "Данило", core.LabelExpense, -100, "🍔 Їжа", "")
	b := newTestBot(store)
	replies := send(t, b, "/balance")
	if !strings.Contains(replies[0].Text, "⚠️ Баланс: -100.00 грн") {
		t.Errorf("negative balance marker missing:\n%s", replies[0].Text)
	}
}

func TestStats(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/stats")
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	text := replies[0].Text
	for _, want := range []string{
		"📅 Сьогодні: 350.00 грн",
		"📆 За тиждень: 500.00 грн",
		"📈 За місяць: 500.00 грн",
		// 500 over 15 elapsed days
		"📊 Середньо за день: 33.33 грн",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("stats missing %q:\n%s", want, text)
		}
	}
}

func TestCategoriesBreakdown(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/categories")
	text := replies[0].Text
	foodIdx := strings.Index(text, "🍔 Їжа: 400.00 грн")
	homeIdx := strings.Index(text, "🏠 Дім: 100.00 грн")
	if foodIdx < 0 || homeIdx < 0 {
		t.Fatalf("breakdown lines missing:\n%s", text)
	}
	if foodIdx > homeIdx {
		t.Error("categories not sorted by descending total")
	}
}

func TestCategoriesEmptyMonth(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow.AddDate(0, -2, 0), "Данило", core.LabelExpense, -10, "🍔 Їжа", "")
	b := newTestBot(store)
	replies := send(t, b, "/categories")
	if replies[0].Text != msgNoMonthExpense {
		t.Errorf("expected empty-month notice, got %q", replies[0].Text)
	}
}

func TestMyExpensesFiltersUserAndDay(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/myexpenses")
	text := replies[0].Text
	for _, want := range []string{
		"🍔 Їжа: 250.00 грн - lunch",
		"🏠 Дім: 100.00 грн",
		"💰 Загалом: 350.00 грн",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("myexpenses missing %q:\n%s", want, text)
		}
	}
	// Оля's same-day food expense was three days ago and must not appear;
	// neither must Данило's previous-month entry.
	if strings.Contains(text, "150.00") || strings.Contains(text, "999") {
		t.Errorf("foreign rows leaked in:\n%s", text)
	}
}

func TestMyExpensesNoneToday(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow, "Оля", core.LabelExpense, -10, "🍔 Їжа", "")
	b := newTestBot(store) // requester is Данило
	replies := send(t, b, "/myexpenses")
	if replies[0].Text != msgNoDayExpense {
		t.Errorf("expected no-expenses notice, got %q", replies[0].Text)
	}
}

func TestBudgetStatusReport(t *testing.T) {
	b, _ := seededBot(t)
	replies := send(t, b, "/budget")
	text := replies[0].Text
	for _, want := range []string{
		"🎯 Статус бюджетів за місяць:",
		"✅ 🍔 Їжа",
		"Витрачено: 400.00 / 10000 грн (4.0%)",
		"Залишок: 9600.00 грн",
		"✅ 📱 Зв'язок",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("budget status missing %q:\n%s", want, text)
		}
	}
}

func TestBudgetStatusMarkers(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow, "Данило", core.LabelExpense, -7000, "🍔 Їжа", "")   // 70% warning
	seedRow(t, store, testNow, "Данило", core.LabelExpense, -4600, "🏠 Дім", "")   // 92% critical
	b := newTestBot(store)
	text := send(t, b, "/budget")[0].Text
	if !strings.Contains(text, "🟡 🍔 Їжа") {
		t.Errorf("warning marker missing:\n%s", text)
	}
	if !strings.Contains(text, "🔴 🏠 Дім") {
		t.Errorf("critical marker missing:\n%s", text)
	}
}

func TestExportLinks(t *testing.T) {
	b := newTestBot(memory.New())
	text := send(t, b, "/export")[0].Text
	if !strings.Contains(text, "https://docs.google.com/spreadsheets/d/test-spreadsheet/export?format=xlsx") {
		t.Errorf("export link missing:\n%s", text)
	}
}

func TestHelpAndStart(t *testing.T) {
	b := newTestBot(memory.New())
	if text := send(t, b, "/help")[0].Text; !strings.Contains(text, "/myexpenses") {
		t.Errorf("help incomplete:\n%s", text)
	}
	start := send(t, b, "/start")[0].Text
	if !strings.Contains(start, "Данило") || !strings.Contains(start, "@danylo") {
		t.Errorf("greeting incomplete:\n%s", start)
	}
}

func TestStartFallbackUsername(t *testing.T) {
	b := newTestBot(memory.New())
	replies := b.Handle(context.Background(), Event{UserID: 9, Name: "Оля", Text: "/start"})
	if !strings.Contains(replies[0].Text, "@користувач") {
		t.Errorf("missing username fallback:\n%s", replies[0].Text)
	}
}

func TestDeleteLastClearsHighestMatchingRow(t *testing.T) {
	b, store := seededBot(t)

	replies := send(t, b, "/delete")
	if len(replies) != 1 {
		t.Fatalf("replies = %+v", replies)
	}
	// Данило's newest row is the previous-month Розваги entry at position 5.
	if !strings.Contains(replies[0].Text, "🎭 Розваги") {
		t.Errorf("deleted the wrong row:\n%s", replies[0].Text)
	}

	rows, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[5]) != 0 {
		t.Errorf("row 5 not cleared: %v", rows[5])
	}

	// The cleared row is gone from every later aggregate.
	text := send(t, b, "/balance")[0].Text
	if !strings.Contains(text, "💸 Витрати: 500.00 грн") {
		t.Errorf("cleared row still counted:\n%s", text)
	}

	// A second delete picks the same user's next highest position.
	replies = send(t, b, "/delete")
	if !strings.Contains(replies[0].Text, "🏠 Дім") {
		t.Errorf("second delete picked wrong row:\n%s", replies[0].Text)
	}
}

func TestDeleteWithoutMatch(t *testing.T) {
	store := memory.New()
	seedRow(t, store, testNow, "Оля", core.LabelExpense, -10, "🍔 Їжа", "")
	b := newTestBot(store)
	replies := send(t, b, "/delete")
	if replies[0].Text != msgNothingDelete {
		t.Errorf("expected nothing-to-delete notice, got %q", replies[0].Text)
	}
}

type brokenLedger struct {
	sheets.Ledger
}

func (brokenLedger) ReadAll(context.Context) ([][]string, error) {
	return nil, errors.New("network down")
}

func TestReadFailuresYieldGenericNotices(t *testing.T) {
	b := newTestBot(brokenLedger{})
	cases := map[string]string{
		"/report":     msgReportFailed,
		"/balance":    msgBalanceFailed,
		"/stats":      msgStatsFailed,
		"/categories": msgCategoriesFailed,
		"/myexpenses": msgMyExpensesFailed,
		"/budget":     msgBudgetFailed,
		"/delete":     msgDeleteFailed,
	}
	for cmd, want := range cases {
		replies := send(t, b, cmd)
		if len(replies) != 1 || replies[0].Text != want {
			t.Errorf("%s: got %+v, want %q", cmd, replies, want)
		}
	}
}
