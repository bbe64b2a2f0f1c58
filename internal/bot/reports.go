package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/danylakopych/familybudgetbot/internal/budget"
	"github.com/danylakopych/familybudgetbot/internal/core"
	applog "github.com/danylakopych/familybudgetbot/internal/log"
)

// report renders the current-month summary with the per-category breakdown.
func (b *Bot) report(ctx context.Context) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("report read failed", applog.FieldError, err)
		return []Reply{{Text: msgReportFailed}}
	}
	if len(recs) == 0 {
		return []Reply{{Text: msgNoReportData}}
	}

	now := b.now()
	month := core.SameMonth(now)
	totals := core.Totals(recs, month)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Звіт за %s %d\n\n", monthNames[now.Month()-1], now.Year())
	fmt.Fprintf(&sb, "💰 Доходи: %.2f грн\n", totals.Income)
	fmt.Fprintf(&sb, "💸 Витрати: %.2f грн\n", totals.Expense)
	fmt.Fprintf(&sb, "📈 Баланс: %.2f грн\n\n", totals.Balance())
	sb.WriteString("📋 Витрати по категоріях:\n")

	// Percentages are undefined on a zero-expense month; the breakdown is
	// simply empty then.
	if totals.Expense > 0 {
		for _, ct := range core.ExpenseByCategory(recs, month) {
			fmt.Fprintf(&sb, "%s: %.2f грн (%.1f%%)\n", ct.Category, ct.Total, ct.Total/totals.Expense*100)
		}
	}
	return []Reply{{Text: sb.String()}}
}

// balance renders all-time totals.
func (b *Bot) balance(ctx context.Context) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("balance read failed", applog.FieldError, err)
		return []Reply{{Text: msgBalanceFailed}}
	}
	if len(recs) == 0 {
		return []Reply{{Text: msgNoTransactions}}
	}

	totals := core.Totals(recs, core.AllTime())
	emoji := "✅"
	if totals.Balance() < 0 {
		emoji = "⚠️"
	}
	text := fmt.Sprintf(
		"💳 Загальний баланс:\n\n💰 Доходи: %.2f грн\n💸 Витрати: %.2f грн\n%s Баланс: %.2f грн",
		totals.Income, totals.Expense, emoji, totals.Balance())
	return []Reply{{Text: text}}
}

// stats renders day, trailing-week and month-to-date expense totals plus the
// average daily spend for the elapsed part of the month.
func (b *Bot) stats(ctx context.Context) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("stats read failed", applog.FieldError, err)
		return []Reply{{Text: msgStatsFailed}}
	}
	if len(recs) == 0 {
		return []Reply{{Text: msgNoStatsData}}
	}

	now := b.now()
	today := core.Totals(recs, core.SameDay(now)).Expense
	week := core.Totals(recs, core.TrailingWeek(now)).Expense
	month := core.Totals(recs, core.SameMonth(now)).Expense

	text := fmt.Sprintf(
		"📊 Статистика витрат:\n\n📅 Сьогодні: %.2f грн\n📆 За тиждень: %.2f грн\n📈 За місяць: %.2f грн\n📊 Середньо за день: %.2f грн",
		today, week, month, core.AverageDaily(month, now))
	return []Reply{{Text: text}}
}

// categories renders the month's per-category expense totals, largest first.
func (b *Bot) categories(ctx context.Context) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("categories read failed", applog.FieldError, err)
		return []Reply{{Text: msgCategoriesFailed}}
	}

	breakdown := core.ExpenseByCategory(recs, core.SameMonth(b.now()))
	if len(breakdown) == 0 {
		return []Reply{{Text: msgNoMonthExpense}}
	}

	var sb strings.Builder
	sb.WriteString("🏷️ Витрати по категоріях за місяць:\n\n")
	for _, ct := range breakdown {
		fmt.Fprintf(&sb, "%s: %.2f грн\n", ct.Category, ct.Total)
	}
	return []Reply{{Text: sb.String()}}
}

// myExpenses lists the requester's expenses for today. The match is on the
// display name, which is the only identity the ledger carries.
func (b *Bot) myExpenses(ctx context.Context, ev Event) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("my expenses read failed", applog.FieldError, err)
		return []Reply{{Text: msgMyExpensesFailed}}
	}

	mine := core.UserDayExpenses(recs, b.now(), ev.Name)
	if len(mine) == 0 {
		return []Reply{{Text: msgNoDayExpense}}
	}

	var total float64
	var sb strings.Builder
	sb.WriteString("👤 Ваші витрати за сьогодні:\n\n")
	for _, r := range mine {
		total += r.AbsAmount()
		fmt.Fprintf(&sb, "%s: %.2f грн", r.Category, r.AbsAmount())
		if r.Description != "" {
			sb.WriteString(" - " + r.Description)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n💰 Загалом: %.2f грн", total)
	return []Reply{{Text: sb.String()}}
}

// budgetStatus renders every tracked category against its monthly limit.
func (b *Bot) budgetStatus(ctx context.Context) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("budget status read failed", applog.FieldError, err)
		return []Reply{{Text: msgBudgetFailed}}
	}

	month := core.SameMonth(b.now())
	var sb strings.Builder
	sb.WriteString("🎯 Статус бюджетів за місяць:\n\n")
	for _, cat := range b.policy.Categories() {
		limit, _ := b.policy.Limit(cat)
		spent := core.CategoryExpense(recs, month, cat)
		level := budget.Classify(spent, limit)
		fmt.Fprintf(&sb, "%s %s\n", level.Marker(), cat)
		fmt.Fprintf(&sb, "   Витрачено: %.2f / %.0f грн (%.1f%%)\n", spent, limit, spent/limit*100)
		fmt.Fprintf(&sb, "   Залишок: %.2f грн\n\n", limit-spent)
	}
	return []Reply{{Text: sb.String()}}
}

// deleteLast clears the requester's most recent row. The cleared position is
// left as a gap and is excluded from every later read.
func (b *Bot) deleteLast(ctx context.Context, ev Event) []Reply {
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("delete read failed", applog.FieldError, err)
		return []Reply{{Text: msgDeleteFailed}}
	}

	rec, ok := core.LastRecordBy(recs, ev.Name)
	if !ok {
		return []Reply{{Text: msgNothingDelete}}
	}

	if err := b.ledger.Clear(ctx, rec.Row); err != nil {
		b.log.Error("clear row failed", applog.FieldError, err, applog.FieldRow, rec.Row)
		return []Reply{{Text: msgDeleteFailed}}
	}

	description := rec.Description
	if description == "" {
		description = "-"
	}
	text := fmt.Sprintf(
		"🗑️ Видалено транзакцію:\n\n%s: %s грн\nКатегорія: %s\nОпис: %s",
		rec.Kind.Label(), strconv.FormatFloat(rec.Amount, 'f', -1, 64), rec.Category, description)
	return []Reply{{Text: text}}
}
