// Package budget holds the per-category monthly limits and the threshold
// classification applied after every tracked expense.
package budget

import (
	"fmt"
	"sort"
)

// Level is the budget consumption class for a category.
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelCritical
)

// Classification thresholds as a fraction of the monthly limit.
const (
	warningRatio  = 0.70
	criticalRatio = 0.90
)

// Policy maps expense categories to their monthly limits in currency units.
// Categories absent from Limits are never budget-checked.
type Policy struct {
	Limits map[string]float64
	// Order is the display order for the budget report. Categories missing
	// from it fall back to sorted order.
	Order []string
}

// DefaultPolicy returns the family's monthly limits (грн).
func DefaultPolicy() Policy {
	return Policy{
		Limits: map[string]float64{
			"🍔 Їжа":       10000,
			"🏠 Дім":       5000,
			"🚗 Транспорт": 3000,
			"💊 Здоров'я":  2000,
			"🎭 Розваги":   2000,
			"👕 Одяг":      3000,
			"📱 Зв'язок":   500,
			"🎓 Освіта":    2000,
		},
		Order: []string{
			"🍔 Їжа",
			"🏠 Дім",
			"🚗 Транспорт",
			"💊 Здоров'я",
			"🎭 Розваги",
			"👕 Одяг",
			"📱 Зв'язок",
			"🎓 Освіта",
		},
	}
}

// Limit reports the monthly limit for category and whether it is tracked.
func (p Policy) Limit(category string) (float64, bool) {
	limit, ok := p.Limits[category]
	return limit, ok
}

// Categories returns the tracked categories in report order.
func (p Policy) Categories() []string {
	out := make([]string, 0, len(p.Limits))
	seen := map[string]bool{}
	for _, cat := range p.Order {
		if _, ok := p.Limits[cat]; ok && !seen[cat] {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var rest []string
	for cat := range p.Limits {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Classify buckets month-to-date spending against a limit:
// spent/limit >= 90% is critical, >= 70% is a warning, anything below is ok.
func Classify(spent, limit float64) Level {
	ratio := spent / limit
	switch {
	case ratio >= criticalRatio:
		return LevelCritical
	case ratio >= warningRatio:
		return LevelWarning
	}
	return LevelOK
}

// Marker returns the status emoji used in the budget report.
func (l Level) Marker() string {
	switch l {
	case LevelCritical:
		return "🔴"
	case LevelWarning:
		return "🟡"
	}
	return "✅"
}

// Notice formats the post-append alert for a tracked category. The second
// return is false when spending is still in the ok band: silence is the
// expected steady state.
func (p Policy) Notice(category string, spent float64) (string, bool) {
	limit, ok := p.Limit(category)
	if !ok {
		return "", false
	}
	percentage := spent / limit * 100
	switch Classify(spent, limit) {
	case LevelCritical:
		return fmt.Sprintf(
			"⚠️ УВАГА! Бюджет категорії \"%s\" майже вичерпано!\n\nВитрачено: %.2f / %.0f грн (%.1f%%)",
			category, spent, limit, percentage), true
	case LevelWarning:
		return fmt.Sprintf(
			"🟡 Бюджет категорії \"%s\" на %.1f%%\nЗалишилось: %.2f грн",
			category, percentage, limit-spent), true
	}
	return "", false
}
