package bot

import "fmt"

// Category suggestion keyboards shown at the category step. Free text is
// still accepted; these are suggestions only.
var (
	expenseCategories = [][]string{
		{"🍔 Їжа", "🏠 Дім", "🚗 Транспорт"},
		{"💊 Здоров'я", "🎭 Розваги", "👕 Одяг"},
		{"📱 Зв'язок", "🎓 Освіта", "💰 Інше"},
	}

	incomeCategories = [][]string{
		{"💼 Зарплата", "💵 Бонус", "🎁 Подарунок"},
		{"📈 Інвестиції", "🏪 Продаж", "💰 Інше"},
	}
)

// Ukrainian month names in nominative case, January first.
var monthNames = [...]string{
	"січень", "лютий", "березень", "квітень", "травень", "червень",
	"липень", "серпень", "вересень", "жовтень", "листопад", "грудень",
}

const (
	msgExpenseAmountPrompt = "💸 Введіть суму витрати (грн):"
	msgIncomeAmountPrompt  = "💰 Введіть суму доходу (грн):"
	msgInvalidAmount       = "❌ Введіть коректне число більше 0!"
	msgDescriptionPrompt   = "📝 Введіть опис (або /skip для пропуску):"
	msgSaveFailed          = "❌ Помилка при збереженні. Спробуйте ще раз."

	msgNoReportData   = "📭 Немає даних для звіту"
	msgNoTransactions = "📭 Немає транзакцій"
	msgNoStatsData    = "📭 Немає даних"
	msgNoMonthExpense = "📭 Немає витрат за цей місяць"
	msgNoDayExpense   = "📭 У вас немає витрат сьогодні"
	msgNothingDelete  = "❌ У вас немає транзакцій для видалення"

	msgReportFailed     = "❌ Помилка при формуванні звіту"
	msgBalanceFailed    = "❌ Помилка при отриманні балансу"
	msgStatsFailed      = "❌ Помилка при отриманні статистики"
	msgCategoriesFailed = "❌ Помилка при отриманні категорій"
	msgMyExpensesFailed = "❌ Помилка при отриманні витрат"
	msgBudgetFailed     = "❌ Помилка при отриманні бюджету"
	msgDeleteFailed     = "❌ Помилка при видаленні"
)

func startText(name, username string) string {
	if username == "" {
		username = "користувач"
	}
	return fmt.Sprintf("👋 Привіт, %s! Я бот для сімейного бюджету.\n\n", name) +
		fmt.Sprintf("📊 Ваш username: @%s\n\n", username) +
		"Основні команди:\n" +
		"💸 /add - Додати витрату\n" +
		"💰 /income - Додати дохід\n" +
		"📊 /report - Звіт за місяць\n" +
		"💳 /balance - Загальний баланс\n\n" +
		"Статистика:\n" +
		"📈 /stats - Статистика за період\n" +
		"🏷️ /categories - Витрати по категоріях\n" +
		"👤 /myexpenses - Мої витрати сьогодні\n" +
		"🎯 /budget - Статус бюджетів\n\n" +
		"Керування:\n" +
		"📥 /export - Експорт даних\n" +
		"🗑️ /delete - Видалити останню транзакцію\n" +
		"❓ /help - Допомога"
}

func helpText() string {
	return "❓ Довідка по командах:\n\n" +
		"💸 /add - Додати витрату через діалог\n" +
		"💰 /income - Додати дохід\n" +
		"📊 /report - Детальний звіт за місяць з категоріями\n" +
		"💳 /balance - Загальний баланс доходів і витрат\n" +
		"📈 /stats - Статистика: сьогодні, тиждень, місяць\n" +
		"🏷️ /categories - Витрати згруповані по категоріях\n" +
		"👤 /myexpenses - Тільки ваші витрати за сьогодні\n" +
		"🎯 /budget - Перевірка бюджетів по категоріях\n" +
		"📥 /export - Отримати посилання для експорту в Excel\n" +
		"🗑️ /delete - Видалити вашу останню транзакцію\n\n" +
		"💡 Підказка: Після /add або /income просто слідуйте інструкціям бота!"
}

func exportText(spreadsheetID string) string {
	return "📥 Експорт даних:\n\n" +
		fmt.Sprintf("Excel: https://docs.google.com/spreadsheets/d/%s/export?format=xlsx\n\n", spreadsheetID) +
		"Або відкрийте таблицю:\n" +
		fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", spreadsheetID)
}

func categoryPrompt(expense bool) string {
	if expense {
		return "🏷️ Виберіть категорію витрати:"
	}
	return "🏷️ Виберіть категорію доходу:"
}
