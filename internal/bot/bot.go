// Package bot is the conversational core: it routes inbound chat events to
// report queries or to the guided add dialog, and turns them into outbound
// replies. Transport calls stay behind the adapter boundary; Handle only
// touches the ledger store and the session store.
package bot

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danylakopych/familybudgetbot/internal/budget"
	"github.com/danylakopych/familybudgetbot/internal/core"
	applog "github.com/danylakopych/familybudgetbot/internal/log"
	"github.com/danylakopych/familybudgetbot/internal/session"
	"github.com/danylakopych/familybudgetbot/internal/sheets"
)

// Event is one inbound chat message.
type Event struct {
	UserID int64
	// Name is the author's display name; it is also the ledger identity.
	// Two accounts with the same display name are indistinguishable.
	Name     string
	Username string
	Text     string
}

// Reply is one outbound message. Keyboard is an ordered grid of suggested
// replies; RemoveKeyboard drops any menu previously shown.
type Reply struct {
	Text           string
	Keyboard       [][]string
	OneTime        bool
	Resize         bool
	RemoveKeyboard bool
}

// EventPublisher receives a notification after every durable append.
type EventPublisher interface {
	PublishRecordAppended(ctx context.Context, rec core.Record) error
}

// Bot wires the command router, the dialog state machine, the query engine
// and the budget policy together.
type Bot struct {
	ledger        sheets.Ledger
	sessions      *session.Store
	policy        budget.Policy
	events        EventPublisher
	spreadsheetID string
	now           func() time.Time
	log           *applog.Logger
}

// Option configures optional collaborators.
type Option func(*Bot)

// WithClock overrides the reference-time source.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// WithEvents attaches a post-append event publisher.
func WithEvents(p EventPublisher) Option {
	return func(b *Bot) { b.events = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *applog.Logger) Option {
	return func(b *Bot) { b.log = l }
}

func New(ledger sheets.Ledger, policy budget.Policy, spreadsheetID string, opts ...Option) *Bot {
	b := &Bot{
		ledger:        ledger,
		sessions:      session.NewStore(),
		policy:        policy,
		spreadsheetID: spreadsheetID,
		now:           time.Now,
		log:           applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentBot),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sessions exposes the session store for tests.
func (b *Bot) Sessions() *session.Store {
	return b.sessions
}

// Handle dispatches one inbound event and returns the outbound replies.
// Unrecognized commands and plain text without a live session produce
// nothing. Handle never panics outward; store failures come back as generic
// failure notices.
func (b *Bot) Handle(ctx context.Context, ev Event) []Reply {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		return b.handleCommand(ctx, ev, strings.TrimPrefix(text, "/"))
	}
	return b.handleDialog(ctx, ev, text)
}

func (b *Bot) handleCommand(ctx context.Context, ev Event, cmd string) []Reply {
	switch cmd {
	case "start":
		return []Reply{{Text: startText(ev.Name, ev.Username)}}
	case "help":
		return []Reply{{Text: helpText()}}
	case "add":
		b.sessions.Start(ev.UserID, core.KindExpense)
		return []Reply{{Text: msgExpenseAmountPrompt}}
	case "income":
		b.sessions.Start(ev.UserID, core.KindIncome)
		return []Reply{{Text: msgIncomeAmountPrompt}}
	case "report":
		return b.report(ctx)
	case "balance":
		return b.balance(ctx)
	case "stats":
		return b.stats(ctx)
	case "categories":
		return b.categories(ctx)
	case "myexpenses":
		return b.myExpenses(ctx, ev)
	case "budget":
		return b.budgetStatus(ctx)
	case "export":
		return []Reply{{Text: exportText(b.spreadsheetID)}}
	case "delete":
		return b.deleteLast(ctx, ev)
	case "skip":
		// Only meaningful as the description reply; otherwise it is an
		// unrecognized command and is dropped.
		if sess, ok := b.sessions.Get(ev.UserID); ok && sess.Step == session.StepDescription {
			return b.complete(ctx, ev, sess, "")
		}
		return nil
	}
	return nil
}

func (b *Bot) handleDialog(ctx context.Context, ev Event, text string) []Reply {
	sess, ok := b.sessions.Get(ev.UserID)
	if !ok {
		return nil
	}

	switch sess.Step {
	case session.StepAmount:
		amount, err := parsePositiveAmount(text)
		if err != nil {
			// Retry in place: the session stays at the amount step.
			return []Reply{{Text: msgInvalidAmount}}
		}
		sess.Amount = amount
		sess.Step = session.StepCategory
		keyboard := incomeCategories
		if sess.Kind == core.KindExpense {
			keyboard = expenseCategories
		}
		return []Reply{{
			Text:     categoryPrompt(sess.Kind == core.KindExpense),
			Keyboard: keyboard,
			OneTime:  true,
			Resize:   true,
		}}

	case session.StepCategory:
		// Accepted verbatim; the keyboard is a suggestion, not a whitelist.
		sess.Category = text
		sess.Step = session.StepDescription
		return []Reply{{Text: msgDescriptionPrompt}}

	case session.StepDescription:
		return b.complete(ctx, ev, sess, text)
	}
	return nil
}

// complete finalizes the session into one ledger record. The session is
// removed no matter how the append ends; a failed save therefore loses the
// entered data and the user has to start over.
func (b *Bot) complete(ctx context.Context, ev Event, sess *session.Session, description string) []Reply {
	defer b.sessions.Remove(ev.UserID)

	rec, err := core.NewRecord(b.now(), ev.Name, sess.Kind, sess.Amount, sess.Category, description)
	if err != nil {
		b.log.Error("building record failed", applog.FieldError, err, applog.FieldUser, ev.Name)
		return []Reply{{Text: msgSaveFailed, RemoveKeyboard: true}}
	}

	if err := b.ledger.Append(ctx, rec.Cells()); err != nil {
		b.log.Error("append failed",
			applog.FieldError, err,
			applog.FieldUser, ev.Name,
			applog.FieldKind, rec.Kind.Label(),
			applog.FieldCategory, rec.Category)
		return []Reply{{Text: msgSaveFailed, RemoveKeyboard: true}}
	}

	if b.events != nil {
		if err := b.events.PublishRecordAppended(ctx, rec); err != nil {
			b.log.Warn("publish record event failed", applog.FieldError, err)
		}
	}

	replies := []Reply{{Text: confirmationText(rec), RemoveKeyboard: true}}
	if rec.Kind == core.KindExpense {
		if notice, ok := b.checkBudget(ctx, rec.Category); ok {
			replies = append(replies, Reply{Text: notice})
		}
	}
	return replies
}

// checkBudget recomputes month-to-date spending for one tracked category by
// re-reading the whole ledger. Read failures are logged and swallowed; the
// saved record is already confirmed.
func (b *Bot) checkBudget(ctx context.Context, category string) (string, bool) {
	if _, tracked := b.policy.Limit(category); !tracked {
		return "", false
	}
	recs, err := b.readRecords(ctx)
	if err != nil {
		b.log.Error("budget check read failed", applog.FieldError, err, applog.FieldCategory, category)
		return "", false
	}
	spent := core.CategoryExpense(recs, core.SameMonth(b.now()), category)
	return b.policy.Notice(category, spent)
}

func (b *Bot) readRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := b.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.Load(rows), nil
}

func confirmationText(rec core.Record) string {
	kindEmoji := "💰"
	if rec.Kind == core.KindExpense {
		kindEmoji = "💸"
	}
	description := rec.Description
	if description == "" {
		description = "-"
	}
	return "✅ " + rec.Kind.Label() + " додано!\n\n" +
		kindEmoji + " Сума: " + formatAmount(rec.AbsAmount()) + " грн\n" +
		"🏷️ Категорія: " + rec.Category + "\n" +
		"📝 Опис: " + description
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parsePositiveAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, core.ErrInvalidAmount
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, core.ErrInvalidAmount
	}
	return f, nil
}
