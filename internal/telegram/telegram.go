// Package telegram adapts the conversational core to the Telegram Bot API:
// it turns updates into bot events and replies into messages with the right
// reply-keyboard markup.
package telegram

import (
	"context"
	"fmt"

	"github.com/danylakopych/familybudgetbot/internal/bot"
	applog "github.com/danylakopych/familybudgetbot/internal/log"
	"github.com/danylakopych/familybudgetbot/internal/ratelimit"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeoutSeconds = 30

type Transport struct {
	api     *tgbotapi.BotAPI
	bot     *bot.Bot
	limiter *ratelimit.Limiter
	log     *applog.Logger
}

func New(token string, b *bot.Bot, logger *applog.Logger) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Transport{
		api:     api,
		bot:     b,
		limiter: ratelimit.New(ratelimit.DefaultConfig()),
		log:     logger.WithComponent(applog.ComponentTelegram),
	}, nil
}

// Run consumes the long-polling update stream until ctx is canceled. A
// failing handler is logged and never takes the loop down with it.
func (t *Transport) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()
	defer t.limiter.Stop()

	t.log.Info("bot started", "username", t.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Transport) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("handler panicked", "panic", fmt.Sprint(r))
		}
	}()

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	if !t.limiter.Allow(msg.Chat.ID) {
		t.log.Warn("rate limited, dropping message", "chat_id", msg.Chat.ID)
		return
	}

	ev := bot.Event{
		UserID:   msg.Chat.ID,
		Name:     msg.From.FirstName,
		Username: msg.From.UserName,
		Text:     msg.Text,
	}

	for _, reply := range t.bot.Handle(ctx, ev) {
		if err := t.send(msg.Chat.ID, reply); err != nil {
			t.log.Error("send failed", applog.FieldError, err, applog.FieldUser, ev.Name)
		}
	}
}

func (t *Transport) send(chatID int64, reply bot.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	switch {
	case len(reply.Keyboard) > 0:
		rows := make([][]tgbotapi.KeyboardButton, len(reply.Keyboard))
		for i, labels := range reply.Keyboard {
			row := make([]tgbotapi.KeyboardButton, len(labels))
			for j, label := range labels {
				row[j] = tgbotapi.NewKeyboardButton(label)
			}
			rows[i] = row
		}
		msg.ReplyMarkup = tgbotapi.ReplyKeyboardMarkup{
			Keyboard:        rows,
			OneTimeKeyboard: reply.OneTime,
			ResizeKeyboard:  reply.Resize,
		}
	case reply.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	_, err := t.api.Send(msg)
	return err
}
