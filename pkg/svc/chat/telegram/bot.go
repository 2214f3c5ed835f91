package telegram

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/svc/dispatcher"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	// maxMessageLength stays below the 4096 UTF-16 unit limit of the Bot API
	// for text dominated by multi-unit emoji markers.
	maxMessageLength = 4000
	// maxCallbackData is the Bot API limit for callback data, in bytes.
	maxCallbackData = 64
	// maxCallbackAnswer is the Bot API limit for callback answer popups.
	maxCallbackAnswer  = 200
	invalidActionText  = "Invalid action"
	truncationSuffix   = "\n…"
	defaultPollTimeout = 60 * time.Second
)

// API is the subset of the Bot API client used by Bot.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler processes inbound events.
type Handler interface {
	Dispatch(ctx context.Context, event dispatcher.Event) dispatcher.Result
}

// Options configures a Bot.
type Options struct {
	// PollTimeout is the long polling timeout. Defaults to 60s.
	PollTimeout time.Duration
}

// Bot receives updates and renders dispatcher results as chat messages.
type Bot struct {
	api         API
	handler     Handler
	logger      logrus.FieldLogger
	pollTimeout time.Duration
	chats       *chatLocks
	inflight    sync.WaitGroup
}

// NewAPI creates a Bot API client authenticated with token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

// New creates a Bot.
func New(api API, handler Handler, logger logrus.FieldLogger, opts Options) *Bot {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	pollTimeout := opts.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	return &Bot{
		api:         api,
		handler:     handler,
		logger:      logger,
		pollTimeout: pollTimeout,
		chats:       newChatLocks(),
	}
}

// Run polls for updates until ctx is cancelled or the update channel closes.
// It waits for in-flight updates before returning.
func (b *Bot) Run(ctx context.Context) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = int(b.pollTimeout.Seconds())

	updates := b.api.GetUpdatesChan(config)
	defer b.inflight.Wait()

	b.logger.WithField("poll_timeout", b.pollTimeout).Info("polling for telegram updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()

			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			b.inflight.Add(1)

			go func() {
				defer b.inflight.Done()

				b.handle(ctx, update)
			}()
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}

	unlock := b.chats.lock(message.Chat.ID)
	defer unlock()

	result := b.handler.Dispatch(ctx, dispatcher.Event{
		Identity: ops.Identity(message.From.ID),
		Command:  message.Command(),
		Payload:  strings.TrimSpace(message.CommandArguments()),
	})

	b.reply(message.Chat.ID, 0, result)
}

// handleCallback never edits the message that carried the button: other
// buttons on it stay usable, and rejected callers only see a popup.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.From == nil {
		return
	}

	command, payload, err := dispatcher.ParseAction(query.Data)
	if err != nil {
		b.answer(query.ID, invalidActionText)

		return
	}

	if query.Message == nil || query.Message.Chat == nil {
		b.answer(query.ID, "")

		return
	}

	chatID := query.Message.Chat.ID

	unlock := b.chats.lock(chatID)
	defer unlock()

	result := b.handler.Dispatch(ctx, dispatcher.Event{
		Identity: ops.Identity(query.From.ID),
		Command:  command,
		Payload:  payload,
		Callback: true,
	})

	switch result.Kind {
	case dispatcher.KindUnauthorized, dispatcher.KindRateLimited:
		b.answer(query.ID, truncateText(result.Body, maxCallbackAnswer))

		return
	default:
		b.answer(query.ID, "")
	}

	b.reply(chatID, query.Message.MessageID, result)
}

// reply sends result as one or more messages. The keyboard goes on the last
// chunk. A non-zero replyTo threads the first chunk under that message.
func (b *Bot) reply(chatID int64, replyTo int, result dispatcher.Result) {
	chunks := splitText(result.Body, maxMessageLength)
	for i, chunk := range chunks {
		message := tgbotapi.NewMessage(chatID, chunk)
		message.DisableWebPagePreview = true

		if i == 0 {
			message.ReplyToMessageID = replyTo
		}

		if i == len(chunks)-1 {
			if markup, ok := b.keyboard(result.Actions); ok {
				message.ReplyMarkup = markup
			}
		}

		if _, err := b.api.Send(message); err != nil {
			b.logger.WithError(err).WithField("chat_id", chatID).Error("failed to send reply")

			return
		}
	}
}

func (b *Bot) answer(queryID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		b.logger.WithError(err).Warn("failed to answer callback query")
	}
}

// keyboard renders one button per row. Actions whose id does not fit in
// callback data are dropped.
func (b *Bot) keyboard(actions []dispatcher.Action) (tgbotapi.InlineKeyboardMarkup, bool) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(actions))

	for _, action := range actions {
		if len(action.ID) > maxCallbackData {
			b.logger.WithField("action", action.ID).Warn("dropping button with oversized callback data")

			continue
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(action.Label, action.ID),
		))
	}

	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// splitText splits text into chunks of at most limit characters, preferring
// line boundaries.
func splitText(text string, limit int) []string {
	if text == "" {
		return []string{"…"}
	}

	var chunks []string

	for utf8.RuneCountInString(text) > limit {
		cut := runeOffset(text, limit)
		if newline := strings.LastIndex(text[:cut], "\n"); newline > 0 {
			cut = newline + 1
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}

	return append(chunks, text)
}

func truncateText(text string, limit int) string {
	if text == "" {
		return "…"
	}

	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	return text[:runeOffset(text, limit-utf8.RuneCountInString(truncationSuffix))] + truncationSuffix
}

// runeOffset returns the byte offset of the n-th rune of text.
func runeOffset(text string, n int) int {
	count := 0

	for offset := range text {
		if count == n {
			return offset
		}

		count++
	}

	return len(text)
}
