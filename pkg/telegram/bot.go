package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/valentinrios/memora/pkg/event/eventsrv"
	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/logx"
	"github.com/valentinrios/memora/pkg/note/notesrv"
	"github.com/valentinrios/memora/pkg/settings/settingssrv"
)

// Bot is the conversational front end: it long-polls for updates, routes menu
// buttons and commands, and drives the form-filler flows.
type Bot struct {
	api         *tgbotapi.BotAPI
	store       ConversationStore
	events      *eventsrv.EventService
	notes       *notesrv.NoteService
	settings    *settingssrv.SettingsService
	pollTimeout int
}

// NewBot wires the front end around an authorized bot API client.
func NewBot(
	api *tgbotapi.BotAPI,
	store ConversationStore,
	events *eventsrv.EventService,
	notes *notesrv.NoteService,
	settings *settingssrv.SettingsService,
	pollTimeout int,
) *Bot {
	return &Bot{
		api:         api,
		store:       store,
		events:      events,
		notes:       notes,
		settings:    settings,
		pollTimeout: pollTimeout,
	}
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	logx.Infof("telegram update loop started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logx.Info("telegram update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// A handler panic must never take down the update loop.
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("recovered from handler panic: %v", r)
		}
	}()

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := kernel.NewChatID(msg.Chat.ID)

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg)
		return
	}

	switch msg.Text {
	case btnBack:
		b.backToMenu(ctx, chatID)
	case btnListDates:
		b.listDates(ctx, chatID)
	case btnViewNotes:
		b.viewNotes(ctx, chatID)
	case btnJourney:
		b.journey(ctx, chatID)
	case btnAddDate:
		b.startAddEvent(ctx, chatID)
	case btnAddNote:
		b.startAddNote(ctx, chatID)
	case btnDeleteItem:
		b.startDelete(ctx, chatID)
	case btnTimezone:
		b.startTimezone(ctx, chatID)
	default:
		b.continueFlow(ctx, chatID, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID kernel.ChatID, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.start(ctx, chatID)
	case "cancel":
		b.backToMenu(ctx, chatID)
	case "add":
		b.startAddEvent(ctx, chatID)
	case "addnote":
		b.startAddNote(ctx, chatID)
	case "delete":
		b.startDelete(ctx, chatID)
	case "timezone":
		b.startTimezone(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use the buttons below.", mainKeyboard())
	}
}

// continueFlow feeds free-form input into the chat's active conversation, if
// any.
func (b *Bot) continueFlow(ctx context.Context, chatID kernel.ChatID, msg *tgbotapi.Message) {
	state, err := b.store.Get(ctx, chatID)
	if err != nil {
		logx.Errorf("failed to load conversation state for chat %s: %v", chatID, err)
		return
	}
	if state == nil {
		b.reply(chatID, "Use the buttons below to control me.", mainKeyboard())
		return
	}

	switch state.Flow {
	case flowAddEvent:
		b.continueAddEvent(ctx, chatID, state, msg)
	case flowAddNote:
		b.continueAddNote(ctx, chatID, state, msg)
	case flowDelete:
		b.continueDelete(ctx, chatID, state, msg)
	case flowTimezone:
		b.continueTimezone(ctx, chatID, state, msg)
	default:
		// Unknown flow in the store (e.g. from an older version): reset.
		b.backToMenu(ctx, chatID)
	}
}

// ============================================================================
// Outbound helpers
// ============================================================================

// reply sends an HTML-formatted message. Any user-supplied content must be
// escaped by the caller before interpolation.
func (b *Bot) reply(chatID kernel.ChatID, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID.Int64(), text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		logx.Errorf("failed to send message to chat %s: %v", chatID, err)
	}
}

func (b *Bot) replyPhoto(chatID kernel.ChatID, fileID, caption string) {
	photo := tgbotapi.NewPhoto(chatID.Int64(), tgbotapi.FileID(fileID))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(photo); err != nil {
		logx.Errorf("failed to send photo to chat %s: %v", chatID, err)
	}
}

func (b *Bot) setState(ctx context.Context, chatID kernel.ChatID, state *ConversationState) {
	if err := b.store.Put(ctx, chatID, state); err != nil {
		logx.Errorf("failed to store conversation state for chat %s: %v", chatID, err)
	}
}

func (b *Bot) clearState(ctx context.Context, chatID kernel.ChatID) {
	if err := b.store.Clear(ctx, chatID); err != nil {
		logx.Errorf("failed to clear conversation state for chat %s: %v", chatID, err)
	}
}
