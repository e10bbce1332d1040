package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/valentinrios/memora/pkg/event"
	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/logx"
	"github.com/valentinrios/memora/pkg/settings"
)

// escape sanitizes user-supplied text before it is interpolated into
// HTML-parsed replies.
func escape(text string) string {
	return html.EscapeString(text)
}

// ============================================================================
// Menu handlers
// ============================================================================

func (b *Bot) start(ctx context.Context, chatID kernel.ChatID) {
	b.clearState(ctx, chatID)
	b.reply(chatID,
		"👋 <b>Hello!</b>\n\n"+
			"I am ready to track your important memories.\n"+
			"Use the buttons below to control me.",
		mainKeyboard())
}

// backToMenu aborts any in-flight conversation and shows the main menu.
func (b *Bot) backToMenu(ctx context.Context, chatID kernel.ChatID) {
	b.clearState(ctx, chatID)
	b.reply(chatID, "🔙 Returned to Main Menu.", mainKeyboard())
}

func (b *Bot) listDates(ctx context.Context, chatID kernel.ChatID) {
	events, err := b.events.ListEvents(ctx, chatID)
	if err != nil {
		logx.Errorf("failed to list events for chat %s: %v", chatID, err)
		b.reply(chatID, "Something went wrong, please try again.", mainKeyboard())
		return
	}

	if len(events) == 0 {
		b.reply(chatID, "No dates saved yet!", mainKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 <b>Your Important Dates:</b>\n\n")
	for _, e := range events {
		fmt.Fprintf(&sb, "• %s: %s (Alert: %s)\n", escape(e.Name), e.EventDate, e.NotifyTime)
	}

	b.reply(chatID, sb.String(), mainKeyboard())
}

func (b *Bot) viewNotes(ctx context.Context, chatID kernel.ChatID) {
	textNotes, photoNotes, err := b.notes.ListNotes(ctx, chatID)
	if err != nil {
		logx.Errorf("failed to list notes for chat %s: %v", chatID, err)
		b.reply(chatID, "Something went wrong, please try again.", mainKeyboard())
		return
	}

	if len(textNotes) == 0 && len(photoNotes) == 0 {
		b.reply(chatID, "No notes saved yet!", mainKeyboard())
		return
	}

	if len(textNotes) > 0 {
		var sb strings.Builder
		sb.WriteString("📝 <b>Your Saved Notes:</b>\n\n")
		for _, n := range textNotes {
			fmt.Fprintf(&sb, "📌 <b>%s</b>\n", escape(n.Title))
			if n.Content != "" {
				fmt.Fprintf(&sb, "<code>%s</code>\n\n", escape(n.Content))
			}
		}
		b.reply(chatID, sb.String(), nil)
	}

	for _, n := range photoNotes {
		caption := fmt.Sprintf("📌 <b>%s</b>", escape(n.Title))
		if n.Content != "" {
			caption += "\n" + escape(n.Content)
		}
		b.replyPhoto(chatID, n.PhotoID, caption)
	}

	b.reply(chatID, "Done.", mainKeyboard())
}

func (b *Bot) journey(ctx context.Context, chatID kernel.ChatID) {
	j, err := b.events.Journey(ctx, chatID)
	if err != nil {
		if errors.Is(err, event.ErrNoAnniversary()) {
			b.reply(chatID,
				"💔 I don't know when you started!\n\n"+
					"Please add an event named <b>Anniversary</b> so I can calculate your time together.",
				mainKeyboard())
			return
		}
		logx.Errorf("failed to compute journey for chat %s: %v", chatID, err)
		b.reply(chatID, "Error calculating date. Please check your Anniversary date format.", mainKeyboard())
		return
	}

	b.reply(chatID, fmt.Sprintf(
		"❤️ <b>Our Journey Together</b> ❤️\n\n"+
			"We have been together for:\n"+
			"<b>%d</b> Years, <b>%d</b> Months, and <b>%d</b> Days.\n\n"+
			"That is <b>%d</b> days of love! 😘",
		j.Years, j.Months, j.Days, j.TotalDays), mainKeyboard())
}

// ============================================================================
// Add date flow
// ============================================================================

func (b *Bot) startAddEvent(ctx context.Context, chatID kernel.ChatID) {
	b.setState(ctx, chatID, newState(flowAddEvent, stepEventName))
	b.reply(chatID, "What is the name of the event? (e.g., Anniversary)", backKeyboard())
}

func (b *Bot) continueAddEvent(ctx context.Context, chatID kernel.ChatID, state *ConversationState, msg *tgbotapi.Message) {
	switch state.Step {
	case stepEventName:
		state.Answer(ansEventName, msg.Text)
		state.Step = stepEventDate
		b.setState(ctx, chatID, state)
		b.reply(chatID, "Great! What is the date? Format: DD-MM-YYYY (e.g., 17-09-2022)", nil)

	case stepEventDate:
		if _, err := time.Parse(event.DateLayout, msg.Text); err != nil {
			b.reply(chatID, "Invalid format. Please use DD-MM-YYYY.", nil)
			return
		}
		state.Answer(ansEventDate, msg.Text)
		state.Step = stepEventTime
		b.setState(ctx, chatID, state)
		b.reply(chatID, "Date saved! Now, what time to remind? (Format: HH:MM)\nType 'skip' for 12:00 PM.", nil)

	case stepEventTime:
		saved, err := b.events.AddEvent(ctx, event.AddEventRequest{
			ChatID:     chatID,
			Name:       state.Answers[ansEventName],
			EventDate:  state.Answers[ansEventDate],
			NotifyTime: msg.Text,
		})
		if err != nil {
			if errors.Is(err, event.ErrInvalidTime()) {
				b.reply(chatID, "Invalid format. Use HH:MM or type 'skip'.", nil)
				return
			}
			logx.Errorf("failed to save event for chat %s: %v", chatID, err)
			b.reply(chatID, "Something went wrong, please try again.", mainKeyboard())
			b.clearState(ctx, chatID)
			return
		}

		b.clearState(ctx, chatID)
		b.reply(chatID,
			fmt.Sprintf("✅ Saved: <b>%s</b> on %s!", escape(saved.Name), saved.EventDate),
			mainKeyboard())
	}
}

// ============================================================================
// Add note flow
// ============================================================================

func (b *Bot) startAddNote(ctx context.Context, chatID kernel.ChatID) {
	b.setState(ctx, chatID, newState(flowAddNote, stepNoteTitle))
	b.reply(chatID, "📝 New Note: What is the <b>Title</b>?", backKeyboard())
}

func (b *Bot) continueAddNote(ctx context.Context, chatID kernel.ChatID, state *ConversationState, msg *tgbotapi.Message) {
	switch state.Step {
	case stepNoteTitle:
		state.Answer(ansNoteTitle, msg.Text)
		state.Step = stepNoteContent
		b.setState(ctx, chatID, state)
		b.reply(chatID, "Got it. Send <b>Text</b> or a <b>Photo</b>.", nil)

	case stepNoteContent:
		title := state.Answers[ansNoteTitle]

		var err error
		if len(msg.Photo) > 0 {
			// Telegram sends several sizes; the last one is the largest.
			fileID := msg.Photo[len(msg.Photo)-1].FileID
			_, err = b.notes.AddPhotoNote(ctx, chatID, title, msg.Caption, fileID)
		} else {
			_, err = b.notes.AddTextNote(ctx, chatID, title, msg.Text)
		}
		if err != nil {
			logx.Errorf("failed to save note for chat %s: %v", chatID, err)
			b.reply(chatID, "Something went wrong, please try again.", mainKeyboard())
			b.clearState(ctx, chatID)
			return
		}

		b.clearState(ctx, chatID)
		b.reply(chatID, "✅ Note saved!", mainKeyboard())
	}
}

// ============================================================================
// Delete flow
// ============================================================================

func (b *Bot) startDelete(ctx context.Context, chatID kernel.ChatID) {
	b.setState(ctx, chatID, newState(flowDelete, stepDeleteChoice))
	b.reply(chatID, "What would you like to delete?", deleteChoiceKeyboard())
}

func (b *Bot) continueDelete(ctx context.Context, chatID kernel.ChatID, state *ConversationState, msg *tgbotapi.Message) {
	switch msg.Text {
	case btnDeleteDate:
		events, err := b.events.ListEvents(ctx, chatID)
		if err != nil {
			logx.Errorf("failed to list events for chat %s: %v", chatID, err)
			b.reply(chatID, "Something went wrong, please try again.", backKeyboard())
			return
		}
		if len(events) == 0 {
			b.reply(chatID, "No dates to delete.", backKeyboard())
			return
		}

		state.Answer(ansDeleteType, "event")
		b.setState(ctx, chatID, state)

		var sb strings.Builder
		sb.WriteString("🗑 <b>Reply with the ID to delete:</b>\n\n")
		for _, e := range events {
			fmt.Fprintf(&sb, "ID: <b>%d</b> | %s (%s)\n", e.ID, escape(e.Name), e.EventDate)
		}
		b.reply(chatID, sb.String(), backKeyboard())

	case btnDeleteNote:
		textNotes, photoNotes, err := b.notes.ListNotes(ctx, chatID)
		if err != nil {
			logx.Errorf("failed to list notes for chat %s: %v", chatID, err)
			b.reply(chatID, "Something went wrong, please try again.", backKeyboard())
			return
		}
		all := append(textNotes, photoNotes...)
		if len(all) == 0 {
			b.reply(chatID, "No notes to delete.", backKeyboard())
			return
		}

		state.Answer(ansDeleteType, "note")
		b.setState(ctx, chatID, state)

		var sb strings.Builder
		sb.WriteString("🗑 <b>Reply with the ID to delete:</b>\n\n")
		for _, n := range all {
			fmt.Fprintf(&sb, "ID: <b>%d</b> | %s\n", n.ID, escape(n.Title))
		}
		b.reply(chatID, sb.String(), backKeyboard())

	default:
		id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
		if err != nil {
			b.reply(chatID, "Please select an option or enter a valid ID number.", backKeyboard())
			return
		}

		var deleted bool
		if state.Answers[ansDeleteType] == "note" {
			deleted, err = b.notes.DeleteNote(ctx, id, chatID)
		} else {
			deleted, err = b.events.DeleteEvent(ctx, id, chatID)
		}
		if err != nil {
			logx.Errorf("failed to delete item %d for chat %s: %v", id, chatID, err)
			b.reply(chatID, "Something went wrong, please try again.", backKeyboard())
			return
		}

		if deleted {
			b.clearState(ctx, chatID)
			b.reply(chatID, "✅ Deleted successfully.", mainKeyboard())
		} else {
			b.reply(chatID, "❌ Could not find that ID. Try again or click Back.", backKeyboard())
		}
	}
}

// ============================================================================
// Set timezone flow
// ============================================================================

func (b *Bot) startTimezone(ctx context.Context, chatID kernel.ChatID) {
	current, err := b.settings.GetTimezone(ctx, chatID)
	if err != nil {
		logx.Errorf("failed to get timezone for chat %s: %v", chatID, err)
		current = "UTC"
	}

	b.setState(ctx, chatID, newState(flowTimezone, stepTimezoneZone))
	b.reply(chatID, fmt.Sprintf(
		"🌍 Your reminders currently use <b>%s</b>.\n\n"+
			"Send me an IANA timezone name (e.g., Europe/Madrid) to change it.",
		escape(current)), backKeyboard())
}

func (b *Bot) continueTimezone(ctx context.Context, chatID kernel.ChatID, state *ConversationState, msg *tgbotapi.Message) {
	zone := strings.TrimSpace(msg.Text)

	if err := b.settings.SetTimezone(ctx, chatID, zone); err != nil {
		if errors.Is(err, settings.ErrInvalidTimezone()) {
			b.reply(chatID, "I don't know that timezone. Try something like Europe/Madrid or America/Lima.", backKeyboard())
			return
		}
		logx.Errorf("failed to set timezone for chat %s: %v", chatID, err)
		b.reply(chatID, "Something went wrong, please try again.", mainKeyboard())
		b.clearState(ctx, chatID)
		return
	}

	b.clearState(ctx, chatID)
	b.reply(chatID,
		fmt.Sprintf("✅ Timezone set to <b>%s</b>. Reminders will match your local clock.", escape(zone)),
		mainKeyboard())
}
