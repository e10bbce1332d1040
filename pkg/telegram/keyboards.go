package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button labels double as routing keys for inbound messages, so they live in
// one place.
const (
	btnListDates  = "📅 List Dates"
	btnAddDate    = "➕ Add Date"
	btnViewNotes  = "📝 View Notes"
	btnAddNote    = "➕ Add Note"
	btnJourney    = "❤️ Our Journey"
	btnTimezone   = "🌍 Set Timezone"
	btnDeleteItem = "🗑 Delete Item"
	btnBack       = "🔙 Back"
	btnDeleteDate = "Delete Date"
	btnDeleteNote = "Delete Note"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnListDates),
			tgbotapi.NewKeyboardButton(btnAddDate),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnViewNotes),
			tgbotapi.NewKeyboardButton(btnAddNote),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnJourney),
			tgbotapi.NewKeyboardButton(btnDeleteItem),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTimezone),
		),
	)
}

// backKeyboard shows only the Back button, used inside flows.
func backKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
}

func deleteChoiceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDeleteDate),
			tgbotapi.NewKeyboardButton(btnDeleteNote),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.OneTimeKeyboard = true
	return kb
}
