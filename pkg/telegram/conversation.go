package telegram

// Flow and step names for the form-filler conversations. A conversation is a
// fixed sequence of prompts; the store keeps the current step and the answers
// collected so far, and the Back button aborts from any step.
const (
	flowAddEvent = "add_event"
	flowAddNote  = "add_note"
	flowDelete   = "delete"
	flowTimezone = "set_timezone"

	stepEventName = "name"
	stepEventDate = "date"
	stepEventTime = "time"

	stepNoteTitle   = "title"
	stepNoteContent = "content"

	stepDeleteChoice = "choice"

	stepTimezoneZone = "zone"
)

// answer keys
const (
	ansEventName  = "event_name"
	ansEventDate  = "event_date"
	ansNoteTitle  = "note_title"
	ansDeleteType = "delete_type"
)

func newState(flow, step string) *ConversationState {
	return &ConversationState{
		Flow:    flow,
		Step:    step,
		Answers: make(map[string]string),
	}
}
