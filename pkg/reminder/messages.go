package reminder

import (
	"fmt"
	"html"
)

// Message selection for one event: the fixed day-distance thresholds, first
// match wins. 30 is checked before the weekly multiples so the "one month"
// wording takes precedence even though 30 is not a multiple of 7.
func messageFor(name string, daysUntil int) (string, bool) {
	safe := escape(name)

	switch {
	case daysUntil == 30:
		return fmt.Sprintf("🔔 Head's up! <b>%s</b> is in 1 month.", safe), true
	case daysUntil > 0 && daysUntil < 30 && daysUntil%7 == 0:
		return fmt.Sprintf("⏰ Reminder: <b>%s</b> is in %d week(s).", safe, daysUntil/7), true
	case daysUntil == 1:
		return fmt.Sprintf("😱 Get ready! <b>%s</b> is TOMORROW!", safe), true
	case daysUntil == 0:
		return fmt.Sprintf("🎉 Today is the day! Happy <b>%s</b>!", safe), true
	}

	return "", false
}

// escape sanitizes user-supplied text before interpolation into HTML-parsed
// messages. The channel interprets rich-text markup, so raw names could
// otherwise inject tags.
func escape(text string) string {
	return html.EscapeString(text)
}
