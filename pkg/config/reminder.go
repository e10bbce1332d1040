// pkg/config/reminder.go
package config

type ReminderConfig struct {
	DefaultNotifyTime string // used when the user types "skip" during add-date
}

func loadReminderConfig() ReminderConfig {
	return ReminderConfig{
		DefaultNotifyTime: getEnv("REMINDER_DEFAULT_TIME", "12:00"),
	}
}
