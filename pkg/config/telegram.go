// pkg/config/telegram.go
package config

import "time"

type TelegramConfig struct {
	Token        string
	PollTimeout  int // seconds, long-poll window for GetUpdates
	Debug        bool
	Conversation ConversationConfig
}

// ConversationConfig controls where in-flight form-filler state lives.
type ConversationConfig struct {
	Store string // "redis" or "memory"
	TTL   time.Duration
}

func loadTelegramConfig() TelegramConfig {
	return TelegramConfig{
		Token:       getEnv("TELEGRAM_TOKEN", ""),
		PollTimeout: getEnvInt("TELEGRAM_POLL_TIMEOUT", 30),
		Debug:       getEnvBool("TELEGRAM_DEBUG", false),
		Conversation: ConversationConfig{
			Store: getEnv("CONVERSATION_STORE", "redis"),
			TTL:   getEnvDuration("CONVERSATION_TTL", 30*time.Minute),
		},
	}
}
