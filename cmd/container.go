// container.go
package main

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/valentinrios/memora/pkg/config"
	"github.com/valentinrios/memora/pkg/event/eventinfra"
	"github.com/valentinrios/memora/pkg/event/eventsrv"
	"github.com/valentinrios/memora/pkg/logx"
	"github.com/valentinrios/memora/pkg/note/noteinfra"
	"github.com/valentinrios/memora/pkg/note/notesrv"
	"github.com/valentinrios/memora/pkg/reminder"
	"github.com/valentinrios/memora/pkg/settings/settingsinfra"
	"github.com/valentinrios/memora/pkg/settings/settingssrv"
	"github.com/valentinrios/memora/pkg/telegram"
	"github.com/valentinrios/memora/pkg/telegram/telegraminfra"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB       *sqlx.DB
	Redis    *redis.Client
	Telegram *tgbotapi.BotAPI

	// Domain Services
	EventService    *eventsrv.EventService
	NoteService     *notesrv.NoteService
	SettingsService *settingssrv.SettingsService

	// Front end & engine
	Bot       *telegram.Bot
	Engine    *reminder.Engine
	Scheduler *reminder.Scheduler
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Config.Database.Host,
		c.Config.Database.Port,
		c.Config.Database.User,
		c.Config.Database.Password,
		c.Config.Database.Name,
		c.Config.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("✅ Database connected")

	// 2. Schema
	if err := eventinfra.EnsureSchema(db); err != nil {
		logx.Fatalf("Failed to ensure events schema: %v", err)
	}
	if err := noteinfra.EnsureSchema(db); err != nil {
		logx.Fatalf("Failed to ensure notes schema: %v", err)
	}
	if err := settingsinfra.EnsureSchema(db); err != nil {
		logx.Fatalf("Failed to ensure settings schema: %v", err)
	}
	logx.Info("✅ Schema ensured")

	// 3. Redis Connection (only needed for the Redis conversation store)
	if c.Config.Telegram.Conversation.Store == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v (Redis is required for conversation state)", err)
		}
		logx.Info("✅ Redis connected")
	}

	// 4. Telegram Client
	api, err := tgbotapi.NewBotAPI(c.Config.Telegram.Token)
	if err != nil {
		logx.Fatalf("Failed to authorize Telegram bot: %v", err)
	}
	api.Debug = c.Config.Telegram.Debug
	c.Telegram = api
	logx.Infof("✅ Telegram bot authorized as @%s", api.Self.UserName)

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Repositories ---
	eventRepo := eventinfra.NewPostgresEventRepository(c.DB)
	noteRepo := noteinfra.NewPostgresNoteRepository(c.DB)
	settingsRepo := settingsinfra.NewPostgresSettingsRepository(c.DB)

	// --- Conversation Store (Redis in production, memory in dev) ---
	var conversationStore telegram.ConversationStore
	if c.Config.Telegram.Conversation.Store == "redis" {
		conversationStore = telegraminfra.NewRedisConversationStore(c.Redis, c.Config.Telegram.Conversation.TTL)
		logx.Info("✅ Using Redis conversation store")
	} else {
		conversationStore = telegram.NewInMemoryConversationStore(c.Config.Telegram.Conversation.TTL)
		logx.Warn("⚠️  Using in-memory conversation store (state is lost on restart)")
	}

	// --- Domain Services ---
	c.EventService = eventsrv.NewEventService(eventRepo, c.Config.Reminder.DefaultNotifyTime)
	c.NoteService = notesrv.NewNoteService(noteRepo)
	c.SettingsService = settingssrv.NewSettingsService(settingsRepo)

	// --- Front end ---
	c.Bot = telegram.NewBot(
		c.Telegram,
		conversationStore,
		c.EventService,
		c.NoteService,
		c.SettingsService,
		c.Config.Telegram.PollTimeout,
	)

	// --- Notification Engine ---
	notifier := telegram.NewNotifier(c.Telegram)
	c.Engine = reminder.NewEngine(eventRepo, notifier, reminder.SystemClock{})
	c.Scheduler = reminder.NewScheduler(c.Engine)

	logx.Info("✅ All services initialized")
}

// StartBackgroundServices starts the update loop and the reminder scheduler
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	go c.Bot.Run(ctx)
	logx.Info("✅ Telegram update loop started")

	if err := c.Scheduler.Start(ctx); err != nil {
		logx.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	logx.Info("✅ Reminder scheduler started")
}

// Cleanup closes all connections and stops workers
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
