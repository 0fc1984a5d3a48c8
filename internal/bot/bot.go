package bot

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kardemumma/internal/api"
	"github.com/shrimpsizemoose/kardemumma/internal/app"
	"github.com/shrimpsizemoose/kardemumma/internal/gate"
	"github.com/shrimpsizemoose/kardemumma/internal/session"
)

// Bot is the roster admin console over Telegram. Each chat owns at
// most one pending workflow of a kind, so /confirm and /cancel are
// unambiguous inside a chat.
type Bot struct {
	config *Config
	client *api.Client
	tokens *app.TokenManager
	gate   *gate.Gate
	api    *tgbotapi.BotAPI
	admins map[int64]bool

	mu      sync.Mutex
	deletes map[int64]*session.TeamDeleteWorkflow
	verifys map[int64]*session.VerificationWorkflow
}

func New(config *Config, featureGate *gate.Gate) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	client := api.NewClient(config.API.BaseURL, config.API.Event, config.API.Token)
	client.Headers = map[string]string{}
	for name, value := range config.API.ExtraHeaders {
		client.Headers[name] = value
	}
	if config.API.AdminIDHeader != "" && config.API.AdminID != "" {
		client.Headers[config.API.AdminIDHeader] = config.API.AdminID
	}

	var tokens *app.TokenManager
	if config.Auth.Enabled {
		opt, err := redis.ParseURL(config.Auth.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		tokens = app.NewTokenManager(redis.NewClient(opt))
	}

	admins := make(map[int64]bool)
	for _, id := range config.Bot.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		config:  config,
		client:  client,
		tokens:  tokens,
		gate:    featureGate,
		api:     botAPI,
		admins:  admins,
		deletes: map[int64]*session.TeamDeleteWorkflow{},
		verifys: map[int64]*session.VerificationWorkflow{},
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go b.handleMessage(update.Message)

		case <-sigChan:
			logger.Info.Println("Shutting down bot...")
			return nil
		}
	}
}

func (b *Bot) pendingDelete(chatID int64) *session.TeamDeleteWorkflow {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deletes[chatID]
}

func (b *Bot) setPendingDelete(chatID int64, w *session.TeamDeleteWorkflow) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w == nil {
		delete(b.deletes, chatID)
		return
	}
	b.deletes[chatID] = w
}

func (b *Bot) pendingVerify(chatID int64) *session.VerificationWorkflow {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.verifys[chatID]
}

func (b *Bot) setPendingVerify(chatID int64, w *session.VerificationWorkflow) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w == nil {
		delete(b.verifys, chatID)
		return
	}
	b.verifys[chatID] = w
}
