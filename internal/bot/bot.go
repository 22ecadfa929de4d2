package bot

import (
	"database/sql"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"ifly-videos-bot/internal/config"
	"ifly-videos-bot/internal/database"
	"ifly-videos-bot/internal/session"
)

const parseModeMarkdownV2 = "MarkdownV2"

type Bot struct {
	API      *tgbotapi.BotAPI
	Config   *config.Config
	Log      *zap.Logger
	Users    *database.UserRepository
	Videos   *database.VideoRepository
	System   *database.SystemRepository
	Sessions *session.Manager
}

func New(cfg *config.Config, db *sql.DB, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		API:      api,
		Config:   cfg,
		Log:      log,
		Users:    database.NewUserRepository(db),
		Videos:   database.NewVideoRepository(db),
		System:   database.NewSystemRepository(db),
		Sessions: session.NewManager(database.NewSessionRepository(db), cfg.SessionLength),
	}, nil
}

// Start runs the long-polling loop until the updates channel closes.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.API.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	b.Log.Info("bot online", zap.String("username", b.API.Self.UserName))

	for update := range updates {
		b.HandleUpdate(update)
	}

	return nil
}
