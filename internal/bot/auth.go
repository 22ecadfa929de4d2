package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"ifly-videos-bot/internal/database"
	"ifly-videos-bot/internal/session"
	"ifly-videos-bot/pkg/utilities"
)

// The iFLY chat is driven through one persistent menu message whose id is
// kept in system_data, so the flow survives restarts.
const menuMessageKey = "ifly_menu_message_id"

func (b *Bot) PromptForUsername() {
	b.updateMenu("To upload videos \\- please send your username", nil)
}

// HandleUsernameMessage handles a member name typed into the iFLY chat:
// it looks the member up and opens a pending upload session awaiting
// confirmation.
func (b *Bot) HandleUsernameMessage(msg *tgbotapi.Message) {
	b.deleteMessage(msg.Chat.ID, msg.MessageID)

	username := utilities.NormalizeUsername(msg.Text)
	if username == "" {
		return
	}

	user, err := b.Users.ByUsername(username)
	if errors.Is(err, database.ErrNotFound) {
		text := fmt.Sprintf("User @%s not found\\. Ask them to start the bot first, then try again\\.",
			utilities.EscapeMarkdown(username))
		b.updateMenu(text, nil)
		return
	}
	if err != nil {
		b.Log.Error("lookup user", zap.Error(err))
		return
	}

	s, err := b.Sessions.Begin(b.Config.IFLYChatID, user.ChatID, user.Username)
	if errors.Is(err, session.ErrSessionExists) {
		// One live session per chat; further requests are ignored until
		// it ends or expires.
		return
	}
	if err != nil {
		b.Log.Error("begin session", zap.Error(err))
		return
	}

	text := fmt.Sprintf("Found user @%s\\. Start session?", utilities.EscapeMarkdown(user.Username))
	markup := confirmSessionKeyboard(s.ID)
	b.updateMenu(text, &markup)
}

// HandleAuthCallback handles the confirm/cancel/end buttons of the iFLY
// chat menu.
func (b *Bot) HandleAuthCallback(args []string) {
	switch args[0] {
	case "confirm":
		if len(args) < 2 {
			return
		}
		s, err := b.Sessions.Confirm(args[1])
		if errors.Is(err, session.ErrNoSession) {
			b.updateMenu("❌ Failed to start session\\. Please send the username again\\.", nil)
			return
		}
		if err != nil {
			b.Log.Error("confirm session", zap.Error(err))
			return
		}

		expires := time.Unix(s.ExpiresAt, 0).Format("15:04")
		text := fmt.Sprintf("✅ *Session started for @%s*\n\nYou can now send videos\\. Session expires at %s\\.",
			utilities.EscapeMarkdown(s.Username), utilities.EscapeMarkdown(expires))
		markup := endSessionKeyboard()
		b.updateMenu(text, &markup)
		b.Log.Info("upload session started",
			zap.String("session", s.ID), zap.String("username", s.Username))

	case "cancel", "end":
		if err := b.Sessions.Stop(b.Config.IFLYChatID); err != nil {
			b.Log.Error("stop session", zap.Error(err))
		}
		b.PromptForUsername()
	}
}

// updateMenu edits the persistent menu message, creating it and storing
// its id when there is none or the edit fails.
func (b *Bot) updateMenu(text string, markup *tgbotapi.InlineKeyboardMarkup) {
	chatID := b.Config.IFLYChatID

	stored, err := b.System.Get(menuMessageKey)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		b.Log.Error("load menu message id", zap.Error(err))
	}
	if err == nil {
		if messageID, convErr := strconv.Atoi(stored); convErr == nil {
			edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
			edit.ParseMode = parseModeMarkdownV2
			edit.ReplyMarkup = markup
			_, editErr := b.API.Send(edit)
			if editErr == nil || strings.Contains(editErr.Error(), "message is not modified") {
				return
			}
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseModeMarkdownV2
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := b.API.Send(msg)
	if err != nil {
		b.Log.Error("send menu message", zap.Error(err))
		return
	}
	if err := b.System.Set(menuMessageKey, strconv.Itoa(sent.MessageID)); err != nil {
		b.Log.Error("store menu message id", zap.Error(err))
	}
}
