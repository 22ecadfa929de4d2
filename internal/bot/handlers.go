package bot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"ifly-videos-bot/internal/library"
	"ifly-videos-bot/internal/models"
	"ifly-videos-bot/internal/parser"
	"ifly-videos-bot/internal/session"
	"ifly-videos-bot/pkg/utilities"
)

// HandleUpdate routes one inbound update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.HandleCallbackQuery(update.CallbackQuery)

	case update.Message != nil:
		b.HandleMessage(update.Message)
	}
}

func (b *Bot) HandleMessage(msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		b.HandleCommand(msg)
	case msg.Video != nil || isVideoDocument(msg):
		b.HandleVideoUpload(msg)
	case msg.Chat.ID == b.Config.IFLYChatID && msg.Text != "":
		b.HandleUsernameMessage(msg)
	}
}

// HandleCommand handles text commands. Commands are deleted from the chat
// so menus stay the only visible surface.
func (b *Bot) HandleCommand(msg *tgbotapi.Message) {
	b.deleteMessage(msg.Chat.ID, msg.MessageID)

	switch msg.Command() {
	case "start":
		b.HandleStartCommand(msg)
	case "help":
		b.HandleHelpCommand(msg)
	case "clear_data":
		b.HandleClearDataCommand(msg)
	}
}

func (b *Bot) HandleStartCommand(msg *tgbotapi.Message) {
	if msg.Chat.ID == b.Config.IFLYChatID {
		b.PromptForUsername()
		return
	}

	if msg.From != nil {
		if err := b.Users.Upsert(msg.Chat.ID, msg.From.UserName); err != nil {
			b.Log.Error("register user", zap.Error(err))
		}
	}
	b.sendStartMenu(msg.Chat.ID)
}

func (b *Bot) HandleHelpCommand(msg *tgbotapi.Message) {
	if msg.Chat.ID == b.Config.IFLYChatID {
		b.sendClosable(msg.Chat.ID, "You can send your videos to your bot after completing authentication\\.")
		return
	}

	helpText := "Available commands:\n" +
		"/start \\- Shows menu\n" +
		"/help \\- Shows this message\n" +
		"/clear\\_data \\- Careful\\! Deletes all saved videos\\!\n\n" +
		"To upload videos \\- just drop them here\\. Bot will automatically find their correct flight\\."
	b.sendClosable(msg.Chat.ID, helpText)
}

func (b *Bot) HandleClearDataCommand(msg *tgbotapi.Message) {
	if msg.Chat.ID == b.Config.IFLYChatID {
		return
	}

	text := "⚠️ Delete *all* your saved videos? This cannot be undone\\."
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = parseModeMarkdownV2
	reply.ReplyMarkup = wipeKeyboard()
	if _, err := b.API.Send(reply); err != nil {
		b.Log.Error("send message", zap.Error(err))
	}
}

// HandleVideoUpload files an uploaded clip under the flight its name
// describes. Uploads in the iFLY chat are attributed to the active upload
// session's member; without one they are silently removed.
func (b *Bot) HandleVideoUpload(msg *tgbotapi.Message) {
	targetChatID := msg.Chat.ID
	if msg.Chat.ID == b.Config.IFLYChatID {
		s, err := b.Sessions.Active(b.Config.IFLYChatID)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				b.Log.Error("load upload session", zap.Error(err))
			}
			b.deleteMessage(msg.Chat.ID, msg.MessageID)
			return
		}
		targetChatID = s.TargetChatID
	} else if msg.From != nil {
		if err := b.Users.Upsert(msg.Chat.ID, msg.From.UserName); err != nil {
			b.Log.Error("register user", zap.Error(err))
		}
	}

	fileID, fileName, duration := uploadedClip(msg)
	if fileName == "" {
		b.sendMessage(msg.Chat.ID, "⚠️ Please send the clip as a file, or put its original name in the caption.")
		b.deleteMessage(msg.Chat.ID, msg.MessageID)
		return
	}

	clip, err := parser.ParseFilename(fileName)
	if err != nil {
		b.Log.Warn("rejected upload", zap.String("file_name", fileName), zap.Error(err))
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("⚠️ Could not read flight info from %q, videos must keep their original recording name.", fileName))
		b.deleteMessage(msg.Chat.ID, msg.MessageID)
		return
	}

	saved, err := b.Videos.Save(models.Video{
		UserChatID:   targetChatID,
		FileID:       fileID,
		FileName:     fileName,
		Duration:     roundDuration(duration),
		FlightDate:   clip.FlightDate,
		TimeSlot:     clip.TimeSlot,
		FlightNumber: clip.FlightNumber,
		CameraName:   clip.CameraName,
	})
	if err != nil {
		b.Log.Error("save video", zap.Error(err))
		b.sendMessage(msg.Chat.ID, "❌ Could not save the video, please try again")
		return
	}

	if saved {
		b.Log.Info("video saved", zap.String("file_name", fileName), zap.Int64("user", targetChatID))
	} else {
		b.Log.Info("video already saved", zap.String("file_name", fileName), zap.Int64("user", targetChatID))
	}
	b.deleteMessage(msg.Chat.ID, msg.MessageID)
}

// HandleCallbackQuery handles inline keyboard presses.
func (b *Bot) HandleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer b.API.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil || query.Data == "" {
		return
	}
	parts := strings.Split(query.Data, ":")

	if query.Message.Chat.ID == b.Config.IFLYChatID {
		if parts[0] == "auth" && len(parts) > 1 {
			b.HandleAuthCallback(parts[1:])
		}
		return
	}

	switch parts[0] {
	case "home":
		b.editStartMenu(query)
	case "stats":
		b.ShowStats(query)
	case "nav":
		b.handleNavCallback(query, parts[1:])
	case "video":
		if idx, ok := atoiAll(parts[1:], 4); ok {
			b.ShowFlight(query, idx[0], idx[1], idx[2], idx[3])
		}
	case "del":
		b.handleDeleteCallback(query, parts[1:])
	case "wipe":
		b.handleWipeCallback(query, parts[1:])
	case "delete":
		if len(parts) == 3 {
			chatID, err1 := strconv.ParseInt(parts[1], 10, 64)
			messageID, err2 := strconv.Atoi(parts[2])
			if err1 == nil && err2 == nil {
				b.deleteMessage(chatID, messageID)
			}
		}
	}
}

func (b *Bot) handleNavCallback(query *tgbotapi.CallbackQuery, args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "library":
		b.ShowLibrary(query, -1)
	case "day":
		if idx, ok := atoiAll(args[1:], 1); ok {
			b.ShowLibrary(query, idx[0])
		}
	case "session":
		if idx, ok := atoiAll(args[1:], 2); ok {
			b.ShowSlot(query, idx[0], idx[1])
		}
	case "flight":
		if idx, ok := atoiAll(args[1:], 3); ok {
			b.ShowFlight(query, idx[0], idx[1], idx[2], 0)
		}
	}
}

// ShowLibrary renders the library tree, with dayIndex (-1 for none)
// expanded to its session slots.
func (b *Bot) ShowLibrary(query *tgbotapi.CallbackQuery, dayIndex int) {
	chatID := query.Message.Chat.ID
	days, err := b.organizedLibrary(chatID)
	if err != nil {
		b.Log.Error("load library", zap.Error(err))
		b.sendMessage(chatID, "❌ Something went wrong, please try again")
		return
	}

	if len(days) == 0 {
		text := "📦 *Library*\n\nNo videos uploaded yet\\. Send your videos here to get started\\!"
		markup := backHomeKeyboard()
		b.editOrReplace(query, text, &markup)
		return
	}

	if dayIndex >= len(days) {
		dayIndex = -1
	}
	markup := navigationKeyboard(days, dayIndex)
	b.editOrReplace(query, treeText(days, dayIndex), &markup)
}

// ShowSlot lists the flights of one session slot.
func (b *Bot) ShowSlot(query *tgbotapi.CallbackQuery, dayIndex, slotIndex int) {
	chatID := query.Message.Chat.ID
	days, err := b.organizedLibrary(chatID)
	if err != nil {
		b.Log.Error("load library", zap.Error(err))
		b.sendMessage(chatID, "❌ Something went wrong, please try again")
		return
	}
	if dayIndex >= len(days) || dayIndex < 0 || slotIndex >= len(days[dayIndex].Slots) || slotIndex < 0 {
		b.ShowLibrary(query, -1)
		return
	}

	day := days[dayIndex]
	slot := day.Slots[slotIndex]
	text := fmt.Sprintf("🕐 *Session %s*\n📅 %s\n\nSelect a flight:",
		utilities.EscapeMarkdown(slot.TimeSlot),
		utilities.EscapeMarkdown(utilities.FormatDate(day.Date)))
	markup := slotKeyboard(dayIndex, slotIndex, slot)
	b.editOrReplace(query, text, &markup)
}

// ShowFlight replaces the menu with the selected flight's clip and a
// keyboard switching between its cameras.
func (b *Bot) ShowFlight(query *tgbotapi.CallbackQuery, dayIndex, slotIndex, flightIndex, videoIndex int) {
	chatID := query.Message.Chat.ID
	days, err := b.organizedLibrary(chatID)
	if err != nil {
		b.Log.Error("load library", zap.Error(err))
		b.sendMessage(chatID, "❌ Something went wrong, please try again")
		return
	}
	if dayIndex < 0 || dayIndex >= len(days) ||
		slotIndex < 0 || slotIndex >= len(days[dayIndex].Slots) ||
		flightIndex < 0 || flightIndex >= len(days[dayIndex].Slots[slotIndex].Flights) {
		b.ShowLibrary(query, -1)
		return
	}

	flight := days[dayIndex].Slots[slotIndex].Flights[flightIndex]
	if len(flight.Videos) == 0 {
		text := "No videos found for this flight\\."
		markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("← Back", fmt.Sprintf("nav:session:%d:%d", dayIndex, slotIndex)),
		))
		b.editOrReplace(query, text, &markup)
		return
	}
	if videoIndex < 0 || videoIndex >= len(flight.Videos) {
		videoIndex = 0
	}
	video := flight.Videos[videoIndex]

	b.deleteMessage(chatID, query.Message.MessageID)
	share := tgbotapi.NewVideoShare(chatID, video.FileID)
	share.Caption = fmt.Sprintf("🎬 Flight %s - %s", flight.FlightNumber, video.CameraName)
	share.ReplyMarkup = flightKeyboard(dayIndex, slotIndex, flightIndex, videoIndex, flight)
	if _, err := b.API.Send(share); err != nil {
		b.Log.Error("send video", zap.Error(err))
		b.sendMessage(chatID, "❌ Could not send the video")
	}
}

// ShowStats renders the member's tunnel-time statistics.
func (b *Bot) ShowStats(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	stats, err := b.Videos.Stats(chatID)
	if err != nil {
		b.Log.Error("load stats", zap.Error(err))
		b.sendMessage(chatID, "❌ Something went wrong, please try again")
		return
	}

	daysSince := 0.0
	if stats.FirstFlightDate > 0 {
		daysSince = time.Since(time.Unix(stats.FirstFlightDate, 0)).Hours() / 24
	}

	text := fmt.Sprintf("📊 *Here are some fun stats*:\n"+
		"`  `*•*` `🛫 You started flying *%s ago*\n"+
		"`  `*•*` `⏱️ Total tunnel time: *%s*",
		utilities.EscapeMarkdown(utilities.FormatDaysCount(daysSince)),
		utilities.EscapeMarkdown(utilities.FormatFlightTime(stats.TotalFlightSeconds)))
	markup := backHomeKeyboard()
	b.editOrReplace(query, text, &markup)
}

// handleDeleteCallback drives the two-step per-video delete.
func (b *Bot) handleDeleteCallback(query *tgbotapi.CallbackQuery, args []string) {
	if len(args) != 6 {
		return
	}
	idx, ok := atoiAll(args[1:5], 4)
	if !ok {
		return
	}
	videoID, err := strconv.ParseInt(args[5], 10, 64)
	if err != nil {
		return
	}
	chatID := query.Message.Chat.ID

	switch args[0] {
	case "ask":
		// The current message is a video, so only its keyboard can change.
		markup := deleteConfirmKeyboard(idx[0], idx[1], idx[2], idx[3], videoID)
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, markup)
		if _, err := b.API.Send(edit); err != nil {
			b.Log.Error("edit keyboard", zap.Error(err))
		}
	case "yes":
		deleted, err := b.Videos.Delete(chatID, videoID)
		if err != nil {
			b.Log.Error("delete video", zap.Error(err))
			b.sendMessage(chatID, "❌ Could not delete the video")
			return
		}
		if deleted {
			b.Log.Info("video deleted", zap.Int64("video", videoID), zap.Int64("user", chatID))
		}
		b.ShowSlot(query, idx[0], idx[1])
	}
}

func (b *Bot) handleWipeCallback(query *tgbotapi.CallbackQuery, args []string) {
	if len(args) == 0 {
		return
	}
	chatID := query.Message.Chat.ID

	switch args[0] {
	case "yes":
		n, err := b.Videos.DeleteAllForUser(chatID)
		if err != nil {
			b.Log.Error("clear videos", zap.Error(err))
			b.sendMessage(chatID, "❌ Could not clear your videos, please try again")
			return
		}
		b.Log.Info("library cleared", zap.Int64("user", chatID), zap.Int64("removed", n))
		text := utilities.EscapeMarkdown(fmt.Sprintf("🗑️ Removed %d videos.", n))
		b.editOrReplace(query, text, nil)
	case "no":
		b.deleteMessage(chatID, query.Message.MessageID)
	}
}

func (b *Bot) organizedLibrary(chatID int64) ([]library.Day, error) {
	videos, err := b.Videos.ByUser(chatID)
	if err != nil {
		return nil, err
	}
	return library.Organize(videos), nil
}

func (b *Bot) sendStartMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, startMenuText)
	msg.ParseMode = parseModeMarkdownV2
	msg.ReplyMarkup = startMenuKeyboard()
	if _, err := b.API.Send(msg); err != nil {
		b.Log.Error("send message", zap.Error(err))
	}
}

func (b *Bot) editStartMenu(query *tgbotapi.CallbackQuery) {
	markup := startMenuKeyboard()
	b.editOrReplace(query, startMenuText, &markup)
}

const startMenuText = "🏠 Welcome to the *iFLY Video Storage Bot*\\!\nUse buttons to navigate\\."

// editOrReplace edits the callback's message in place. Video messages have
// no text to edit, so those are deleted and replaced with a fresh message.
func (b *Bot) editOrReplace(query *tgbotapi.CallbackQuery, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	chatID := query.Message.Chat.ID

	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, text)
	edit.ParseMode = parseModeMarkdownV2
	edit.ReplyMarkup = markup
	_, err := b.API.Send(edit)
	if err == nil {
		return
	}

	if strings.Contains(strings.ToLower(err.Error()), "no text in the message") {
		b.deleteMessage(chatID, query.Message.MessageID)
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = parseModeMarkdownV2
		if markup != nil {
			msg.ReplyMarkup = *markup
		}
		if _, err := b.API.Send(msg); err != nil {
			b.Log.Error("send message", zap.Error(err))
		}
		return
	}
	if !strings.Contains(err.Error(), "message is not modified") {
		b.Log.Error("edit message", zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		b.Log.Error("send message", zap.Error(err))
	}
}

// sendClosable sends a message carrying a button that deletes it.
func (b *Bot) sendClosable(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseModeMarkdownV2
	sent, err := b.API.Send(msg)
	if err != nil {
		b.Log.Error("send message", zap.Error(err))
		return
	}

	markup := closeKeyboard(chatID, sent.MessageID)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, sent.MessageID, markup)
	if _, err := b.API.Send(edit); err != nil {
		b.Log.Error("edit keyboard", zap.Error(err))
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.API.DeleteMessage(tgbotapi.DeleteMessageConfig{ChatID: chatID, MessageID: messageID}); err != nil {
		b.Log.Warn("delete message", zap.Error(err))
	}
}

func uploadedClip(msg *tgbotapi.Message) (fileID, fileName string, duration int) {
	switch {
	case msg.Video != nil:
		// Telegram strips filenames from native video uploads; rigs and
		// members put the original name in the caption instead.
		return msg.Video.FileID, strings.TrimSpace(msg.Caption), msg.Video.Duration
	case msg.Document != nil:
		return msg.Document.FileID, msg.Document.FileName, 0
	}
	return "", "", 0
}

func isVideoDocument(msg *tgbotapi.Message) bool {
	if msg.Document == nil {
		return false
	}
	if strings.HasPrefix(msg.Document.MimeType, "video/") {
		return true
	}
	return strings.EqualFold(filepath.Ext(msg.Document.FileName), ".mp4")
}

// roundDuration rounds to the nearest 5 seconds, matching how tunnel time
// is sold.
func roundDuration(seconds int) int {
	return (seconds + 2) / 5 * 5
}

func atoiAll(parts []string, n int) ([]int, bool) {
	if len(parts) < n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
