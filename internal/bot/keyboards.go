package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"ifly-videos-bot/internal/library"
	"ifly-videos-bot/pkg/utilities"
)

func startMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎥 Browse Videos", "nav:library"),
			tgbotapi.NewInlineKeyboardButtonData("📊 My Stats", "stats"),
		),
	)
}

// navigationKeyboard builds the library keyboard: day folders at the top
// level, the expanded day's session slots otherwise.
func navigationKeyboard(days []library.Day, dayIndex int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if dayIndex < 0 {
		for i, day := range days {
			label := fmt.Sprintf("📁 %s (%d sessions)", utilities.FormatDate(day.Date), len(day.Slots))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("nav:day:%d", i)),
			))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("← Back", "home"),
		))
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	var buttons []tgbotapi.InlineKeyboardButton
	for i, slot := range days[dayIndex].Slots {
		label := fmt.Sprintf("%s (%d)", slot.TimeSlot, len(slot.Flights))
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("nav:session:%d:%d", dayIndex, i)))
	}
	rows = append(rows, pairRows(buttons)...)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Back", "nav:library"),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Home", "home"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func slotKeyboard(dayIndex, slotIndex int, slot library.Slot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, flight := range slot.Flights {
		label := fmt.Sprintf("Flight %s (%d videos)", flight.FlightNumber, len(flight.Videos))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				label, fmt.Sprintf("nav:flight:%d:%d:%d", dayIndex, slotIndex, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Back", fmt.Sprintf("nav:day:%d", dayIndex)),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Home", "home"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// flightKeyboard switches between a flight's cameras, with the current
// one marked, plus navigation and a delete entry point.
func flightKeyboard(dayIndex, slotIndex, flightIndex, current int, flight library.Flight) tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for i, video := range flight.Videos {
		label := video.CameraName
		if i == current {
			label = "● " + label
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("video:%d:%d:%d:%d", dayIndex, slotIndex, flightIndex, i)))
	}

	rows := pairRows(buttons)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("← Back", fmt.Sprintf("nav:session:%d:%d", dayIndex, slotIndex)),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Home", "home"),
	))
	if current >= 0 && current < len(flight.Videos) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete",
				fmt.Sprintf("del:ask:%d:%d:%d:%d:%d", dayIndex, slotIndex, flightIndex, current, flight.Videos[current].ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteConfirmKeyboard(dayIndex, slotIndex, flightIndex, videoIndex int, videoID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, delete",
				fmt.Sprintf("del:yes:%d:%d:%d:%d:%d", dayIndex, slotIndex, flightIndex, videoIndex, videoID)),
			tgbotapi.NewInlineKeyboardButtonData("Cancel",
				fmt.Sprintf("video:%d:%d:%d:%d", dayIndex, slotIndex, flightIndex, videoIndex)),
		),
	)
}

func confirmSessionKeyboard(sessionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", "auth:confirm:"+sessionID),
			tgbotapi.NewInlineKeyboardButtonData("❌ No", "auth:cancel"),
		),
	)
}

func endSessionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛑 End Session", "auth:end"),
		),
	)
}

func backHomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("← Back", "home"),
		),
	)
}

func closeKeyboard(chatID int64, messageID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Close", fmt.Sprintf("delete:%d:%d", chatID, messageID)),
		),
	)
}

func wipeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, delete everything", "wipe:yes"),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "wipe:no"),
		),
	)
}

func pairRows(buttons []tgbotapi.InlineKeyboardButton) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons[i:end]...))
	}
	return rows
}
