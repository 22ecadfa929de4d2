package bot

import (
	"fmt"
	"strings"

	"ifly-videos-bot/internal/library"
	"ifly-videos-bot/pkg/utilities"
)

// treeText renders the library as a MarkdownV2 tree. The day at dayIndex
// (-1 for none) is expanded to show its session slots.
func treeText(days []library.Day, dayIndex int) string {
	lines := []string{"━━━━━━━━━━━━━━━━", "📦 *Library*"}

	for i, day := range days {
		branch := "├── "
		if i+1 == len(days) {
			branch = "└── "
		}
		date := utilities.EscapeMarkdown(utilities.FormatDate(day.Date))

		if i != dayIndex {
			lines = append(lines, branch+"📁 "+date)
			continue
		}

		lines = append(lines, branch+"📂 *"+date+"*")
		for j, slot := range day.Slots {
			connector := "│   "
			if i+1 == len(days) {
				connector = "    "
			}
			sub := "├── "
			if j+1 == len(day.Slots) {
				sub = "└── "
			}
			word := "flights"
			if len(slot.Flights) == 1 {
				word = "flight"
			}
			lines = append(lines, fmt.Sprintf("%s%s🕐 %s \\(%d %s\\)",
				connector, sub, utilities.EscapeMarkdown(slot.TimeSlot), len(slot.Flights), word))
		}
	}

	lines = append(lines, "━━━━━━━━━━━━━━━━")
	return strings.Join(lines, "\n")
}
