package bot

import (
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"ifly-videos-bot/internal/library"
)

func sampleDays() []library.Day {
	date := func(d int) int64 {
		return time.Date(2025, time.August, d, 0, 0, 0, 0, time.UTC).Unix()
	}
	return []library.Day{
		{
			Date: date(21),
			Slots: []library.Slot{
				{TimeSlot: "09:00", Flights: []library.Flight{{FlightNumber: "F001"}}},
				{TimeSlot: "14:30", Flights: []library.Flight{{FlightNumber: "F001"}, {FlightNumber: "F002"}}},
			},
		},
		{
			Date: date(22),
			Slots: []library.Slot{
				{TimeSlot: "10:00", Flights: []library.Flight{{FlightNumber: "F003"}}},
			},
		},
	}
}

func TestTreeTextCollapsed(t *testing.T) {
	text := treeText(sampleDays(), -1)

	want := strings.Join([]string{
		"━━━━━━━━━━━━━━━━",
		"📦 *Library*",
		"├── 📁 21\\.08\\.2025",
		"└── 📁 22\\.08\\.2025",
		"━━━━━━━━━━━━━━━━",
	}, "\n")
	if text != want {
		t.Errorf("collapsed tree:\n%s\nwant:\n%s", text, want)
	}
}

func TestTreeTextExpandedDay(t *testing.T) {
	text := treeText(sampleDays(), 0)

	checks := []string{
		"├── 📂 *21\\.08\\.2025*",
		"│   ├── 🕐 09:00 \\(1 flight\\)",
		"│   └── 🕐 14:30 \\(2 flights\\)",
		"└── 📁 22\\.08\\.2025",
	}
	for _, line := range checks {
		if !strings.Contains(text, line) {
			t.Errorf("tree missing line %q:\n%s", line, text)
		}
	}
}

func TestTreeTextExpandedLastDay(t *testing.T) {
	text := treeText(sampleDays(), 1)

	// The last branch has no vertical connector under it.
	if !strings.Contains(text, "    └── 🕐 10:00 \\(1 flight\\)") {
		t.Errorf("unexpected connector for last day:\n%s", text)
	}
}

func TestNavigationKeyboardTopLevel(t *testing.T) {
	kb := navigationKeyboard(sampleDays(), -1)

	// One row per day plus the back row.
	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.Text != "📁 21.08.2025 (2 sessions)" {
		t.Errorf("day label = %q", first.Text)
	}
	if *first.CallbackData != "nav:day:0" {
		t.Errorf("day callback = %q", *first.CallbackData)
	}
	back := kb.InlineKeyboard[2][0]
	if *back.CallbackData != "home" {
		t.Errorf("back callback = %q", *back.CallbackData)
	}
}

func TestNavigationKeyboardExpandedDay(t *testing.T) {
	kb := navigationKeyboard(sampleDays(), 0)

	// Two slots pair into one row, then the back/home row.
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(kb.InlineKeyboard))
	}
	slots := kb.InlineKeyboard[0]
	if len(slots) != 2 {
		t.Fatalf("expected paired slot buttons, got %d", len(slots))
	}
	if slots[0].Text != "09:00 (1)" || *slots[0].CallbackData != "nav:session:0:0" {
		t.Errorf("slot button = %q / %q", slots[0].Text, *slots[0].CallbackData)
	}
	if *kb.InlineKeyboard[1][0].CallbackData != "nav:library" {
		t.Errorf("back callback = %q", *kb.InlineKeyboard[1][0].CallbackData)
	}
}

func TestFlightKeyboardMarksCurrentCamera(t *testing.T) {
	flight := library.Flight{
		FlightNumber: "F001",
		Videos: []library.Video{
			{ID: 7, CameraName: "Door"},
			{ID: 8, CameraName: "Centerline"},
		},
	}
	kb := flightKeyboard(0, 1, 0, 1, flight)

	cameras := kb.InlineKeyboard[0]
	if cameras[0].Text != "Door" {
		t.Errorf("inactive camera label = %q", cameras[0].Text)
	}
	if cameras[1].Text != "● Centerline" {
		t.Errorf("active camera label = %q", cameras[1].Text)
	}
	if *cameras[1].CallbackData != "video:0:1:0:1" {
		t.Errorf("camera callback = %q", *cameras[1].CallbackData)
	}

	del := kb.InlineKeyboard[len(kb.InlineKeyboard)-1][0]
	if *del.CallbackData != "del:ask:0:1:0:1:8" {
		t.Errorf("delete callback = %q", *del.CallbackData)
	}
}

func TestPairRows(t *testing.T) {
	mk := func(n int) []tgbotapi.InlineKeyboardButton {
		var buttons []tgbotapi.InlineKeyboardButton
		for i := 0; i < n; i++ {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("b", "x"))
		}
		return buttons
	}

	if rows := pairRows(mk(0)); len(rows) != 0 {
		t.Errorf("expected no rows for no buttons, got %d", len(rows))
	}
	if rows := pairRows(mk(3)); len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Errorf("unexpected layout for 3 buttons: %v", rows)
	}
	if rows := pairRows(mk(4)); len(rows) != 2 || len(rows[1]) != 2 {
		t.Errorf("unexpected layout for 4 buttons: %v", rows)
	}
}
