package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func TestUploadedClip(t *testing.T) {
	video := &tgbotapi.Message{
		Video:   &tgbotapi.Video{FileID: "vid-1", Duration: 57},
		Caption: " ifly_Door_F001_2025_08_21_14_30_001.mp4 ",
	}
	fileID, fileName, duration := uploadedClip(video)
	if fileID != "vid-1" || fileName != "ifly_Door_F001_2025_08_21_14_30_001.mp4" || duration != 57 {
		t.Errorf("video clip = %q %q %d", fileID, fileName, duration)
	}

	doc := &tgbotapi.Message{
		Document: &tgbotapi.Document{FileID: "doc-1", FileName: "clip.mp4"},
	}
	fileID, fileName, duration = uploadedClip(doc)
	if fileID != "doc-1" || fileName != "clip.mp4" || duration != 0 {
		t.Errorf("document clip = %q %q %d", fileID, fileName, duration)
	}

	fileID, fileName, _ = uploadedClip(&tgbotapi.Message{Text: "hi"})
	if fileID != "" || fileName != "" {
		t.Errorf("text message should yield nothing, got %q %q", fileID, fileName)
	}
}

func TestIsVideoDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *tgbotapi.Document
		want bool
	}{
		{"nil document", nil, false},
		{"video mime", &tgbotapi.Document{MimeType: "video/mp4", FileName: "x.bin"}, true},
		{"mp4 extension", &tgbotapi.Document{MimeType: "application/octet-stream", FileName: "clip.MP4"}, true},
		{"plain file", &tgbotapi.Document{MimeType: "application/pdf", FileName: "receipt.pdf"}, false},
	}
	for _, tt := range tests {
		msg := &tgbotapi.Message{Document: tt.doc}
		if got := isVideoDocument(msg); got != tt.want {
			t.Errorf("%s: isVideoDocument = %v", tt.name, got)
		}
	}
}

func TestRoundDuration(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0},
		{12, 10},
		{13, 15},
		{17, 15},
		{18, 20},
		{55, 55},
	}
	for _, tt := range tests {
		if got := roundDuration(tt.in); got != tt.want {
			t.Errorf("roundDuration(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAtoiAll(t *testing.T) {
	if out, ok := atoiAll([]string{"1", "2", "3"}, 2); !ok || out[0] != 1 || out[1] != 2 {
		t.Errorf("atoiAll short take = %v %v", out, ok)
	}
	if _, ok := atoiAll([]string{"1"}, 2); ok {
		t.Error("expected failure for too few parts")
	}
	if _, ok := atoiAll([]string{"1", "x"}, 2); ok {
		t.Error("expected failure for non-numeric part")
	}
}
