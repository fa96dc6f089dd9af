package export

import (
	"testing"
	"time"
)

func TestNewAttachment_NameAndDate(t *testing.T) {
	// A fixed local wall-clock time keeps expectations stable across
	// time zones.
	captured := time.Date(2023, 5, 4, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name     string
		title    string
		unixTime int64
		wantName string
		wantDate string
	}{
		{
			name:     "no title and no time",
			title:    "",
			unixTime: 0,
			wantName: "Unknown.png",
			wantDate: "UNKNOWN",
		},
		{
			name:     "no title with time",
			title:    "",
			unixTime: captured.Unix(),
			wantName: "15.04.05.png",
			wantDate: "2023/05/04-Thursday",
		},
		{
			name:     "title without time",
			title:    "cat.png",
			unixTime: 0,
			wantName: "cat.png",
			wantDate: "UNKNOWN",
		},
		{
			name:     "title with time",
			title:    "cat.png",
			unixTime: captured.Unix(),
			wantName: "15.04.05 cat.png",
			wantDate: "2023/05/04-Thursday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := NewAttachment("https://files.example.test/x", "png", tt.title, tt.unixTime)
			if att.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", att.Name, tt.wantName)
			}
			if att.CaptureDate != tt.wantDate {
				t.Errorf("CaptureDate = %q, want %q", att.CaptureDate, tt.wantDate)
			}
			if att.SourceURL != "https://files.example.test/x" {
				t.Errorf("SourceURL = %q", att.SourceURL)
			}
		})
	}
}

func TestAttachment_ApplyUpload(t *testing.T) {
	att := NewAttachment("https://files.example.test/x", "png", "cat.png", 0)
	if att.Uploaded() {
		t.Fatal("new attachment should not report uploaded")
	}

	att.ApplyUpload("https://target.example.test/cat.png", "file-1", "cat 1.png")
	if !att.Uploaded() {
		t.Fatal("attachment should report uploaded after ApplyUpload")
	}
	if att.TeamsFileID != "file-1" {
		t.Errorf("TeamsFileID = %q, want %q", att.TeamsFileID, "file-1")
	}
	if att.Name != "cat 1.png" {
		t.Errorf("Name = %q, want renamed %q", att.Name, "cat 1.png")
	}
}

func TestAttachment_ApplyUploadKeepsDerivedName(t *testing.T) {
	att := NewAttachment("https://files.example.test/x", "png", "cat.png", 0)
	att.ApplyUpload("https://target.example.test/cat.png", "file-1", "")
	if att.Name != "cat.png" {
		t.Errorf("Name = %q, want derived name kept", att.Name)
	}
}
