package identity

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestRegistry_AddFirstWins(t *testing.T) {
	reg := NewRegistry()
	reg.Add(NewUser("U1", "Alice Adams", "alice@example.test"))
	reg.Add(NewUser("U1", "Impostor", "other@example.test"))

	if reg.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", reg.Len())
	}
	u, _ := reg.ByID("U1")
	if u.DisplayName != "Alice Adams" {
		t.Errorf("DisplayName = %q, want first entry kept", u.DisplayName)
	}
}

func TestRegistry_ResolveSender(t *testing.T) {
	reg := NewRegistry()
	reg.Add(NewUser("U1", "Alice Adams", "alice@example.test"))

	tests := []struct {
		name    string
		slackID string
		kind    SenderKind
		display string
	}{
		{name: "known user", slackID: "U1", kind: SenderKnown, display: "Alice Adams"},
		{name: "empty id", slackID: "", kind: SenderUnknown, display: "Unknown"},
		{name: "unknown id", slackID: "U404", kind: SenderUnknown, display: "Unknown"},
		{name: "slackbot", slackID: SlackBotID, kind: SenderSystemBot, display: "Slack Bot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := reg.ResolveSender(tt.slackID)
			if s.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", s.Kind, tt.kind)
			}
			if got := s.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestRegistry_MentionName(t *testing.T) {
	reg := NewRegistry()
	reg.Add(NewUser("U1", "Alice Adams", "alice@example.test"))

	tests := []struct {
		slackID string
		want    string
	}{
		{slackID: "U1", want: "Alice Adams"},
		{slackID: SlackBotID, want: "SlackBot"},
		{slackID: "U404", want: "Unknown User"},
	}

	for _, tt := range tests {
		if got := reg.MentionName(tt.slackID); got != tt.want {
			t.Errorf("MentionName(%q) = %q, want %q", tt.slackID, got, tt.want)
		}
	}
}

func TestRegistry_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userList.json")

	reg := NewRegistry()
	alice := NewUser("U1", "Alice Adams", "alice@example.test")
	alice.TeamsID = "aad-1"
	reg.Add(alice)
	reg.Add(NewBotUser("U2", "Deploy Bot"))

	if err := reg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded size = %d, want 2", loaded.Len())
	}

	u, ok := loaded.ByID("U1")
	if !ok {
		t.Fatal("U1 missing after round trip")
	}
	if u.TeamsID != "aad-1" || u.Email != "alice@example.test" {
		t.Errorf("loaded user = %+v", u)
	}
	if !u.Mapped() {
		t.Error("U1 should be mapped after round trip")
	}

	bot, ok := loaded.ByID("U2")
	if !ok {
		t.Fatal("U2 missing after round trip")
	}
	if !bot.IsBot {
		t.Error("U2 should still be a bot")
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}
