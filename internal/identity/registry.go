package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Registry holds every user parsed from the workspace export, in
// export order, with an index by Slack ID.
type Registry struct {
	users []*User
	byID  map[string]*User
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*User)}
}

// Add appends a user. The first entry for a Slack ID wins.
func (r *Registry) Add(u *User) {
	if _, ok := r.byID[u.SlackID]; ok {
		return
	}
	r.users = append(r.users, u)
	r.byID[u.SlackID] = u
}

// ByID looks a user up by Slack ID.
func (r *Registry) ByID(slackID string) (*User, bool) {
	u, ok := r.byID[slackID]
	return u, ok
}

// Users returns the registry contents in export order.
func (r *Registry) Users() []*User {
	return r.users
}

func (r *Registry) Len() int {
	return len(r.users)
}

// ResolveSender maps a record's user field onto the sender variant.
// An empty ID means the record had no resolvable sender.
func (r *Registry) ResolveSender(slackID string) Sender {
	switch slackID {
	case "":
		return UnknownSender()
	case SlackBotID:
		return SystemBotSender()
	}
	if u, ok := r.byID[slackID]; ok {
		return KnownSender(u)
	}
	return UnknownSender()
}

// MentionName resolves a mentioned Slack ID to the name rendered
// after the @ sign in flattened message text.
func (r *Registry) MentionName(slackID string) string {
	if slackID == SlackBotID {
		return "SlackBot"
	}
	if u, ok := r.byID[slackID]; ok {
		return u.DisplayName
	}
	return "Unknown User"
}

// Save writes the registry as an indented JSON array so a later run
// can skip re-reconciliation.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user list: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write user list: %w", err)
	}
	return nil
}

// LoadRegistry reads a previously saved user list. A missing file is
// reported via fs.ErrNotExist so callers can fall back to a fresh
// scan.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read user list: %w", err)
	}
	var users []*User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user list %s: %w", path, err)
	}
	reg := NewRegistry()
	for _, u := range users {
		reg.Add(u)
	}
	return reg, nil
}
