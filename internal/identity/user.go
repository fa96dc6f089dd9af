package identity

// SlackBotID is the well-known ID of Slack's built-in system bot. It
// never appears in the workspace user export.
const SlackBotID = "USLACKBOT"

// User is a single identity from the Slack export. TeamsID is empty
// until the reconciler maps the user to a target account; a user
// without an email can never be mapped.
type User struct {
	SlackID     string `json:"slack_id"`
	TeamsID     string `json:"teams_id,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	IsBot       bool   `json:"is_bot"`
}

// NewUser creates a regular workspace user. Email may be empty.
func NewUser(slackID, displayName, email string) *User {
	return &User{
		SlackID:     slackID,
		DisplayName: displayName,
		Email:       email,
	}
}

// NewBotUser creates a bot identity. Bots carry no email and are
// never reconciled.
func NewBotUser(slackID, displayName string) *User {
	return &User{
		SlackID:     slackID,
		DisplayName: displayName,
		IsBot:       true,
	}
}

// SlackBot returns the synthetic built-in system bot user.
func SlackBot() *User {
	return NewBotUser(SlackBotID, "Slack Bot")
}

// Mapped reports whether the user has been reconciled to a target
// account.
func (u *User) Mapped() bool {
	return u.TeamsID != ""
}
