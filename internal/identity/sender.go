package identity

// SenderKind discriminates the possible origins of a message.
type SenderKind int

const (
	// SenderUnknown means the record had no resolvable user.
	SenderUnknown SenderKind = iota
	// SenderKnown means the user was found in the workspace export.
	SenderKnown
	// SenderSystemBot is Slack's built-in system bot.
	SenderSystemBot
)

// Sender is the tagged sender variant attached to every normalized
// message. User is non-nil for SenderKnown and SenderSystemBot.
type Sender struct {
	Kind SenderKind
	User *User
}

// KnownSender wraps a user found in the registry.
func KnownSender(u *User) Sender {
	return Sender{Kind: SenderKnown, User: u}
}

// SystemBotSender returns the sender variant for USLACKBOT.
func SystemBotSender() Sender {
	return Sender{Kind: SenderSystemBot, User: SlackBot()}
}

// UnknownSender returns the variant for records with no resolvable
// user.
func UnknownSender() Sender {
	return Sender{Kind: SenderUnknown}
}

// DisplayName resolves the name to attribute the message to.
func (s Sender) DisplayName() string {
	switch s.Kind {
	case SenderKnown, SenderSystemBot:
		return s.User.DisplayName
	default:
		return "Unknown"
	}
}

// TeamsID returns the mapped target user ID, or empty when the sender
// is unmapped or unknown.
func (s Sender) TeamsID() string {
	if s.User == nil {
		return ""
	}
	return s.User.TeamsID
}
