package migrate

import (
	"context"
	"time"

	"github.com/slackmigrate/slack-to-teams/internal/export"
	"github.com/slackmigrate/slack-to-teams/internal/identity"
)

// ChannelMode selects how ResolveOrCreateChannel obtains a channel.
type ChannelMode int

const (
	// ChannelResolve looks an existing channel up by case-insensitive
	// display name. Used for the workspace's default channel, which
	// already exists on every team.
	ChannelResolve ChannelMode = iota
	// ChannelCreateMigration creates the channel in migration mode,
	// deferring notifications until migration is completed.
	ChannelCreateMigration
)

// ChannelRequest describes the channel to resolve or create.
type ChannelRequest struct {
	DisplayName     string
	Description     string
	CreatedDateTime string
}

// OutboundMessage is the payload handed to the backend for posting.
// FromUserID is empty when the sender could not be reconciled; the
// message is then attributed by display name only.
type OutboundMessage struct {
	Body            string
	FromUserID      string
	FromDisplayName string
	CreatedAt       time.Time
	Attachments     []AttachmentRef
}

// AttachmentRef references an already-uploaded file in a message.
type AttachmentRef struct {
	ID         string
	ContentURL string
	Name       string
}

// UploadResult is what the backend reports after storing a file on
// the target. Name may differ from the request when the target
// renamed the file to avoid a conflict.
type UploadResult struct {
	URL    string
	FileID string
	Name   string
}

// Backend is the thin binding to the remote messaging system. It
// satisfies identity.Directory.
//
//go:generate go tool mockgen -source=$GOFILE -destination=backend_mocks.go -package=migrate
type Backend interface {
	// CreateTeam provisions a migration-mode team from a template
	// document and returns its ID.
	CreateTeam(ctx context.Context, template []byte) (string, error)
	// ResolveOrCreateChannel returns the channel ID per the mode.
	ResolveOrCreateChannel(ctx context.Context, teamID string, req ChannelRequest, mode ChannelMode) (string, error)
	// CompleteChannelMigration takes a channel out of migration mode.
	CompleteChannelMigration(ctx context.Context, teamID, channelID string) error
	// CompleteTeamMigration takes the team out of migration mode.
	CompleteTeamMigration(ctx context.Context, teamID string) error
	// PostMessage posts a top-level channel message and returns the
	// target message ID.
	PostMessage(ctx context.Context, teamID, channelID string, msg OutboundMessage) (string, error)
	// PostThreadReply posts msg as a reply under rootMessageID.
	PostThreadReply(ctx context.Context, teamID, channelID, rootMessageID string, msg OutboundMessage) (string, error)
	// UploadAttachment copies the attachment's source file into the
	// team's storage under the channel's folder.
	UploadAttachment(ctx context.Context, teamID, channelName string, att export.Attachment) (UploadResult, error)
	// LookupUserByEmail resolves one email to a target user ID, empty
	// with nil error when no account matches.
	LookupUserByEmail(ctx context.Context, email string) (string, error)
	// ListUserDirectory fetches the full target user directory.
	ListUserDirectory(ctx context.Context) ([]identity.DirectoryUser, error)
}
