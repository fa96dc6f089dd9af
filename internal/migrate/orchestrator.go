// Package migrate drives the replay of a scanned Slack archive into
// the target messaging system: channel creation, chronological
// message replay with thread reconstruction, attachment uploads and
// migration-mode finalization.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/slackmigrate/slack-to-teams/internal/export"
	"github.com/slackmigrate/slack-to-teams/internal/identity"
	"github.com/slackmigrate/slack-to-teams/internal/store"
)

// defaultChannelCreated is the createdDateTime stamped on channels
// created in migration mode. Migration mode requires a timestamp in
// the past; the actual value is not shown anywhere.
const defaultChannelCreated = "2019-09-17T11:22:17.067Z"

// defaultGeneralChannel is the source directory treated as the
// team's built-in default channel: resolved by name, never created.
const defaultGeneralChannel = "general"

// channelState tracks one channel through the migration state
// machine.
type channelState int

const (
	statePending channelState = iota
	stateCreating
	stateReplaying
	stateFinalizing
	stateDone
	stateFailed
)

func (s channelState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateCreating:
		return "creating"
	case stateReplaying:
		return "replaying"
	case stateFinalizing:
		return "finalizing"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config carries the resolved run configuration; the orchestrator
// never reads interactive input.
type Config struct {
	TeamID          string
	GeneralChannel  string // default "general"
	ChannelCreated  string // createdDateTime for migration-mode channels
	SkipAttachments bool
}

// Orchestrator replays channels strictly sequentially: thread roots
// must be posted and recorded before any reply referencing them, and
// target-side chronology is insertion order.
type Orchestrator struct {
	backend Backend
	lookup  *store.LookupTable
	cfg     Config
	logger  *zap.Logger
}

func New(backend Backend, lookup *store.LookupTable, cfg Config, logger *zap.Logger) *Orchestrator {
	if cfg.GeneralChannel == "" {
		cfg.GeneralChannel = defaultGeneralChannel
	}
	if cfg.ChannelCreated == "" {
		cfg.ChannelCreated = defaultChannelCreated
	}
	return &Orchestrator{
		backend: backend,
		lookup:  lookup,
		cfg:     cfg,
		logger:  logger,
	}
}

// EnsureTeam returns the configured team ID, creating the team from
// the template file when none is configured yet.
func (o *Orchestrator) EnsureTeam(ctx context.Context, templatePath string) (string, error) {
	if o.cfg.TeamID != "" {
		return o.cfg.TeamID, nil
	}
	if templatePath == "" {
		return "", errors.New("no team id configured and no team template provided")
	}
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("read team template: %w", err)
	}

	var teamID string
	err = withRetry(ctx, o.logger, "create_team", func() error {
		var callErr error
		teamID, callErr = o.backend.CreateTeam(ctx, template)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("create team: %w", err)
	}
	o.cfg.TeamID = teamID
	o.logger.Info("Created migration team", zap.String("team_id", teamID))
	return teamID, nil
}

// MigrateMessages runs the full message migration: every channel in
// archive order, then team finalization. Per-channel failures are
// logged and skipped; finalization failures abort the run.
func (o *Orchestrator) MigrateMessages(ctx context.Context, arch *export.Archive, reg *identity.Registry) error {
	for _, ch := range arch.Channels {
		if err := o.migrateChannel(ctx, ch, reg); err != nil {
			if IsFatal(err) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o.logger.Warn("Channel migration aborted",
				zap.String("channel", ch.Name),
				zap.Error(err))
		}
	}

	err := withRetry(ctx, o.logger, "complete_team_migration", func() error {
		return o.backend.CompleteTeamMigration(ctx, o.cfg.TeamID)
	})
	if err != nil {
		return &FinalizationError{Scope: "team", Name: o.cfg.TeamID, Err: err}
	}
	o.logger.Info("Team migration completed", zap.String("team_id", o.cfg.TeamID))
	return nil
}

func (o *Orchestrator) migrateChannel(ctx context.Context, ch export.ChannelDir, reg *identity.Registry) error {
	log := o.logger.With(zap.String("channel", ch.Name))
	state := statePending

	state = transition(log, state, stateCreating)
	channelID, err := o.prepareChannel(ctx, ch.Name)
	if err != nil {
		transition(log, state, stateFailed)
		return &ChannelOperationError{Channel: ch.Name, Op: "resolve or create", Err: err}
	}

	state = transition(log, state, stateReplaying)
	for _, file := range ch.Files {
		messages, err := export.ReadMessagesFile(file, reg, log)
		if err != nil {
			log.Warn("Skipping unreadable day file",
				zap.String("file", file),
				zap.Error(err))
			continue
		}
		for i := range messages {
			if err := o.replayMessage(ctx, channelID, ch.Name, &messages[i], log); err != nil {
				transition(log, state, stateFailed)
				return err
			}
		}
	}

	state = transition(log, state, stateFinalizing)
	err = withRetry(ctx, log, "complete_channel_migration", func() error {
		return o.backend.CompleteChannelMigration(ctx, o.cfg.TeamID, channelID)
	})
	if err != nil {
		transition(log, state, stateFailed)
		return &FinalizationError{Scope: "channel", Name: ch.Name, Err: err}
	}

	transition(log, state, stateDone)
	log.Info("Channel migrated", zap.String("channel_id", channelID))
	return nil
}

func transition(log *zap.Logger, from, to channelState) channelState {
	log.Debug("Channel state transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	return to
}

// prepareChannel resolves the default channel by name and creates
// every other channel in migration mode.
func (o *Orchestrator) prepareChannel(ctx context.Context, name string) (string, error) {
	req := ChannelRequest{DisplayName: name}
	mode := ChannelResolve
	op := "resolve_channel"

	if !strings.EqualFold(name, o.cfg.GeneralChannel) {
		req.Description = "Description for " + name
		req.CreatedDateTime = o.cfg.ChannelCreated
		mode = ChannelCreateMigration
		op = "create_channel"
	}

	var channelID string
	err := withRetry(ctx, o.logger, op, func() error {
		var callErr error
		channelID, callErr = o.backend.ResolveOrCreateChannel(ctx, o.cfg.TeamID, req, mode)
		return callErr
	})
	return channelID, err
}

// replayMessage uploads the message's attachments and posts it as a
// top-level message, thread root or thread reply. Remote failures are
// logged and swallowed; only a failed state flush is returned, since
// it would break resumability.
func (o *Orchestrator) replayMessage(ctx context.Context, channelID, channelName string, m *export.Message, log *zap.Logger) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !o.cfg.SkipAttachments {
		o.uploadAttachments(ctx, channelName, m, log)
	}

	key := m.ThreadKey()
	if !m.IsInThread() || m.IsThreadRoot() {
		if m.IsThreadRoot() && o.lookup.Has(key) {
			log.Debug("Thread root already migrated, skipping",
				zap.String("ts", m.Timestamp),
				zap.String("thread_key", key))
			return nil
		}

		var messageID string
		err := withRetry(ctx, log, "post_message", func() error {
			var callErr error
			messageID, callErr = o.backend.PostMessage(ctx, o.cfg.TeamID, channelID, buildOutbound(m))
			return callErr
		})
		if err != nil {
			log.Warn("Failed to post message",
				zap.String("ts", m.Timestamp),
				zap.Error(err))
			return nil
		}
		if m.IsThreadRoot() {
			if err := o.lookup.Put(key, messageID); err != nil {
				return &PersistenceError{Err: err}
			}
		}
		return nil
	}

	rootID, ok := o.lookup.Get(key)
	if !ok {
		log.Warn("Dropping thread reply",
			zap.Error(&UnresolvedThreadRootError{Timestamp: m.Timestamp, ThreadKey: key}))
		return nil
	}
	err := withRetry(ctx, log, "post_thread_reply", func() error {
		_, callErr := o.backend.PostThreadReply(ctx, o.cfg.TeamID, channelID, rootID, buildOutbound(m))
		return callErr
	})
	if err != nil {
		log.Warn("Failed to post thread reply",
			zap.String("ts", m.Timestamp),
			zap.String("root_id", rootID),
			zap.Error(err))
	}
	return nil
}

// uploadAttachments uploads in the order the message listed them. A
// failed upload leaves the attachment without target fields and the
// message posting proceeds regardless.
func (o *Orchestrator) uploadAttachments(ctx context.Context, channelName string, m *export.Message, log *zap.Logger) {
	for i := range m.Attachments {
		att := &m.Attachments[i]
		if att.Uploaded() {
			continue
		}
		var res UploadResult
		err := withRetry(ctx, log, "upload_attachment", func() error {
			var callErr error
			res, callErr = o.backend.UploadAttachment(ctx, o.cfg.TeamID, channelName, *att)
			return callErr
		})
		if err != nil {
			log.Warn("Attachment upload failed",
				zap.String("url", att.SourceURL),
				zap.Error(err))
			continue
		}
		att.ApplyUpload(res.URL, res.FileID, res.Name)
	}
}

// MigrateAttachments is the second-pass variant: it re-walks the
// archive uploading attachments and attaching them to the already
// migrated messages, without posting message bodies or finalizing
// anything. Channels are resolved, never created.
func (o *Orchestrator) MigrateAttachments(ctx context.Context, arch *export.Archive, reg *identity.Registry) error {
	for _, ch := range arch.Channels {
		log := o.logger.With(zap.String("channel", ch.Name))

		var channelID string
		err := withRetry(ctx, log, "resolve_channel", func() error {
			var callErr error
			channelID, callErr = o.backend.ResolveOrCreateChannel(
				ctx, o.cfg.TeamID, ChannelRequest{DisplayName: ch.Name}, ChannelResolve)
			return callErr
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("Skipping channel, resolve failed", zap.Error(err))
			continue
		}

		for _, file := range ch.Files {
			messages, err := export.ReadMessagesFile(file, reg, log)
			if err != nil {
				log.Warn("Skipping unreadable day file",
					zap.String("file", file),
					zap.Error(err))
				continue
			}
			for i := range messages {
				if err := o.attachToMessage(ctx, channelID, ch.Name, &messages[i], log); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (o *Orchestrator) attachToMessage(ctx context.Context, channelID, channelName string, m *export.Message, log *zap.Logger) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(m.Attachments) == 0 {
		return nil
	}

	o.uploadAttachments(ctx, channelName, m, log)
	refs := attachmentRefs(m.Attachments)
	if len(refs) == 0 {
		log.Warn("No attachments uploaded for message, skipping",
			zap.String("ts", m.Timestamp))
		return nil
	}

	// In migration mode the target message ID equals the 13-digit key
	// derived from the created timestamp, so the derived key stands in
	// when the lookup table has no entry for this message.
	parentID, ok := o.lookup.Get(m.ThreadKey())
	if !ok {
		parentID = m.ThreadKey()
	}

	msg := OutboundMessage{
		Body:        renderAttachmentsBody(m),
		Attachments: refs,
	}
	err := withRetry(ctx, log, "attach_to_message", func() error {
		_, callErr := o.backend.PostThreadReply(ctx, o.cfg.TeamID, channelID, parentID, msg)
		return callErr
	})
	if err != nil {
		log.Warn("Failed to attach files to message",
			zap.String("ts", m.Timestamp),
			zap.Error(err))
	}
	return nil
}
