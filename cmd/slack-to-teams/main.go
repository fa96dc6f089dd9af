package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/slackmigrate/slack-to-teams/internal/config"
	"github.com/slackmigrate/slack-to-teams/internal/export"
	"github.com/slackmigrate/slack-to-teams/internal/graph"
	"github.com/slackmigrate/slack-to-teams/internal/identity"
	"github.com/slackmigrate/slack-to-teams/internal/migrate"
	"github.com/slackmigrate/slack-to-teams/internal/store"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	teamID          string
	generalChannel  string
	dataDir         string
	logLevel        string
	teamTemplate    string
	skipAttachments bool
	forceReconcile  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "slack-to-teams",
		Short:        "Migrate a Slack workspace export into Microsoft Teams",
		Version:      version,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.teamID, "team-id", "", "target team id (defaults to TEAMS_TEAM_ID)")
	pf.StringVar(&opts.generalChannel, "general-channel", "", "source directory treated as the team's default channel")
	pf.StringVar(&opts.dataDir, "data-dir", "", "directory for logs and resumable state (defaults to DATA_DIR)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newMigrateCmd(opts), newAttachmentsCmd(opts), newReconcileCmd(opts))
	return root
}

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <archive-path>",
		Short: "Replay channels, messages and attachments into Teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.teamTemplate, "create-team", "", "create the target team from this template file first")
	cmd.Flags().BoolVar(&opts.skipAttachments, "skip-attachments", false, "post messages without uploading files")
	cmd.Flags().BoolVar(&opts.forceReconcile, "reconcile", false, "rebuild the user registry even when a stored one exists")
	return cmd
}

func newAttachmentsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "attachments <archive-path>",
		Short: "Second pass: upload files and attach them to already migrated messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttachments(cmd.Context(), opts, args[0])
		},
	}
}

func newReconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <archive-path>",
		Short: "Build and store the Slack-to-Teams user mapping only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd.Context(), opts, args[0])
		},
	}
}

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend *graph.Client
}

func setup(opts *options) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	// Flags override the environment.
	if opts.teamID != "" {
		cfg.TeamID = opts.teamID
	}
	if opts.generalChannel != "" {
		cfg.GeneralChannel = opts.generalChannel
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.ValidateAuth(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	logger := initLogger(cfg.LogLevel, cfg.LogDir())

	backend, err := graph.NewClient(graph.Config{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, backend: backend}, nil
}

func runMigrate(ctx context.Context, opts *options, archivePath string) error {
	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	arch, err := export.ScanArchive(archivePath)
	if err != nil {
		a.logger.Error("Archive scan failed", zap.Error(err))
		return err
	}

	reg, err := a.loadRegistry(ctx, arch, opts.forceReconcile)
	if err != nil {
		a.logger.Error("User reconciliation failed", zap.Error(err))
		return err
	}

	lookup, err := store.OpenLookupTable(a.cfg.LookupTablePath(), a.logger)
	if err != nil {
		a.logger.Error("Lookup table unusable", zap.Error(err))
		return err
	}

	orch := migrate.New(a.backend, lookup, migrate.Config{
		TeamID:          a.cfg.TeamID,
		GeneralChannel:  a.cfg.GeneralChannel,
		SkipAttachments: opts.skipAttachments,
	}, a.logger)

	if _, err := orch.EnsureTeam(ctx, opts.teamTemplate); err != nil {
		a.logger.Error("Team setup failed", zap.Error(err))
		return err
	}
	if err := orch.MigrateMessages(ctx, arch, reg); err != nil {
		a.logger.Error("Migration failed", zap.Error(err))
		return err
	}

	a.logger.Info("Migration finished",
		zap.Int("channels", len(arch.Channels)),
		zap.Int("thread_roots", lookup.Len()))
	return nil
}

func runAttachments(ctx context.Context, opts *options, archivePath string) error {
	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if a.cfg.TeamID == "" {
		return errors.New("attachments pass needs --team-id or TEAMS_TEAM_ID")
	}

	arch, err := export.ScanArchive(archivePath)
	if err != nil {
		a.logger.Error("Archive scan failed", zap.Error(err))
		return err
	}

	reg, err := a.loadRegistry(ctx, arch, false)
	if err != nil {
		a.logger.Error("User reconciliation failed", zap.Error(err))
		return err
	}

	lookup, err := store.OpenLookupTable(a.cfg.LookupTablePath(), a.logger)
	if err != nil {
		a.logger.Error("Lookup table unusable", zap.Error(err))
		return err
	}

	orch := migrate.New(a.backend, lookup, migrate.Config{
		TeamID:         a.cfg.TeamID,
		GeneralChannel: a.cfg.GeneralChannel,
	}, a.logger)

	if err := orch.MigrateAttachments(ctx, arch, reg); err != nil {
		a.logger.Error("Attachment migration failed", zap.Error(err))
		return err
	}
	a.logger.Info("Attachment migration finished", zap.Int("channels", len(arch.Channels)))
	return nil
}

func runReconcile(ctx context.Context, opts *options, archivePath string) error {
	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	arch, err := export.ScanArchive(archivePath)
	if err != nil {
		a.logger.Error("Archive scan failed", zap.Error(err))
		return err
	}

	if _, err := a.loadRegistry(ctx, arch, true); err != nil {
		a.logger.Error("User reconciliation failed", zap.Error(err))
		return err
	}
	return nil
}

// loadRegistry reuses the stored reconciled registry when allowed and
// otherwise rebuilds it from the export and the target directory.
func (a *app) loadRegistry(ctx context.Context, arch *export.Archive, force bool) (*identity.Registry, error) {
	if !force {
		reg, err := identity.LoadRegistry(a.cfg.UserListPath())
		if err == nil {
			a.logger.Info("Loaded stored user registry",
				zap.String("path", a.cfg.UserListPath()),
				zap.Int("users", reg.Len()))
			return reg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("Stored user registry unreadable, rebuilding", zap.Error(err))
		}
	}

	reg, err := export.ReadUsersFile(arch.UsersFile, a.logger)
	if err != nil {
		return nil, err
	}
	if err := identity.NewReconciler(a.backend, a.logger).Reconcile(ctx, reg); err != nil {
		return nil, err
	}
	if err := reg.Save(a.cfg.UserListPath()); err != nil {
		a.logger.Warn("Failed to store user registry", zap.Error(err))
	} else {
		a.logger.Info("Stored reconciled user registry",
			zap.String("path", a.cfg.UserListPath()))
	}
	return reg, nil
}

func initLogger(level string, logDir string) *zap.Logger {
	logLevel := interpretLogLevel(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logFileName := fmt.Sprintf("slack-to-teams-%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	stderrCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		logLevel,
	)

	return zap.New(zapcore.NewTee(stderrCore, fileCore), zap.AddCaller())
}

func interpretLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
