package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/slackmigrate/slack-to-teams/internal/identity"
)

// ReadUsers parses the workspace user export into a registry.
// Records missing an id or a normalized real name are skipped; a
// missing email is fine for user creation but leaves the user
// permanently unmappable. Bots are built through the bot constructor
// and never carry an email.
func ReadUsers(r io.Reader, logger *zap.Logger) (*identity.Registry, error) {
	reg := identity.NewRegistry()
	err := decodeRecords(r, func(raw json.RawMessage) error {
		var su slack.User
		if err := json.Unmarshal(raw, &su); err != nil {
			logger.Warn("Skipping malformed user record", zap.Error(err))
			return nil
		}
		name := su.Profile.RealNameNormalized
		if su.ID == "" || name == "" {
			logger.Debug("Skipping user record without id or name",
				zap.String("id", su.ID))
			return nil
		}
		if su.IsBot {
			reg.Add(identity.NewBotUser(su.ID, name))
			return nil
		}
		reg.Add(identity.NewUser(su.ID, name, su.Profile.Email))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan user export: %w", err)
	}
	logger.Info("Scanned user export", zap.Int("users", reg.Len()))
	return reg, nil
}

// ReadUsersFile is ReadUsers over the archive's users.json.
func ReadUsersFile(path string, logger *zap.Logger) (*identity.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open user export: %w", err)
	}
	defer f.Close()
	return ReadUsers(f, logger)
}
