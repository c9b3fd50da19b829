package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/cherish-app/cherish/pkg/domain/model"
	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Admin holds the allow-list of users who may approve and delete actions
type Admin struct {
	admins     string
	configPath string
}

// adminFile is the TOML layout of --admin-config
type adminFile struct {
	Admins []string `toml:"admins"`
}

func (x *Admin) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "admins",
			Usage:       `Administrator user IDs as a JSON array (["id1","id2"]) or a comma separated list`,
			Category:    "Admin",
			Sources:     cli.EnvVars("CHERISH_ADMINS"),
			Destination: &x.admins,
		},
		&cli.StringFlag{
			Name:        "admin-config",
			Usage:       "Path to a TOML file listing administrators (admins = [...])",
			Category:    "Admin",
			Sources:     cli.EnvVars("CHERISH_ADMIN_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

func (x Admin) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("config_path", x.configPath),
	}
	if ids, err := parseAdminList(x.admins); err != nil {
		attrs = append(attrs, slog.String("admins", "invalid"))
	} else {
		attrs = append(attrs, slog.Int("admins.count", len(ids)))
	}
	return slog.GroupValue(attrs...)
}

// Configure merges both admin sources into an AdminGuard
func (x *Admin) Configure() (*usecase.AdminGuard, error) {
	ids, err := parseAdminList(x.admins)
	if err != nil {
		return nil, err
	}

	if x.configPath != "" {
		fromFile, err := loadAdminFile(x.configPath)
		if err != nil {
			return nil, err
		}
		ids = append(ids, fromFile...)
	}

	return usecase.NewAdminGuard(ids), nil
}

// parseAdminList accepts a JSON array of strings or a comma separated list
func parseAdminList(raw string) ([]model.UserID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var values []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "admins must be a JSON array of strings",
				goerr.V(FlagKey, "admins"), goerr.V("error", err.Error()))
		}
	} else {
		values = strings.Split(raw, ",")
	}

	ids := make([]model.UserID, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, model.UserID(v))
		}
	}
	return ids, nil
}

func loadAdminFile(path string) ([]model.UserID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "admin config not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read admin config", goerr.V(ConfigPathKey, path))
	}

	var file adminFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse admin config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	ids := make([]model.UserID, 0, len(file.Admins))
	for _, v := range file.Admins {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, model.UserID(v))
		}
	}
	return ids, nil
}
