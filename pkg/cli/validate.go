package cli

import (
	"context"
	"fmt"

	"github.com/cherish-app/cherish/pkg/cli/config"
	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/cherish-app/cherish/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var repoCfg config.Repository
	var adminCfg config.Admin

	var flags []cli.Flag
	flags = append(flags, adminCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate administrator configuration and check user references in the DB",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the administrator allow-list
			guard, err := adminCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"admin_count", guard.Len(),
			)

			// Step 2: The in-memory store is always empty at startup, so the
			// DB check only makes sense against Firestore
			if repoCfg.Backend() != "firestore" {
				logger.Info("No persistent repository specified, skipping DB consistency check",
					"backend", repoCfg.Backend())
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			// Run DB consistency check
			uc := usecase.New(repo, usecase.WithAdminGuard(guard))
			validationResult, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "DB consistency check failed")
			}

			if validationResult.HasIssues() {
				for _, issue := range validationResult.Issues {
					logger.Warn("DB consistency issue found",
						"action_id", issue.ActionID,
						"user_id", issue.UserID,
						"field", issue.Field,
						"message", issue.Message,
					)
				}

				return fmt.Errorf("DB consistency check found %d issue(s)", len(validationResult.Issues))
			}

			logger.Info("DB consistency check passed")
			return nil
		},
	}
}
