package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosjs/msggen/internal/config"
	oerrors "github.com/rosjs/msggen/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the msggen configuration file",
		Long: `Validate the msggen configuration file against the internal schema.

The command validates the configuration file at ~/.msggen/config.yaml by default.
Use --config flag to specify a different location. Environment overrides are
applied before validation.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewExitError(
			oerrors.NewNotFoundError("config file does not exist", path, "create one with: msggen config init"),
			oerrors.ExitNotFound,
		)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(c.ErrOrStderr(), "Error: %s\n  File: %s\n", verr.Error(), path)
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return oerrors.NewExitError(fmt.Errorf("validating config: %w", err), oerrors.ExitValidationError)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
