package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config file populated with the default values.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set %s (or gemini.api_key) and run 'lyrix serve'\n", shared.APIKeyEnv)
	r.writePlain("2. Run 'lyrix translate --lang ja \"your lyrics\"' to test the endpoint\n")

	return nil
}
