package main

import (
	"context"

	"github.com/desertthunder/lyrix/internal/models"
	"github.com/urfave/cli/v3"
)

// Languages lists the supported target languages.
func (r *Runner) Languages(ctx context.Context, cmd *cli.Command) error {
	languages := models.FilterLanguages(cmd.String("filter"))

	if cmd.Bool("json") {
		return r.writeJSON(languages, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Target Languages")
	for _, l := range languages {
		if err := r.writePlain("%-6s %s\n", l.Code, l.Name); err != nil {
			return err
		}
	}
	return r.writePlainln("%d languages", len(languages))
}
