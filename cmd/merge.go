package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/lyrics"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Merge cleans both inputs, aligns them by position and writes the merged document.
func (r *Runner) Merge(ctx context.Context, cmd *cli.Command) error {
	firstPath, secondPath := cmd.String("first"), cmd.String("second")
	if firstPath == "-" && secondPath == "-" {
		return fmt.Errorf("%w: only one of --first and --second can read stdin", shared.ErrInvalidArgument)
	}

	first, err := r.readSource(firstPath)
	if err != nil {
		return err
	}
	second, err := r.readSource(secondPath)
	if err != nil {
		return err
	}

	name := cmd.String("format")
	if name == "" {
		name = r.config.Export.Format
	}
	format, err := formatter.ParseFormat(name)
	if err != nil {
		return err
	}

	doc, err := lyrics.MergeText(first, second)
	if err != nil {
		return err
	}
	if cmd.Bool("swap") {
		doc = doc.Swap()
	}

	r.logger.Debug("merged lyrics", "pairs", doc.Len(), "format", format)
	style := formatter.StyleFromConfig(r.config.Export)

	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(doc, path, format, style)
		if err != nil {
			return err
		}
		r.logger.Info("merged lyrics exported", "path", written, "pairs", doc.Len())
		return nil
	}

	data, err := formatter.Export(doc, format, cmd.String("title"), style)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// Normalize prints the cleaned lines of a lyrics file.
func (r *Runner) Normalize(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	raw, err := r.readSource(path)
	if err != nil {
		return err
	}

	profile := lyrics.LyricsProfile
	if cmd.Bool("translation") {
		profile = lyrics.TranslationProfile
	}
	lines := profile.Lines(raw)

	if cmd.Bool("json") {
		return r.writeJSON(lines, false)
	}
	for _, line := range lines {
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
