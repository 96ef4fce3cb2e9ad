package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/desertthunder/lyrix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive lyrics editor.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(r.config.Export.Format)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.translator, ui.ModelOpts{
		Connectivity:    r.connectivity,
		Timeout:         r.config.Translator.Timeout(),
		Debounce:        r.config.Translator.Debounce(),
		Indicator:       r.config.Translator.Indicator(),
		DefaultLanguage: r.config.Translator.DefaultLanguage,
		Format:          format,
		Style:           formatter.StyleFromConfig(r.config.Export),
		Logger:          fileLogger,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
