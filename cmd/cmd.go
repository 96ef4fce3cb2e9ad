// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// mergeCommand aligns two lyric files into one bilingual document.
func mergeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Clean two lyric files and interleave them line by line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "first",
				Aliases:  []string{"a"},
				Usage:    "File with the first lyrics (- for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "second",
				Aliases:  []string{"b"},
				Usage:    "File with the second lyrics (- for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, html, csv or json (default from config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the merged document to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Title for markdown and html output",
			},
			&cli.BoolFlag{
				Name:  "swap",
				Usage: "Put the second lyrics first",
			},
		},
		Action: r.Merge,
	}
}

// normalizeCommand prints cleaned lyric lines.
func normalizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Print the cleaned lines of a lyrics file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "translation",
				Usage: "Clean as a translation response instead of raw lyrics",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output lines as a JSON array",
			},
		},
		Action: r.Normalize,
	}
}

// translateCommand runs a single request through the translation pipeline.
func translateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "translate",
		Usage: "Translate lyrics through the translation endpoint",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Target language code or name (default from config)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the source text from a file (- for stdin)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "Override the translation endpoint URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Override the request timeout",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Translate,
	}
}

// languagesCommand lists translation targets.
func languagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "languages",
		Aliases: []string{"langs"},
		Usage:   "List supported target languages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Only show languages whose name contains this text",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Languages,
	}
}

// serveCommand runs the translation endpoint.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the translation endpoint backed by the generative language API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config)",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to a .env file with GENERATIVE_LANGUAGE_API_KEY",
				Value: ".env",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml with default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive lyrics editor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs here while the TUI owns the terminal",
				Value: "./tmp/lyrix-tui.log",
			},
		},
		Action: r.TUI,
	}
}
