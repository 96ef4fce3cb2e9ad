package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/signal"
	"syscall"

	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/server"
	"github.com/desertthunder/lyrix/internal/services"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Serve runs the translation endpoint until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnv(cmd.String("env")); err != nil {
		return err
	}

	apiKey := r.config.ResolveAPIKey()
	if apiKey == "" {
		return fmt.Errorf("%w: set %s or gemini.api_key", shared.ErrMissingConfig, shared.APIKeyEnv)
	}

	generator, err := services.NewGeminiGenerator(ctx, apiKey, r.config.Gemini.Model)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer generator.Close()

	logger := shared.WithLogger(r.logger, "component", "server")
	translator := services.NewModelTranslator(generator, services.ModelTranslatorOpts{
		MaxRetries:     r.config.Gemini.MaxRetries,
		InitialBackoff: r.config.Gemini.InitialBackoff(),
		Logger:         logger,
	})

	router := server.NewRouter(server.RouterOpts{
		Translator:  translator,
		DefaultLang: r.config.Translator.DefaultLanguage,
		Limiter:     server.NewLimiter(r.config.Server.RateLimit, r.config.Server.Burst),
		Style:       formatter.StyleFromConfig(r.config.Export),
		Logger:      logger,
	})

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting translation endpoint", "addr", addr, "model", r.config.Gemini.Model, "routes", router.Routes())
	return server.Serve(ctx, addr, router, logger)
}

// loadEnv loads variables from a .env file. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to load %s: %v", shared.ErrInvalidConfig, path, err)
	}
	return nil
}
