package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/shared"
)

// ModelTranslator implements [Translator] by prompting a [Generator].
//
// Failed generations are retried with exponential backoff.
type ModelTranslator struct {
	generator  Generator
	maxRetries int
	backoff    time.Duration
	logger     *log.Logger
}

// ModelTranslatorOpts configures a [ModelTranslator].
type ModelTranslatorOpts struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Logger         *log.Logger
}

// NewModelTranslator wraps generator. Zero options default to 3 attempts starting at 1s.
func NewModelTranslator(generator Generator, opts ModelTranslatorOpts) *ModelTranslator {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &ModelTranslator{
		generator:  generator,
		maxRetries: opts.MaxRetries,
		backoff:    opts.InitialBackoff,
		logger:     opts.Logger,
	}
}

// BuildPrompt asks for exactly one output line per input line.
//
// English is treated as a request to romanize rather than translate.
func BuildPrompt(text, targetLang string) string {
	switch strings.ToLower(strings.TrimSpace(targetLang)) {
	case "en", "eng", "english":
		return "Transliterate the following text into Latin script (romanized) exactly, " +
			"one output line per input line with no extra words:\n\n" + text
	case "hi", "hindi":
		return "Translate the following text into Hindi exactly, " +
			"one output line per input line with no extra words. Preserve proper names:\n\n" + text
	default:
		return fmt.Sprintf("Translate the following text into %s exactly, "+
			"one output line per input line with no extra words:\n\n", models.LanguageName(targetLang)) + text
	}
}

// Translate prompts the generator and returns its trimmed output.
func (t *ModelTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is required for translation", shared.ErrMissingInput)
	}

	prompt := BuildPrompt(text, targetLang)

	var out string
	err := Retry(ctx, t.maxRetries, t.backoff, func(attempt int) error {
		var err error
		out, err = t.generator.Generate(ctx, prompt)
		if err != nil {
			t.logger.Warn("generation failed", "attempt", attempt, "max", t.maxRetries, "error", err)
		}
		return err
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Retry calls fn up to attempts times, doubling the wait after each failure.
//
// Context cancellation stops the loop and is returned as is.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return fmt.Errorf("max retries reached: %w", err)
}
