package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/services"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/desertthunder/lyrix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TranslationResult is the JSON output of the translate command.
type TranslationResult struct {
	RequestID   string `json:"requestId,omitempty"`
	Lang        string `json:"targetLang"`
	Translation string `json:"translation"`
}

// translateModel runs one submission through a [tasks.Machine] and quits on the first terminal event.
type translateModel struct {
	machine *tasks.Machine
	events  chan tasks.Event
	text    string
	lang    string
	result  tasks.Event
	logger  *log.Logger
}

func newTranslateModel(ctx context.Context, translator services.Translator, opts tasks.MachineOpts, text, lang string) *translateModel {
	events := make(chan tasks.Event, 16)
	opts.Observer = tasks.ChannelObserver(events)
	opts.Context = ctx
	return &translateModel{
		machine: tasks.NewMachine(translator, opts),
		events:  events,
		text:    text,
		lang:    lang,
		logger:  opts.Logger,
	}
}

func (m *translateModel) Init() tea.Cmd {
	return tea.Batch(m.machine.Submit(m.text, m.lang), m.waitForEvent())
}

func (m *translateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	e, ok := msg.(tasks.Event)
	if !ok {
		return m, m.machine.Update(msg)
	}

	switch e.Kind {
	case tasks.EventPending, tasks.EventProgress:
		m.logger.Info(e.Message(), "lang", e.Lang)
	}

	if e.Kind.Terminal() {
		m.result = e
		return m, tea.Quit
	}
	return m, m.waitForEvent()
}

func (m *translateModel) View() string { return "" }

func (m *translateModel) waitForEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

// Translate sends text through the translation pipeline and prints the cleaned result.
func (r *Runner) Translate(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if path := cmd.String("file"); path != "" {
		raw, err := r.readSource(path)
		if err != nil {
			return err
		}
		text = raw
	}

	lang := cmd.String("lang")
	if lang == "" {
		lang = r.config.Translator.DefaultLanguage
	}
	if l, ok := models.ResolveLanguage(lang); ok {
		lang = l.Code
	}

	translator := r.translator
	if endpoint := cmd.String("endpoint"); endpoint != "" {
		translator = services.NewTranslatorService(endpoint, r.httpClient)
	}

	timeout := r.config.Translator.Timeout()
	if d := cmd.Duration("timeout"); d > 0 {
		timeout = d
	}

	result, err := r.runTranslation(ctx, translator, tasks.MachineOpts{
		Connectivity: r.connectivity,
		Timeout:      timeout,
		Indicator:    r.config.Translator.Indicator(),
		Logger:       r.logger,
	}, text, lang)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", result.Translation)
}

// runTranslation drives a headless bubbletea program until the submission resolves.
//
// No debounce is applied since there is a single submission.
func (r *Runner) runTranslation(ctx context.Context, translator services.Translator, opts tasks.MachineOpts, text, lang string) (*TranslationResult, error) {
	start := time.Now()
	model := newTranslateModel(ctx, translator, opts, text, lang)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(nil), tea.WithoutRenderer(), tea.WithoutSignalHandler())

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("error running translation: %w", err)
	}

	e := model.result
	switch e.Kind {
	case tasks.EventSucceeded:
		r.logger.Debug("translation finished", "lang", e.Lang, "elapsed", time.Since(start))
		return &TranslationResult{RequestID: e.RequestID, Lang: e.Lang, Translation: e.Text}, nil
	case tasks.EventFailed:
		r.logger.Error(shared.Notice(e.Err), "kind", shared.FailureKind(e.Err))
		return nil, fmt.Errorf("translation failed: %w", e.Err)
	default:
		return nil, fmt.Errorf("translation ended with %s", e.Kind)
	}
}
