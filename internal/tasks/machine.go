package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrix/internal/lyrics"
	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/services"
	"github.com/desertthunder/lyrix/internal/shared"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultIndicator = 500 * time.Millisecond
)

// SubmitMsg asks the [Machine] to translate Text into Lang.
type SubmitMsg struct {
	Text string
	Lang string
}

// CancelMsg aborts the pending request, keeping the cache.
type CancelMsg struct{}

// ResetMsg aborts the pending request and clears the cache.
type ResetMsg struct{}

type debounceMsg struct{ gen uint64 }

type tickMsg struct {
	gen   uint64
	frame int
}

type responseMsg struct {
	gen  uint64
	text string
	err  error
}

// MachineOpts configures a [Machine]. Zero values select defaults, except Debounce where zero
// sends requests immediately.
type MachineOpts struct {
	Connectivity shared.Connectivity
	Timeout      time.Duration
	Debounce     time.Duration
	Indicator    time.Duration
	Logger       *log.Logger
	Observer     func(Event)
	// Context is the parent of every request context.
	Context context.Context
	Now     func() time.Time
}

// Machine is the translation pipeline state machine.
type Machine struct {
	translator   services.Translator
	connectivity shared.Connectivity
	timeout      time.Duration
	debounce     time.Duration
	indicator    time.Duration
	logger       *log.Logger
	observer     func(Event)
	parent       context.Context
	now          func() time.Time

	state   State
	gen     uint64
	current *models.TranslationRequest
	reqCtx  context.Context
	cancel  context.CancelFunc
	cache   Cache
}

// NewMachine creates an idle [Machine] that sends requests to translator.
func NewMachine(translator services.Translator, opts MachineOpts) *Machine {
	if opts.Connectivity == nil {
		opts.Connectivity = shared.Static(true)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.Indicator <= 0 {
		opts.Indicator = DefaultIndicator
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Machine{
		translator:   translator,
		connectivity: opts.Connectivity,
		timeout:      opts.Timeout,
		debounce:     opts.Debounce,
		indicator:    opts.Indicator,
		logger:       shared.WithLogger(opts.Logger, "component", "pipeline"),
		observer:     opts.Observer,
		parent:       opts.Context,
		now:          opts.Now,
	}
}

// State returns Idle or Pending.
func (m *Machine) State() State { return m.state }

// Generation returns the counter that tags the latest submission, cancel or reset.
func (m *Machine) Generation() uint64 { return m.gen }

// Cache returns the session cache slot.
func (m *Machine) Cache() *Cache { return &m.cache }

// Current returns the pending request, if any.
func (m *Machine) Current() (models.TranslationRequest, bool) {
	if m.current == nil {
		return models.TranslationRequest{}, false
	}
	return *m.current, true
}

// Submit is shorthand for Update(SubmitMsg{Text: text, Lang: lang}).
func (m *Machine) Submit(text, lang string) tea.Cmd { return m.Update(SubmitMsg{Text: text, Lang: lang}) }

// Cancel is shorthand for Update(CancelMsg{}).
func (m *Machine) Cancel() tea.Cmd { return m.Update(CancelMsg{}) }

// Reset is shorthand for Update(ResetMsg{}).
func (m *Machine) Reset() tea.Cmd { return m.Update(ResetMsg{}) }

// Update applies msg and returns the follow-up command, if any.
//
// Messages not addressed to the machine are ignored.
func (m *Machine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitMsg:
		return m.submit(msg)
	case CancelMsg:
		if m.state != Pending {
			return nil
		}
		req := *m.current
		m.gen++
		m.finish()
		m.emit(Event{Kind: EventCancelled, Generation: m.gen, RequestID: req.ID, Lang: req.TargetLang})
	case ResetMsg:
		m.gen++
		m.finish()
		m.cache.clear()
		m.emit(Event{Kind: EventReset, Generation: m.gen})
	case debounceMsg:
		if !m.isCurrent(msg.gen) {
			return nil
		}
		return m.start()
	case tickMsg:
		if !m.isCurrent(msg.gen) {
			return nil
		}
		m.emit(progressEvent(msg.gen, m.current.ID, m.current.TargetLang, msg.frame))
		return m.tick(msg.gen, msg.frame+1)
	case responseMsg:
		if !m.isCurrent(msg.gen) {
			m.logger.Debug("discarding stale response", "generation", msg.gen, "current", m.gen)
			return nil
		}
		m.resolve(msg)
	}
	return nil
}

func (m *Machine) isCurrent(gen uint64) bool {
	return gen == m.gen && m.state == Pending
}

// submit checks preconditions in order. A failed precondition leaves any pending request alone.
func (m *Machine) submit(msg SubmitMsg) tea.Cmd {
	text := strings.TrimSpace(msg.Text)
	lang := strings.TrimSpace(msg.Lang)

	switch {
	case !m.connectivity.Online():
		m.emit(failedEvent(m.gen, "", lang, shared.ErrOffline))
		return nil
	case text == "":
		m.emit(failedEvent(m.gen, "", lang, fmt.Errorf("%w: source text is empty", shared.ErrMissingInput)))
		return nil
	case lang == "":
		m.emit(failedEvent(m.gen, "", lang, fmt.Errorf("%w: no target language", shared.ErrMissingSelection)))
		return nil
	}

	m.gen++
	m.finish()

	if entry, ok := m.cache.Get(text, lang); ok {
		m.logger.Debug("cache hit", "lang", lang)
		m.emit(succeededEvent(m.gen, "", lang, entry.Text))
		return nil
	}

	m.reqCtx, m.cancel = context.WithCancel(m.parent)
	m.current = &models.TranslationRequest{
		ID:          shared.GenerateID(),
		SourceText:  text,
		TargetLang:  lang,
		SubmittedAt: m.now(),
		Generation:  m.gen,
	}
	m.state = Pending
	m.logger.Debug("request pending", "id", m.current.ID, "lang", lang, "generation", m.gen)
	m.emit(pendingEvent(m.gen, m.current.ID, lang))

	if m.debounce == 0 {
		return m.start()
	}
	gen := m.gen
	return tea.Tick(m.debounce, func(time.Time) tea.Msg { return debounceMsg{gen: gen} })
}

// start sends the pending request under the hard timeout and starts the indicator.
func (m *Machine) start() tea.Cmd {
	ctx, cancel := context.WithTimeout(m.reqCtx, m.timeout)
	parent := m.cancel
	m.cancel = func() {
		cancel()
		parent()
	}
	return tea.Batch(m.request(ctx, *m.current), m.tick(m.gen, 1))
}

func (m *Machine) tick(gen uint64, frame int) tea.Cmd {
	return tea.Tick(m.indicator, func(time.Time) tea.Msg { return tickMsg{gen: gen, frame: frame} })
}

// request runs the translator on its own goroutine so the deadline holds even when the
// transport ignores ctx.
func (m *Machine) request(ctx context.Context, req models.TranslationRequest) tea.Cmd {
	translator := m.translator
	return func() tea.Msg {
		type result struct {
			text string
			err  error
		}

		done := make(chan result, 1)
		go func() {
			text, err := translator.Translate(ctx, req.SourceText, req.TargetLang)
			done <- result{text: text, err: err}
		}()

		select {
		case r := <-done:
			return responseMsg{gen: req.Generation, text: r.text, err: r.err}
		case <-ctx.Done():
			return responseMsg{gen: req.Generation, err: ctx.Err()}
		}
	}
}

func (m *Machine) resolve(msg responseMsg) {
	req := *m.current
	m.finish()

	if msg.err != nil {
		err := m.classify(msg.err)
		m.logger.Warn("translation failed", "id", req.ID, "lang", req.TargetLang, "kind", shared.FailureKind(err), "error", err)
		m.emit(failedEvent(msg.gen, req.ID, req.TargetLang, err))
		return
	}

	text := lyrics.CleanTranslation(msg.text)
	m.cache.put(CacheEntry{SourceText: req.SourceText, TargetLang: req.TargetLang, Text: text, StoredAt: m.now()})
	m.logger.Info("translation succeeded", "id", req.ID, "lang", req.TargetLang, "elapsed", m.now().Sub(req.SubmittedAt))
	m.emit(succeededEvent(msg.gen, req.ID, req.TargetLang, text))
}

// finish releases the pending request and returns to Idle.
func (m *Machine) finish() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.reqCtx = nil
	m.current = nil
	m.state = Idle
}

func (m *Machine) classify(err error) error {
	switch {
	case errors.Is(err, shared.ErrTimeout), errors.Is(err, shared.ErrNetwork), errors.Is(err, shared.ErrRemote):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: no response within %s", shared.ErrTimeout, m.timeout)
	default:
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
}

func (m *Machine) emit(e Event) {
	if m.observer != nil {
		m.observer(e)
	}
}
