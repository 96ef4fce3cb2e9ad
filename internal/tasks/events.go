package tasks

import (
	"strings"

	"github.com/desertthunder/lyrix/internal/shared"
)

// State of the [Machine].
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	default:
		return ""
	}
}

// EventKind enumerates observable pipeline output.
type EventKind int

const (
	EventPending EventKind = iota
	EventProgress
	EventSucceeded
	EventFailed
	EventCancelled
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventPending:
		return "pending"
	case EventProgress:
		return "progress"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	case EventCancelled:
		return "cancelled"
	case EventReset:
		return "reset"
	default:
		return ""
	}
}

// Terminal reports whether the event ends a submission.
func (k EventKind) Terminal() bool {
	switch k {
	case EventSucceeded, EventFailed, EventCancelled, EventReset:
		return true
	default:
		return false
	}
}

// Event is a single piece of pipeline output.
type Event struct {
	Kind       EventKind
	Generation uint64
	RequestID  string // Empty for cache hits and resets
	Lang       string
	Text       string // Cleaned translation for EventSucceeded
	Indicator  string // Ellipsis frame for EventPending and EventProgress
	Err        error  // Set for EventFailed
}

// Message returns the text a user should see for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventPending, EventProgress:
		return e.Indicator
	case EventSucceeded:
		return e.Text
	case EventFailed:
		return shared.Notice(e.Err)
	case EventCancelled:
		return "Translation cancelled."
	default:
		return ""
	}
}

const indicatorBase = "Translating"

// indicatorFrame returns "Translating" followed by frame%4 dots.
func indicatorFrame(frame int) string {
	return indicatorBase + strings.Repeat(".", frame%4)
}

func pendingEvent(gen uint64, id, lang string) Event {
	return Event{Kind: EventPending, Generation: gen, RequestID: id, Lang: lang, Indicator: indicatorFrame(0)}
}

func progressEvent(gen uint64, id, lang string, frame int) Event {
	return Event{Kind: EventProgress, Generation: gen, RequestID: id, Lang: lang, Indicator: indicatorFrame(frame)}
}

func succeededEvent(gen uint64, id, lang, text string) Event {
	return Event{Kind: EventSucceeded, Generation: gen, RequestID: id, Lang: lang, Text: text}
}

func failedEvent(gen uint64, id, lang string, err error) Event {
	return Event{Kind: EventFailed, Generation: gen, RequestID: id, Lang: lang, Err: err}
}

// ChannelObserver returns an observer that sends events to ch without blocking.
//
// Events are dropped when ch is full.
func ChannelObserver(ch chan<- Event) func(Event) {
	return func(e Event) {
		if ch == nil {
			return
		}
		select {
		case ch <- e:
		default:
		}
	}
}
