package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingInput     = fmt.Errorf("missing input")
	ErrMissingSelection = fmt.Errorf("missing selection")
	ErrMissingArgument  = fmt.Errorf("missing required argument")
	ErrInvalidArgument  = fmt.Errorf("invalid argument")

	// Translation request errors
	ErrOffline            = fmt.Errorf("no network connection")
	ErrTimeout            = fmt.Errorf("operation timed out")
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrRemote             = fmt.Errorf("translation endpoint returned an error")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)

// RemoteError carries the message of a structured error returned by the translation endpoint.
type RemoteError struct {
	Message string
	Details string
}

func (e *RemoteError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrRemote, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", ErrRemote, e.Message)
}

// Is reports ErrRemote as the sentinel for every [RemoteError].
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// Notice maps err to the message shown to the user.
//
// Endpoint messages are surfaced verbatim; everything else gets a fixed sentence.
func Notice(err error) string {
	var remote *RemoteError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &remote):
		return remote.Message
	case errors.Is(err, ErrOffline):
		return "Network error: Please connect to the Internet."
	case errors.Is(err, ErrMissingSelection):
		return "Please select the desired language."
	case errors.Is(err, ErrMissingInput):
		return "Please enter text to translate."
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrNetwork):
		return "Translation failed or timed out. Please try again later."
	default:
		return err.Error()
	}
}

// FailureKind names the error class of err for logs and event consumers.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrOffline):
		return "offline"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrMissingSelection):
		return "missing_selection"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrRemote):
		return "remote"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
