package services

import (
	"context"
)

// Translator turns text into the target language, one output line per input line.
type Translator interface {
	// Translate sends text to the backend and returns the raw translated text.
	//
	// Errors wrap the sentinels in the shared package: [shared.ErrTimeout], [shared.ErrNetwork],
	// or are a [*shared.RemoteError] when the backend answered with a structured error.
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Generator produces text from a prompt using a generative language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranslateRequest is the JSON body accepted by the translation endpoint.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

// TranslateResponse is the JSON body returned by the translation endpoint.
//
// Exactly one of Translation or Error is set.
type TranslateResponse struct {
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
	Details     string `json:"details,omitempty"`
}
