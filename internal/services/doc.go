// Package services defines the [Translator] and [Generator] interfaces and their implementations.
//
// # Translation Endpoint Client
//
// [TranslatorService] posts {"text", "targetLang"} to the configured endpoint and decodes
// {"translation"} or {"error", "details"}. It is the client side used by the translation pipeline.
//
// # Model-backed Translation
//
// [ModelTranslator] is the server side: it builds a prompt with [BuildPrompt], sends it to a
// [Generator] and retries failures with exponential backoff via [Retry].
// [GeminiGenerator] implements Generator with the generative-ai-go client.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrTimeout] : the request context deadline passed
//   - [shared.ErrNetwork] : transport failure or malformed response
//   - [shared.RemoteError] : the endpoint answered with a structured error (matches [shared.ErrRemote])
//
// A cancelled context is returned unchanged so callers can tell supersession apart from failure.
package services
