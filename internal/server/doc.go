// Package server provides the HTTP translation endpoint served by `lyrix serve`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Endpoints
//
// [NewRouter] wires the routes:
//   - POST /translate : {"text", "targetLang"} to {"translation"} using a [services.Translator]
//   - POST /export : {"mergedLyrics", "format"} to a downloadable merged document
//   - GET /health : liveness probe
//
// Errors are JSON {"error", "details"} bodies. Blank input answers 400, a throttled client 429
// (see [RateLimit]) and a translator failure 500.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
