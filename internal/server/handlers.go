package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/services"
	"github.com/desertthunder/lyrix/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultTargetLang is used when a request omits targetLang.
const DefaultTargetLang = "te"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, services.TranslateResponse{Error: message, Details: details})
}

// TranslateHandler serves POST /translate.
type TranslateHandler struct {
	translator  services.Translator
	defaultLang string
	logger      *log.Logger
}

// NewTranslateHandler creates a handler backed by translator.
func NewTranslateHandler(translator services.Translator, defaultLang string, logger *log.Logger) *TranslateHandler {
	if defaultLang == "" {
		defaultLang = DefaultTargetLang
	}
	return &TranslateHandler{translator: translator, defaultLang: defaultLang, logger: logger}
}

func (h *TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req services.TranslateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required for translation.", "")
		return
	}

	lang := strings.TrimSpace(req.TargetLang)
	if lang == "" {
		lang = h.defaultLang
	}

	translation, err := h.translator.Translate(r.Context(), req.Text, lang)
	if err != nil {
		h.logger.Error("translation error", "lang", lang, "error", err)
		writeError(w, http.StatusInternalServerError, "Translation failed.", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, services.TranslateResponse{Translation: translation})
}

// ExportRequest is the JSON body accepted by POST /export.
type ExportRequest struct {
	MergedLyrics string `json:"mergedLyrics"`
	Format       string `json:"format"`
	Title        string `json:"title,omitempty"`
}

// ExportHandler serves POST /export, returning the merged lyrics as a file download.
type ExportHandler struct {
	style  formatter.Style
	logger *log.Logger
}

// NewExportHandler creates an export handler that renders rich formats with style.
func NewExportHandler(style formatter.Style, logger *log.Logger) *ExportHandler {
	return &ExportHandler{style: style, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ExportHandler) Routes() []string {
	return []string{"/export"}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	if strings.TrimSpace(req.MergedLyrics) == "" {
		writeError(w, http.StatusBadRequest, "No lyrics to export.", "")
		return
	}

	format, err := formatter.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported export format.", err.Error())
		return
	}

	doc := models.ParseDocument(req.MergedLyrics)
	data, err := formatter.Export(doc, format, req.Title, h.style)
	if err != nil {
		h.logger.Error("export error", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "Export failed.", err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "merged_lyrics"+format.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// RouterOpts configures [NewRouter].
type RouterOpts struct {
	Translator  services.Translator
	DefaultLang string
	Limiter     *rate.Limiter
	Style       formatter.Style
	Logger      *log.Logger
}

// NewRouter wires the translation endpoint routes with logging, recovery and CORS middleware.
//
// Only /translate is rate limited.
func NewRouter(opts RouterOpts) *BasicRouter {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(Recover(opts.Logger), Logging(opts.Logger), CORS())

	translate := NewTranslateHandler(opts.Translator, opts.DefaultLang, opts.Logger)
	router.Handle(http.MethodPost, "/translate", RateLimit(opts.Limiter)(translate))
	router.Handler(NewExportHandler(opts.Style, opts.Logger))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	return router
}
