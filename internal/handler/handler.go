// Package handler implements the translate endpoint: it validates the
// inbound request, calls the translation service once and maps the outcome
// to an HTTP status and JSON body.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valpere/urduproxy/internal"
	"github.com/valpere/urduproxy/internal/translator"
)

// Client-visible messages. Provider details never reach the caller.
const (
	MsgMethodNotAllowed  = "Method not allowed"
	MsgTextRequired      = "Text is required"
	MsgKeyNotConfigured  = "API key not configured"
	MsgTranslationFailed = "Translation failed"
	MsgBodyTooLarge      = "Body exceeded 1mb limit"
)

// MaxBodyBytes caps the inbound JSON body.
const MaxBodyBytes = 1 << 20

// Request is the inbound body. Text stays raw so that null, numbers and
// other non-string values can be told apart from a missing field.
type Request struct {
	Text json.RawMessage `json:"text"`
}

// Response is the outbound body: exactly one of the fields is set.
type Response struct {
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Recorder persists handled requests. Recording never affects the response.
type Recorder interface {
	SaveRecord(ctx context.Context, rec internal.TranslationRecord) error
}

type Handler struct {
	svc      translator.TranslationService
	cfg      translator.ServiceConfig
	log      *zap.Logger
	recorder Recorder
}

// New returns a Handler. recorder may be nil.
func New(svc translator.TranslationService, cfg translator.ServiceConfig, log *zap.Logger, recorder Recorder) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		svc:      svc,
		cfg:      cfg,
		log:      log,
		recorder: recorder,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, resp := h.Handle(r)
	if status == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", http.MethodPost)
	}
	writeJSON(w, status, resp)
}

// Handle runs the checks in order: method, payload, credentials, provider call.
func (h *Handler) Handle(r *http.Request) (int, Response) {
	if r.Method != http.MethodPost {
		return http.StatusMethodNotAllowed, Response{Error: MsgMethodNotAllowed}
	}

	text, err := readText(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return http.StatusRequestEntityTooLarge, Response{Error: MsgBodyTooLarge}
		}
		return http.StatusBadRequest, Response{Error: MsgTextRequired}
	}
	if text == "" {
		return http.StatusBadRequest, Response{Error: MsgTextRequired}
	}

	if h.cfg.APIKey == "" {
		return http.StatusInternalServerError, Response{Error: MsgKeyNotConfigured}
	}

	ctx := r.Context()
	result, err := h.svc.Translate(ctx, h.cfg, translator.TranslateRequest{Text: text})
	h.record(ctx, text, result, err)

	if err != nil {
		h.logFailure(err)
		return http.StatusInternalServerError, Response{Error: MsgTranslationFailed}
	}

	translation := result.TranslatedText
	if !result.Found || translation == "" {
		translation = translator.NotFoundText
	}
	return http.StatusOK, Response{Translation: translation}
}

func (h *Handler) logFailure(err error) {
	var perr *translator.ProviderError
	if !errors.As(err, &perr) {
		h.log.Error("translation error", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("kind", perr.Kind.String()),
		zap.Error(err),
	}
	if perr.StatusCode != 0 {
		fields = append(fields, zap.Int("status", perr.StatusCode))
	}
	if perr.Body != "" {
		fields = append(fields, zap.String("provider_body", perr.Body))
	}
	h.log.Error("translation error", fields...)
}

func (h *Handler) record(ctx context.Context, text string, result *translator.ServiceResult, err error) {
	if h.recorder == nil {
		return
	}

	rec := internal.TranslationRecord{
		ID:          uuid.New().String(),
		SourceText:  text,
		SourceLang:  translator.SourceLang.String(),
		TargetLang:  translator.TargetLang.String(),
		ServiceName: h.svc.Name(),
		Timestamp:   time.Now(),
	}
	if result != nil {
		rec.TranslatedText = result.TranslatedText
		rec.Found = result.Found
		rec.StatusCode = result.StatusCode
		rec.Latency = result.Latency
	}
	var perr *translator.ProviderError
	if errors.As(err, &perr) {
		rec.ErrorKind = perr.Kind.String()
	} else if err != nil {
		rec.ErrorKind = "unknown"
	}

	// The request context may already be cancelled by the time we get here.
	if err := h.recorder.SaveRecord(context.WithoutCancel(ctx), rec); err != nil {
		h.log.Warn("failed to record translation", zap.String("id", rec.ID), zap.Error(err))
	}
}

// readText decodes the body and returns the text field when it is a
// non-empty string. Anything else yields "".
func readText(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return "", err
	}
	if len(req.Text) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(req.Text, &text); err != nil {
		// null, numbers, booleans, objects and arrays are not accepted as text.
		return "", nil
	}
	return text, nil
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
