package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	systemPrompt = "Rewrite real estate analysis clearly and professionally."
	userPrompt   = "Rewrite this real estate summary in a cleaner, more professional way.\n" +
		"Do NOT modify numbers or add new information.\n\n" +
		"Areas: %s\nOriginal Summary:\n%s"
)

// Outcome labels recorded for every Enhance call.
const (
	OutcomeRewritten = "rewritten"
	OutcomeFallback  = "fallback"
	OutcomeDisabled  = "disabled"
)

// ErrEmptyCompletion is returned when the service answers without usable text.
var ErrEmptyCompletion = errors.New("completion contained no text")

// Completer is the subset of Client used by the Enhancer.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// EnhancerOptions configures the rewrite request.
type EnhancerOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Enhancer rephrases deterministic summaries through a text-generation service.
// A nil completer disables rewriting.
type Enhancer struct {
	client  Completer
	opts    EnhancerOptions
	logger  *slog.Logger
	tracer  trace.Tracer
	counter metric.Int64Counter
}

// NewEnhancer creates an enhancer. Pass a nil client when no credential is configured.
func NewEnhancer(client Completer, opts EnhancerOptions, logger *slog.Logger) *Enhancer {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{
		client: client,
		opts:   opts,
		logger: logger.With(slog.String("component", "llm_enhancer")),
		tracer: otel.Tracer("realestate/llm"),
	}
}

// WithCounter records an outcome-labelled count for every Enhance call.
func (e *Enhancer) WithCounter(counter metric.Int64Counter) *Enhancer {
	e.counter = counter
	return e
}

// Enabled reports whether rewrites will be attempted.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.client != nil
}

// Enhance returns the rewritten summary, or base unchanged when rewriting is
// disabled or fails for any reason. It never panics.
func (e *Enhancer) Enhance(ctx context.Context, areas []string, base string) (out string) {
	if !e.Enabled() {
		e.record(ctx, OutcomeDisabled)
		return base
	}

	defer func() {
		if rec := recover(); rec != nil {
			e.logger.ErrorContext(ctx, "summary rewrite panicked", slog.Any("panic", rec))
			e.record(ctx, OutcomeFallback)
			out = base
		}
	}()

	text, err := e.Rewrite(ctx, areas, base)
	if err != nil {
		e.logger.WarnContext(ctx, "summary rewrite failed, using deterministic summary",
			slog.String("error", err.Error()),
			slog.String("model", e.opts.Model),
		)
		e.record(ctx, OutcomeFallback)
		return base
	}
	e.record(ctx, OutcomeRewritten)
	return text
}

// Rewrite performs one rewrite request bounded by the configured timeout.
func (e *Enhancer) Rewrite(ctx context.Context, areas []string, base string) (string, error) {
	if e.client == nil {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	ctx, span := e.tracer.Start(ctx, "llm.rewrite_summary",
		trace.WithAttributes(
			attribute.String("llm.model", e.opts.Model),
			attribute.Int("llm.areas", len(areas)),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := e.client.Complete(ctx, BuildRequest(e.opts, areas, base))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", err
	}

	content, ok := resp.Content()
	content = strings.TrimSpace(content)
	if !ok || content == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", ErrEmptyCompletion
	}

	e.logger.DebugContext(ctx, "summary rewritten",
		slog.Duration("duration", time.Since(start)),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return content, nil
}

// BuildRequest assembles the chat request sent for a rewrite.
func BuildRequest(opts EnhancerOptions, areas []string, base string) ChatRequest {
	return ChatRequest{
		Model: opts.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPrompt, formatAreas(areas), base)},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
}

// formatAreas renders area names as a bracketed, quoted list.
func formatAreas(areas []string) string {
	quoted := make([]string, len(areas))
	for i, a := range areas {
		quoted[i] = "'" + a + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (e *Enhancer) record(ctx context.Context, outcome string) {
	if e == nil || e.counter == nil {
		return
	}
	e.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
