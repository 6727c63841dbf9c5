package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/celebnet/backend/internal/modules/ai/domain"
)

const (
	opSuggest  = "suggest"
	opAutofill = "autofill"
)

// Generator produces a single text completion. Implementations return an
// error wrapping domain.ErrUpstreamUnavailable when the model cannot be reached.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type Metrics interface {
	RecordAIUpstreamFailure(operation, kind string)
}

type AIService struct {
	generator Generator
	metrics   Metrics
	logger    *slog.Logger
}

func NewAIService(generator Generator, metrics Metrics, logger *slog.Logger) *AIService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIService{generator: generator, metrics: metrics, logger: logger.With("component", "ai")}
}

func suggestPrompt(query string) string {
	return fmt.Sprintf(`Based on the following description, suggest 3 to 5 celebrity names that match. `+
		`Respond only with a JSON array of strings, e.g. ["Celebrity One", "Celebrity Two"]. `+
		`If there is no clear match respond with [].
Description: %q`, query)
}

func autofillPrompt(name string) string {
	return fmt.Sprintf(`Provide detailed information for the celebrity %q as a single JSON object with the fields: `+
		`name, category (e.g. Singer, Actor, Speaker), country, description, profileImageUrl, instagramHandle, `+
		`youtubeChannel, spotifyId, imdbId, fanbaseCount (a number) and sampleSetlistOrKeynoteTopics (an array of strings). `+
		`Omit any field that is not available. Return only the JSON object.`, name)
}

// SuggestNames asks the model for celebrity names matching a free-text query.
// An empty or unparseable reply yields no names; JSON of the wrong shape is
// domain.ErrMalformedResponse.
func (s *AIService) SuggestNames(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	text, err := s.generate(ctx, opSuggest, suggestPrompt(query))
	if err != nil {
		return nil, err
	}

	text = domain.StripCodeFence(text)
	switch strings.ToLower(text) {
	case "", "none", "null":
		return []string{}, nil
	}
	if !json.Valid([]byte(text)) {
		s.logger.WarnContext(ctx, "unparseable suggestion response", "length", len(text))
		return []string{}, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		s.metrics.RecordAIUpstreamFailure(opSuggest, "malformed")
		return nil, fmt.Errorf("%w: expected an array of strings", domain.ErrMalformedResponse)
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

// AutofillProfile asks the model for a profile draft. A nil draft with a nil
// error means the model gave nothing usable.
func (s *AIService) AutofillProfile(ctx context.Context, name string) (*domain.ProfileDraft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyQuery
	}

	text, err := s.generate(ctx, opAutofill, autofillPrompt(name))
	if err != nil {
		return nil, err
	}

	draft := domain.ParseProfileDraft(domain.StripCodeFence(text))
	if draft == nil {
		s.logger.WarnContext(ctx, "no usable autofill draft", "name", name)
	}
	return draft, nil
}

func (s *AIService) generate(ctx context.Context, op, prompt string) (string, error) {
	text, err := s.generator.GenerateJSON(ctx, prompt)
	if err == nil {
		return text, nil
	}

	kind := "transport"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = "timeout"
	}
	s.metrics.RecordAIUpstreamFailure(op, kind)
	s.logger.ErrorContext(ctx, "AI upstream call failed", "operation", op, "error", err)

	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return "", err
	}
	return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}

// DisabledGenerator stands in when no API key is configured.
type DisabledGenerator struct{}

func (DisabledGenerator) GenerateJSON(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: GEMINI_API_KEY is not configured", domain.ErrUpstreamUnavailable)
}
