package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/cache"
	"github.com/yoockh/telepatia/internal/metrics"
	"github.com/yoockh/telepatia/internal/models"
	"github.com/yoockh/telepatia/internal/prompts"
	"github.com/yoockh/telepatia/internal/providers/llm"
	"github.com/yoockh/telepatia/internal/redact"
	"github.com/yoockh/telepatia/internal/utils"
)

const (
	msgEmptyPrompt    = "The prompt must not be empty."
	msgGenUnavailable = "Text generation service is not available. Please try again later."
	msgNothingGen     = "No text was generated. Please try with a different prompt."
)

type ExtractionService interface {
	Extract(ctx context.Context, prompt string) (*models.Extraction, error)
}

type extractionService struct {
	gen     Generator
	store   cache.ExtractionStore
	metrics *metrics.Metrics
	log     *logrus.Logger
}

// NewExtractionService wires the extractor; store may be nil to disable caching.
func NewExtractionService(gen Generator, store cache.ExtractionStore, m *metrics.Metrics, l *logrus.Logger) ExtractionService {
	if m == nil {
		m = metrics.DefaultMetrics
	}
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &extractionService{gen: gen, store: store, metrics: m, log: l}
}

func (s *extractionService) Extract(ctx context.Context, prompt string) (*models.Extraction, error) {
	const op = "ExtractionService.Extract"

	if strings.TrimSpace(prompt) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgEmptyPrompt, nil)
	}
	s.log.WithField("prompt", redact.Preview(prompt, 50)).Info("processing extraction request")

	full := prompts.MedicalExtraction(prompt)

	if text, ok := s.lookup(ctx, full); ok {
		return newExtraction(prompt, text), nil
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, full)
	s.metrics.RecordCollaborator("llm", time.Since(start).Seconds(), err)
	switch {
	case errors.Is(err, llm.ErrEmptyOutput), errors.Is(err, llm.ErrBlocked):
		return nil, utils.E(utils.CodeInternal, op, msgNothingGen, err)
	case err != nil:
		s.log.WithError(err).Error("generation failed")
		return nil, utils.E(utils.CodeInternal, op, msgGenUnavailable, err)
	case strings.TrimSpace(text) == "":
		return nil, utils.E(utils.CodeInternal, op, msgNothingGen, nil)
	}

	s.remember(ctx, full, text)
	s.log.WithField("chars", len([]rune(text))).Info("extraction completed")
	return newExtraction(prompt, text), nil
}

func (s *extractionService) lookup(ctx context.Context, full string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	hit, err := s.store.Lookup(ctx, full)
	if err != nil {
		s.log.WithError(err).Warn("extraction cache read failed")
		return "", false
	}
	s.metrics.RecordCacheLookup(hit != nil)
	if hit == nil {
		return "", false
	}
	return hit.GeneratedText, true
}

func (s *extractionService) remember(ctx context.Context, full, text string) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, full, cache.Entry{GeneratedText: text}); err != nil {
		s.log.WithError(err).Warn("extraction cache write failed")
	}
}

func newExtraction(prompt, text string) *models.Extraction {
	return &models.Extraction{
		Prompt:        prompt,
		GeneratedText: text,
		Structured:    structuredJSON(text),
	}
}

// structuredJSON returns text as raw JSON when it holds a single object,
// optionally wrapped in a Markdown code fence. Anything else yields nil.
func structuredJSON(text string) json.RawMessage {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```")
		if i := strings.IndexByte(body, '\n'); i >= 0 {
			body = body[i+1:]
		} else {
			return nil
		}
		body = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), "```"))
	}
	if !strings.HasPrefix(body, "{") {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(body)); err != nil {
		return nil
	}
	return buf.Bytes()
}
