package llm

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnavailable = errors.New("llm: provider unavailable")
	ErrEmptyOutput = errors.New("llm: empty output")
	ErrBlocked     = errors.New("llm: response blocked")
)

type Provider interface {
	// StreamAnswer returns a stream of text chunks (incremental).
	StreamAnswer(ctx context.Context, prompt string) (chunks <-chan string, errs <-chan error)
	Close() error
}

// Collect drains a stream into one trimmed string.
func Collect(ctx context.Context, p Provider, prompt string) (string, error) {
	chunks, errs := p.StreamAnswer(ctx, prompt)

	var sb strings.Builder
	for c := range chunks {
		sb.WriteString(c)
	}
	if err := <-errs; err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
