package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/telepatia/internal/providers"
)

// Generator owns a lazily constructed Provider and returns whole answers.
type Generator struct {
	provider *providers.Lazy[Provider]
	timeout  time.Duration
	log      *logrus.Logger
}

func NewGenerator(factory func(ctx context.Context) (Provider, error), timeout time.Duration, l *logrus.Logger) *Generator {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Generator{
		provider: providers.NewLazy(func(ctx context.Context) (Provider, error) {
			l.Info("initializing generative model client")
			p, err := factory(ctx)
			if err != nil {
				l.WithError(err).Error("generative model client initialization failed")
				return nil, err
			}
			return p, nil
		}),
		timeout: timeout,
		log:     l,
	}
}

func (g *Generator) Warm(ctx context.Context) error {
	if _, err := g.provider.Get(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Generate returns the trimmed model output. Empty output is ErrEmptyOutput.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	p, err := g.provider.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := Collect(ctx, p, prompt)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrEmptyOutput
	}
	g.log.WithField("chars", len([]rune(out))).Debug("generation completed")
	return out, nil
}

func (g *Generator) Close() error {
	if p, ok := g.provider.Peek(); ok {
		return p.Close()
	}
	return nil
}
