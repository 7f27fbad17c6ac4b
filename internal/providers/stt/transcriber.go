package stt

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/telepatia/internal/providers"
)

// Transcriber owns a lazily constructed Provider.
type Transcriber struct {
	provider *providers.Lazy[Provider]
	language string
	timeout  time.Duration
	log      *logrus.Logger
}

func NewTranscriber(factory func(ctx context.Context) (Provider, error), language string, timeout time.Duration, l *logrus.Logger) *Transcriber {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Transcriber{
		provider: providers.NewLazy(func(ctx context.Context) (Provider, error) {
			l.Info("initializing speech-to-text provider")
			p, err := factory(ctx)
			if err != nil {
				l.WithError(err).Error("speech-to-text provider initialization failed")
				return nil, err
			}
			return p, nil
		}),
		language: language,
		timeout:  timeout,
		log:      l,
	}
}

// Warm constructs the provider now instead of on the first request.
func (t *Transcriber) Warm(ctx context.Context) error {
	if _, err := t.provider.Get(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Transcribe returns the transcript exactly as the provider produced it.
func (t *Transcriber) Transcribe(ctx context.Context, audio Audio) (string, error) {
	if len(audio.Data) == 0 {
		return "", ErrNoAudio
	}

	p, err := t.provider.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	text, conf, err := p.Transcribe(ctx, audio, t.language)
	if err != nil {
		return "", err
	}
	t.log.WithFields(logrus.Fields{
		"chars":      len([]rune(text)),
		"confidence": conf,
	}).Debug("transcription completed")
	return text, nil
}

func (t *Transcriber) Close() error {
	if p, ok := t.provider.Peek(); ok {
		return p.Close()
	}
	return nil
}
