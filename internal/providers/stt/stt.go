package stt

import (
	"context"
	"errors"
)

var (
	ErrNoAudio             = errors.New("stt: no audio data")
	ErrUnavailable         = errors.New("stt: provider unavailable")
	ErrUnsupportedEncoding = errors.New("stt: unsupported audio encoding")
)

// Audio is one utterance to transcribe. SampleRate is zero when unknown.
type Audio struct {
	Data       []byte
	MIMEType   string
	SampleRate int
}

type Provider interface {
	// language example: "es-ES", "en-US"
	Transcribe(ctx context.Context, audio Audio, language string) (text string, confidence float64, err error)
	Close() error
}
