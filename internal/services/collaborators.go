package services

import (
	"context"

	"github.com/yoockh/telepatia/internal/providers/stt"
)

// Transcriber is satisfied by *stt.Transcriber.
type Transcriber interface {
	Transcribe(ctx context.Context, audio stt.Audio) (string, error)
}

// Generator is satisfied by *llm.Generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
