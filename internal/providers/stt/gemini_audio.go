package stt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// GeminiAudio transcribes by sending the audio inline to a Gemini model.
// It accepts containers the Speech API cannot take as-is, such as m4a.
type GeminiAudio struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewGeminiAudio(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*GeminiAudio, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	m := c.GenerativeModel(modelName)
	m.SetTemperature(0)
	return &GeminiAudio{client: c, model: m}, nil
}

func (g *GeminiAudio) Close() error { return g.client.Close() }

func (g *GeminiAudio) Transcribe(ctx context.Context, audio Audio, language string) (string, float64, error) {
	if audio.MIMEType == "" {
		return "", 0, fmt.Errorf("%w: missing mime type", ErrUnsupportedEncoding)
	}

	resp, err := g.model.GenerateContent(ctx,
		vertexgenai.Blob{MIMEType: audio.MIMEType, Data: audio.Data},
		vertexgenai.Text(transcriptionInstruction(language)),
	)
	if err != nil {
		return "", 0, err
	}
	text, err := responseText(resp)
	if err != nil {
		return "", 0, err
	}
	// the model reports no confidence
	return text, 0, nil
}

func transcriptionInstruction(language string) string {
	if language == "" {
		language = "es-ES"
	}
	return "Transcribe this audio verbatim. The expected language is " + language +
		". Reply with the transcript only, without quotes, labels or commentary. " +
		"If there is no speech, reply with an empty message."
}

func responseText(resp *vertexgenai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
