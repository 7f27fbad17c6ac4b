package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	defaultModel = "gemini-2.0-flash"
	// Field extraction wants the same answer for the same note.
	extractionTemperature = 0.1
)

// VertexGemini streams extraction answers from a Gemini model on Vertex AI.
type VertexGemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*VertexGemini, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New("llm: google cloud project is required")
	}
	c, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = defaultModel
	}
	m := c.GenerativeModel(modelName)
	m.SetTemperature(extractionTemperature)
	m.SetCandidateCount(1)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, 32)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		it := v.model.GenerateContentStream(ctx, genai.Text(prompt))
		for {
			resp, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				errs <- classify(err)
				return
			}

			for _, chunk := range answerText(resp) {
				select {
				case out <- chunk:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
		}
	}()

	return out, errs
}

// classify maps safety blocks onto ErrBlocked, keeping the model's reason.
func classify(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrBlocked, err)
	}
	return err
}

// answerText returns the non-empty text parts of the first candidate.
func answerText(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var out []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok && t != "" {
			out = append(out, string(t))
		}
	}
	return out
}
