package models

import "encoding/json"

// Extraction is the model output for one prompt. It is never persisted.
type Extraction struct {
	Prompt        string `json:"prompt"`
	GeneratedText string `json:"generated_text"`
	// Structured is set when GeneratedText holds a JSON object.
	Structured json.RawMessage `json:"structured,omitempty"`
}
