// Package cache remembers extraction answers so identical prompts skip the model.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

const ExtractionNamespace = "extraction"

var ErrEmptyEntry = errors.New("cache: entry has no generated text")

// Entry is the stored answer for one rendered extraction prompt.
type Entry struct {
	GeneratedText string    `json:"generated_text"`
	StoredAt      time.Time `json:"stored_at"`
}

// ExtractionStore is keyed by the full prompt. Lookup returns (nil, nil) on a miss.
type ExtractionStore interface {
	Lookup(ctx context.Context, prompt string) (*Entry, error)
	Save(ctx context.Context, prompt string, e Entry) error
	Forget(ctx context.Context, prompt string) error
}

// Key builds a fixed-length key so raw clinical text never appears in the store.
func Key(namespace, text string) string {
	sum := sha256.Sum256([]byte(text))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
