// Package processor validates and normalizes clinical text and audio before it is
// transcribed, persisted, or sent to the extraction model.
//
// Every stage takes the previous stage's output and returns a new value or an error;
// a Processor holds no per-request state and is safe for concurrent use.
package processor

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/logger"
	"github.com/yoockh/telepatia/internal/utils"
)

var (
	ErrInvalidText  = errors.New("invalid text")
	ErrInvalidAudio = errors.New("invalid audio")
	ErrEmptyText    = errors.New("no text provided")
	ErrEmptyResult  = errors.New("simplified text is empty")
)

// previewRunes bounds how much clinical text a log line may carry.
const previewRunes = 40

type Processor struct {
	log *logrus.Logger
}

func New(l *logrus.Logger) *Processor {
	if l == nil {
		l = logger.Discard()
	}
	return &Processor{log: l}
}

func invalid(op, reason string, cause error) error {
	return utils.E(utils.CodeInvalidArgument, op, reason, cause)
}
