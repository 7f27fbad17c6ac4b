package processor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/redact"
)

const (
	MinTextLength = 2
	MaxTextLength = 10000
)

var (
	// ASCII letters plus the accented letters used in Spanish.
	alphabeticRe  = regexp.MustCompile(`[a-zA-ZáéíóúÁÉÍÓÚñÑ]`)
	onlyNumbersRe = regexp.MustCompile(`^[\p{Nd}\s\v\p{Z}\x{85}\x{1C}-\x{1F}.,\-+()]+$`)
)

// ValidateText reports whether candidate is usable clinical text. The returned
// error carries CodeInvalidArgument and a human readable reason.
func (p *Processor) ValidateText(candidate string) error {
	const op = "Processor.ValidateText"

	if candidate == "" {
		return p.rejectText(op, "no text provided for validation", candidate)
	}

	text := strings.TrimFunc(candidate, isSpace)
	if text == "" {
		return p.rejectText(op, "text is empty", candidate)
	}

	n := utf8.RuneCountInString(text)
	if n < MinTextLength {
		return p.rejectText(op, "text is too short (less than 2 characters)", candidate)
	}
	if n > MaxTextLength {
		return p.rejectText(op, "text is too long (more than 10,000 characters)", candidate)
	}

	if !alphabeticRe.MatchString(text) {
		return p.rejectText(op, "text must contain at least one alphabetic character", candidate)
	}
	if onlyNumbersRe.MatchString(text) {
		return p.rejectText(op, "text cannot be only numbers", candidate)
	}

	p.log.WithField("chars", n).Info("valid text")
	return nil
}

// ValidText is the predicate form of ValidateText.
func (p *Processor) ValidText(candidate string) bool {
	return p.ValidateText(candidate) == nil
}

func (p *Processor) rejectText(op, reason, candidate string) error {
	p.log.WithFields(logrus.Fields{
		"reason":  reason,
		"preview": redact.Preview(candidate, previewRunes),
	}).Error("text validation failed")
	return invalid(op, reason, ErrInvalidText)
}
