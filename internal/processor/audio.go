package processor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/audio"
)

const (
	MinAudioSeconds  = 0.1
	SilenceThreshold = 0.001
)

// ValidateAudioFile checks an uploaded file by name and content and returns the
// decoded clip. Decoder failures are validation failures.
func (p *Processor) ValidateAudioFile(filename string, data []byte) (*audio.Clip, error) {
	const op = "Processor.ValidateAudioFile"

	if strings.TrimSpace(filename) == "" {
		return nil, p.rejectAudio(op, "audio file has no filename", nil)
	}

	ext := extension(filename)
	if !audio.Supported(ext) {
		return nil, p.rejectAudio(op, fmt.Sprintf("unsupported audio format %q, expected one of %s", ext, strings.Join(audio.SupportedExtensions(), ", ")), nil)
	}
	if len(data) == 0 {
		return nil, p.rejectAudio(op, "audio file is empty", nil)
	}

	clip, err := audio.Decode(ext, data)
	if err != nil {
		return nil, p.rejectAudio(op, "audio could not be decoded", err)
	}

	if !clip.Opaque && clip.Len() == 0 {
		return nil, p.rejectAudio(op, "audio file is empty", nil)
	}
	if clip.Seconds() < MinAudioSeconds {
		return nil, p.rejectAudio(op, "audio is too short (less than 0.1 seconds)", nil)
	}
	// Opaque containers carry no samples to measure.
	if !clip.Opaque && clip.Peak() < SilenceThreshold {
		return nil, p.rejectAudio(op, "audio appears to be only silence", nil)
	}

	p.log.WithFields(logrus.Fields{
		"duration_s":  fmt.Sprintf("%.2f", clip.Seconds()),
		"sample_rate": clip.SampleRate,
		"format":      clip.Format,
		"opaque":      clip.Opaque,
	}).Info("valid audio")
	return clip, nil
}

// ValidateSamples checks an already decoded buffer.
func (p *Processor) ValidateSamples(samples []float32) error {
	const op = "Processor.ValidateSamples"

	if len(samples) == 0 {
		return p.rejectAudio(op, "audio array is empty", nil)
	}
	if audio.Peak(samples) < SilenceThreshold {
		return p.rejectAudio(op, "audio array appears to be only silence", nil)
	}
	return nil
}

// ValidateAudioPayload accepts any non-empty encoded payload without decoding it.
// Callers holding trusted in-process audio use this instead of ValidateAudioFile.
func (p *Processor) ValidateAudioPayload(raw []byte) error {
	const op = "Processor.ValidateAudioPayload"

	if len(raw) == 0 {
		return p.rejectAudio(op, "no audio provided for validation", nil)
	}
	return nil
}

func (p *Processor) rejectAudio(op, reason string, cause error) error {
	entry := p.log.WithField("reason", reason)
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Error("audio validation failed")

	wrapped := ErrInvalidAudio
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrInvalidAudio, cause)
	}
	return invalid(op, reason, wrapped)
}

// extension lower-cases the final suffix of name, ignoring leading dots so that
// ".wav" on its own has no extension.
func extension(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	return strings.ToLower(filepath.Ext(base))
}
