package services

import (
	"bytes"
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/audio"
	"github.com/yoockh/telepatia/internal/metrics"
	"github.com/yoockh/telepatia/internal/models"
	"github.com/yoockh/telepatia/internal/processor"
	"github.com/yoockh/telepatia/internal/providers/stt"
	"github.com/yoockh/telepatia/internal/redact"
	mongorepo "github.com/yoockh/telepatia/internal/repositories/mongo"
	"github.com/yoockh/telepatia/internal/storage"
	"github.com/yoockh/telepatia/internal/utils"
)

const (
	msgInvalidText       = "The provided text is not valid. Please verify that it contains at least one alphabetic character and is not only numbers."
	msgSimplifyText      = "Error simplifying the text. The result is empty."
	msgInvalidAudio      = "The audio file is not valid. Please verify that it has a supported format (.wav, .mp3, .flac, .m4a, .ogg) and is not empty."
	msgOpaqueAudio       = "The audio format is not supported by the configured transcription provider. Please upload a .wav, .mp3, .flac or .ogg file."
	msgTranscribe        = "Error transcribing the audio. Could not convert audio to text."
	msgInvalidTranscript = "The transcribed text is not valid. The audio might contain only noise or be empty."
	msgSimplifyAudio     = "Error simplifying the transcribed text. The result is empty."
	msgSave              = "Error saving the message. Please try again later."
)

type TextResult struct {
	ID         string
	Original   string
	Simplified string
}

type AudioResult struct {
	ID         string
	Filename   string
	Transcript string
	Simplified string
	AudioURL   string
}

type MessageService interface {
	ProcessText(ctx context.Context, text string) (*TextResult, error)
	ProcessAudio(ctx context.Context, filename string, data []byte) (*AudioResult, error)
}

// MessageDeps wires a MessageService. Archive and Metrics may be nil.
type MessageDeps struct {
	Processor   *processor.Processor
	Messages    mongorepo.MessageRepository
	Transcriber Transcriber
	// OpaqueAudio is set when the transcriber accepts containers that are not
	// decoded locally, ex: m4a.
	OpaqueAudio bool
	Archive     storage.Uploader
	Metrics     *metrics.Metrics
	Log         *logrus.Logger
}

type messageService struct {
	proc     *processor.Processor
	messages mongorepo.MessageRepository
	stt      Transcriber
	opaque   bool
	archive  storage.Uploader
	metrics  *metrics.Metrics
	log      *logrus.Logger
}

func NewMessageService(d MessageDeps) MessageService {
	if d.Metrics == nil {
		d.Metrics = metrics.DefaultMetrics
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Processor == nil {
		d.Processor = processor.New(d.Log)
	}
	return &messageService{
		proc:     d.Processor,
		messages: d.Messages,
		stt:      d.Transcriber,
		opaque:   d.OpaqueAudio,
		archive:  d.Archive,
		metrics:  d.Metrics,
		log:      d.Log,
	}
}

func (s *messageService) ProcessText(ctx context.Context, text string) (*TextResult, error) {
	const op = "MessageService.ProcessText"

	s.log.WithField("chars", len([]rune(text))).Info("processing text message")

	if err := s.proc.ValidateText(text); err != nil {
		s.metrics.RecordMessage(string(models.MessageTypeText), "invalid")
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidText, err)
	}

	simplified, err := s.proc.Simplify(text)
	if err != nil {
		s.metrics.RecordMessage(string(models.MessageTypeText), "failed")
		return nil, utils.E(utils.CodeInternal, op, msgSimplifyText, err)
	}

	id, err := s.save(ctx, &models.Message{
		MessageType:       models.MessageTypeText,
		Message:           text,
		SimplifiedMessage: simplified,
	})
	if err != nil {
		s.metrics.RecordMessage(string(models.MessageTypeText), "failed")
		return nil, utils.E(utils.CodeInternal, op, msgSave, err)
	}

	s.metrics.RecordMessage(string(models.MessageTypeText), "ok")
	s.log.WithFields(logrus.Fields{
		"id":               id,
		"simplified_chars": len([]rune(simplified)),
	}).Info("text message processed")

	return &TextResult{ID: id, Original: text, Simplified: simplified}, nil
}

func (s *messageService) ProcessAudio(ctx context.Context, filename string, data []byte) (*AudioResult, error) {
	const op = "MessageService.ProcessAudio"
	kind := string(models.MessageTypeAudio)

	s.log.WithFields(logrus.Fields{
		"filename": filename,
		"bytes":    len(data),
	}).Info("processing audio message")

	clip, err := s.proc.ValidateAudioFile(filename, data)
	if err != nil {
		s.metrics.RecordMessage(kind, "invalid")
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidAudio, err)
	}
	if clip.Opaque && !s.opaque {
		s.metrics.RecordMessage(kind, "invalid")
		s.log.WithField("format", clip.Format).Warn("transcriber cannot read undecoded container")
		return nil, utils.E(utils.CodeInvalidArgument, op, msgOpaqueAudio, processor.ErrInvalidAudio)
	}

	transcript, err := s.transcribe(ctx, clip, data)
	if err != nil {
		s.metrics.RecordMessage(kind, "failed")
		return nil, utils.E(utils.CodeInternal, op, msgTranscribe, err)
	}

	if err := s.proc.ValidateText(transcript); err != nil {
		s.metrics.RecordMessage(kind, "invalid")
		return nil, utils.E(utils.CodeInvalidArgument, op, msgInvalidTranscript, err)
	}

	simplified, err := s.proc.Simplify(transcript)
	if err != nil {
		s.metrics.RecordMessage(kind, "failed")
		return nil, utils.E(utils.CodeInternal, op, msgSimplifyAudio, err)
	}

	audioURL := s.archiveAudio(ctx, filename, clip.MIMEType, data)

	id, err := s.save(ctx, &models.Message{
		MessageType:       models.MessageTypeAudio,
		Message:           transcript,
		SimplifiedMessage: simplified,
		AudioBytes:        data,
		AudioFilename:     filename,
		AudioURL:          audioURL,
	})
	if err != nil {
		s.metrics.RecordMessage(kind, "failed")
		return nil, utils.E(utils.CodeInternal, op, msgSave, err)
	}

	s.metrics.RecordMessage(kind, "ok")
	s.log.WithFields(logrus.Fields{
		"id":                id,
		"transcript_chars":  len([]rune(transcript)),
		"simplified_chars":  len([]rune(simplified)),
		"transcript_sample": redact.Preview(transcript, 40),
	}).Info("audio message processed")

	return &AudioResult{
		ID:         id,
		Filename:   filename,
		Transcript: transcript,
		Simplified: simplified,
		AudioURL:   audioURL,
	}, nil
}

// transcribe sends decoded clips as 16-bit WAV and opaque containers as uploaded.
func (s *messageService) transcribe(ctx context.Context, clip *audio.Clip, raw []byte) (string, error) {
	in := stt.Audio{Data: raw, MIMEType: clip.MIMEType}
	if !clip.Opaque {
		wav, err := clip.WAV()
		if err != nil {
			return "", err
		}
		in = stt.Audio{Data: wav, MIMEType: "audio/wav", SampleRate: clip.SampleRate}
	}

	start := time.Now()
	text, err := s.stt.Transcribe(ctx, in)
	s.metrics.RecordCollaborator("stt", time.Since(start).Seconds(), err)
	if err != nil {
		s.log.WithError(err).Error("transcription failed")
		return "", err
	}
	return text, nil
}

// archiveAudio is best effort; a failed upload leaves the URL empty.
func (s *messageService) archiveAudio(ctx context.Context, filename, contentType string, data []byte) string {
	if s.archive == nil {
		return ""
	}

	start := time.Now()
	url, err := s.archive.Upload(ctx, storage.AudioObjectName(start, filename), contentType, bytes.NewReader(data))
	s.metrics.RecordCollaborator("archive", time.Since(start).Seconds(), err)
	if err != nil {
		s.log.WithError(err).Warn("audio archive upload failed")
		return ""
	}
	return url
}

func (s *messageService) save(ctx context.Context, m *models.Message) (string, error) {
	start := time.Now()
	id, err := s.messages.Insert(ctx, m)
	s.metrics.RecordCollaborator("mongo", time.Since(start).Seconds(), err)
	if err != nil {
		s.log.WithError(err).WithField("message_type", m.MessageType).Error("saving message failed")
		return "", err
	}
	return id, nil
}
