package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

type GoogleSpeech struct {
	c *speech.Client
}

func NewGoogleSpeech(ctx context.Context, opts ...option.ClientOption) (*GoogleSpeech, error) {
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleSpeech{c: c}, nil
}

func (g *GoogleSpeech) Close() error { return g.c.Close() }

func (g *GoogleSpeech) Transcribe(ctx context.Context, audio Audio, language string) (string, float64, error) {
	cfg, err := recognitionConfig(audio, language)
	if err != nil {
		return "", 0, err
	}

	resp, err := g.c.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio.Data},
		},
	})
	if err != nil {
		return "", 0, err
	}
	text, conf := bestAlternative(resp.GetResults())
	return text, conf, nil
}

func recognitionConfig(audio Audio, language string) (*speechpb.RecognitionConfig, error) {
	if language == "" {
		language = "es-ES"
	}

	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               language,
		EnableAutomaticPunctuation: true,
		SampleRateHertz:            int32(audio.SampleRate),
	}

	mime := strings.ToLower(strings.TrimSpace(audio.MIMEType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
	case "audio/flac", "audio/x-flac":
		cfg.Encoding = speechpb.RecognitionConfig_FLAC
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, audio.MIMEType)
	}
	return cfg, nil
}

// bestAlternative joins the top alternative of each result; results are
// consecutive segments of the same audio.
func bestAlternative(results []*speechpb.SpeechRecognitionResult) (string, float64) {
	var parts []string
	var confSum float64
	for _, r := range results {
		alts := r.GetAlternatives()
		if len(alts) == 0 || alts[0].GetTranscript() == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		confSum += float64(alts[0].GetConfidence())
	}
	if len(parts) == 0 {
		return "", 0
	}
	return strings.Join(parts, " "), confSum / float64(len(parts))
}
