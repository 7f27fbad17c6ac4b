package audio

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
	ErrEmptyInput        = errors.New("audio: empty input")
)

type decodeFunc func(data []byte) (*Clip, error)

var decoders = map[string]decodeFunc{
	".wav":  decodeWAV,
	".mp3":  decodeMP3,
	".flac": decodeFLAC,
	".ogg":  decodeOGG,
	".m4a":  inspectM4A,
}

// SupportedExtensions lists the accepted container extensions, sorted.
func SupportedExtensions() []string {
	out := make([]string, 0, len(decoders))
	for ext := range decoders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func Supported(ext string) bool {
	_, ok := decoders[strings.ToLower(ext)]
	return ok
}

// Decode turns an encoded upload into a Clip. The extension selects the codec.
// Decoder panics on malformed input are returned as errors.
func Decode(ext string, data []byte) (clip *Clip, err error) {
	ext = strings.ToLower(ext)
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	defer func() {
		if r := recover(); r != nil {
			clip = nil
			err = fmt.Errorf("audio: %s decoder panic: %v", ext, r)
		}
	}()

	clip, err = dec(data)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", ext, err)
	}
	clip.Format = strings.TrimPrefix(ext, ".")
	if clip.MIMEType == "" {
		clip.MIMEType = DetectMIME(data)
	}
	return clip, nil
}

// DetectMIME labels arbitrary bytes, ex: "audio/wav".
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}
