// Package audio decodes uploaded audio containers into mono sample buffers.
package audio

import (
	"errors"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

// Clip is a decoded upload. Samples are mono, in the range [-1, 1].
type Clip struct {
	Samples    []float32
	SampleRate int
	// Channels is the channel count of the source before mixdown.
	Channels int
	// Format is the container extension without the dot, ex: "wav".
	Format   string
	MIMEType string
	// Opaque clips were recognised by container only and carry no samples.
	Opaque bool
	// ContainerSeconds is the track duration declared by an opaque container.
	ContainerSeconds float64
}

var ErrOpaque = errors.New("audio: clip has no decoded samples")

func (c *Clip) Len() int { return len(c.Samples) }

// Seconds is the clip length computed as samples / sample rate. Opaque clips
// report the duration their container declares.
func (c *Clip) Seconds() float64 {
	if c.Opaque {
		return c.ContainerSeconds
	}
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Peak returns the maximum absolute sample amplitude.
func (c *Clip) Peak() float32 {
	return Peak(c.Samples)
}

func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// WAV re-encodes the clip as 16-bit mono PCM in a RIFF container.
func (c *Clip) WAV() ([]byte, error) {
	if c.Opaque {
		return nil, ErrOpaque
	}
	if c.SampleRate <= 0 {
		return nil, errors.New("audio: clip has no sample rate")
	}

	ints := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		ints[i] = int(math.Round(float64(clamp(s)) * math.MaxInt16))
	}
	buf := &goaudio.IntBuffer{
		Data:           ints,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: c.SampleRate},
		SourceBitDepth: 16,
	}

	ws := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(ws, c.SampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return io.ReadAll(ws.Reader())
}

func clamp(s float32) float32 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}

// mixdown averages interleaved frames into one channel, scaling by full.
func mixdown(interleaved []int, channels int, full float32) []float32 {
	if channels <= 0 {
		channels = 1
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += float32(interleaved[i*channels+ch])
		}
		out[i] = sum / float32(channels) / full
	}
	return out
}
