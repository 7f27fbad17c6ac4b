package audio

import (
	"bytes"
	"errors"

	"github.com/abema/go-mp4"
)

var ErrNoAudioTrack = errors.New("audio: container has no audio track")

// inspectM4A reads the MP4 box tree without decoding AAC frames. The clip is
// opaque: it carries the container's duration and rate but no samples.
func inspectM4A(data []byte) (*Clip, error) {
	info, err := mp4.Probe(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var track *mp4.Track
	for _, t := range info.Tracks {
		if t.Codec == mp4.CodecMP4A {
			track = t
			break
		}
	}
	if track == nil {
		return nil, ErrNoAudioTrack
	}
	if len(track.Samples) == 0 {
		return nil, errors.New("audio track has no samples")
	}
	if track.Timescale == 0 {
		return nil, errors.New("audio track has no timescale")
	}

	ticks := track.Duration
	if ticks == 0 {
		for _, s := range track.Samples {
			ticks += uint64(s.TimeDelta)
		}
	}

	channels := 0
	if track.MP4A != nil {
		channels = int(track.MP4A.ChannelCount)
	}
	return &Clip{
		SampleRate:       int(track.Timescale),
		Channels:         channels,
		MIMEType:         "audio/mp4",
		Opaque:           true,
		ContainerSeconds: float64(ticks) / float64(track.Timescale),
	}, nil
}
