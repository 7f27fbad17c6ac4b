package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

const wavFormatIEEEFloat = 3

func decodeWAV(data []byte) (*Clip, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, errors.New("invalid wav header")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil {
		return nil, errors.New("wav has no format chunk")
	}

	channels := buf.Format.NumChannels
	clip := &Clip{
		SampleRate: int(d.SampleRate),
		Channels:   channels,
		MIMEType:   "audio/wav",
	}

	switch {
	case d.WavAudioFormat == wavFormatIEEEFloat && d.BitDepth == 32:
		frames := len(buf.Data) / max(channels, 1)
		clip.Samples = make([]float32, frames)
		for i := 0; i < frames; i++ {
			var sum float32
			for ch := 0; ch < channels; ch++ {
				sum += math.Float32frombits(uint32(int32(buf.Data[i*channels+ch])))
			}
			clip.Samples[i] = sum / float32(channels)
		}
	case d.BitDepth == 8:
		// 8-bit PCM is unsigned, centred on 128.
		centred := make([]int, len(buf.Data))
		for i, v := range buf.Data {
			centred[i] = v - 128
		}
		clip.Samples = mixdown(centred, channels, 128)
	case d.BitDepth > 8 && d.BitDepth <= 32:
		clip.Samples = mixdown(buf.Data, channels, float32(int64(1)<<(d.BitDepth-1)))
	default:
		return nil, fmt.Errorf("unsupported wav bit depth %d", d.BitDepth)
	}
	return clip, nil
}

func decodeMP3(data []byte) (*Clip, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	// go-mp3 always yields 16-bit little endian stereo frames.
	frames := len(pcm) / 4
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(pcm[4*i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[4*i+2:]))
		samples[i] = (float32(l) + float32(r)) / 2 / 32768
	}
	return &Clip{
		Samples:    samples,
		SampleRate: d.SampleRate(),
		Channels:   2,
		MIMEType:   "audio/mpeg",
	}, nil
}

func decodeFLAC(data []byte) (*Clip, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	info := stream.Info
	if info.BitsPerSample == 0 {
		return nil, errors.New("flac stream info has no bit depth")
	}
	full := float32(int64(1) << (info.BitsPerSample - 1))

	var samples []float32
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		channels := len(f.Subframes)
		if channels == 0 {
			continue
		}
		for i := 0; i < int(f.BlockSize); i++ {
			var sum float32
			for _, sf := range f.Subframes {
				sum += float32(sf.Samples[i])
			}
			samples = append(samples, sum/float32(channels)/full)
		}
	}
	return &Clip{
		Samples:    samples,
		SampleRate: int(info.SampleRate),
		Channels:   int(info.NChannels),
		MIMEType:   "audio/flac",
	}, nil
}

func decodeOGG(data []byte) (*Clip, error) {
	interleaved, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	channels := max(format.Channels, 1)
	frames := len(interleaved) / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[i*channels+ch]
		}
		samples[i] = sum / float32(channels)
	}
	return &Clip{
		Samples:    samples,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		MIMEType:   "audio/ogg",
	}, nil
}
