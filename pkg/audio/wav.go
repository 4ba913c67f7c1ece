// Package audio prepares recorded voice memos for the speech provider:
// WAV decode, downmix to mono, resample to 16 kHz, re-encode as 16-bit PCM.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// TargetSampleRate is what the speech model expects.
const TargetSampleRate = 16000

var ErrInvalidWAV = errors.New("invalid wav data")

// Clip is decoded mono audio, samples normalized to [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
}

// DecodeWAV decodes WAV bytes and downmixes multi-channel audio to mono by
// channel average.
func DecodeWAV(data []byte) (*Clip, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrInvalidWAV
	}

	channels := buf.Format.NumChannels
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// Resample converts the clip to targetRate using linear interpolation. A
// clip already at targetRate is returned as-is.
func (c *Clip) Resample(targetRate int) *Clip {
	if c.SampleRate == targetRate || len(c.Samples) == 0 {
		return c
	}

	ratio := float64(c.SampleRate) / float64(targetRate)
	outLen := int(float64(len(c.Samples)) / ratio)
	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) * ratio
		left := int(pos)
		right := left + 1
		if right >= len(c.Samples) {
			right = len(c.Samples) - 1
		}
		frac := pos - float64(left)
		out[i] = c.Samples[left]*(1-frac) + c.Samples[right]*frac
	}

	return &Clip{Samples: out, SampleRate: targetRate}
}

// EncodeWAV writes the clip back out as 16-bit mono PCM WAV.
func (c *Clip) EncodeWAV() ([]byte, error) {
	ws := &writeSeeker{}
	encoder := wav.NewEncoder(ws, c.SampleRate, 16, 1, 1)

	data := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		v := math.Round(s * 32767)
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		data[i] = int(v)
	}

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: c.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// PrepareForSpeech runs the full pipeline on raw recording bytes.
func PrepareForSpeech(data []byte) ([]byte, error) {
	clip, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}
	return clip.Resample(TargetSampleRate).EncodeWAV()
}

// writeSeeker lets the wav encoder patch up chunk sizes in memory; the
// encoder requires an io.WriteSeeker.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	if extra := ws.pos + len(p) - len(ws.buf); extra > 0 {
		ws.buf = append(ws.buf, make([]byte, extra)...)
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos += len(p)
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = ws.pos + int(offset)
	case io.SeekEnd:
		next = len(ws.buf) + int(offset)
	default:
		return 0, errors.New("invalid whence")
	}
	if next < 0 {
		return 0, errors.New("negative seek position")
	}
	ws.pos = next
	return int64(next), nil
}
