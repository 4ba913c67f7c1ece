package audio

import (
	"errors"
	"math"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeTestWAV builds a WAV clip with the given per-channel samples.
func encodeTestWAV(t *testing.T, sampleRate int, channels [][]float64) []byte {
	t.Helper()

	frames := len(channels[0])
	data := make([]int, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			data = append(data, int(math.Round(ch[i]*32767)))
		}
	}

	ws := &writeSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, 16, len(channels), 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return ws.buf
}

func constSamples(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestDecodeWAVMono(t *testing.T) {
	raw := encodeTestWAV(t, 16000, [][]float64{constSamples(1600, 0.25)})

	clip, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if clip.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", clip.SampleRate)
	}
	if len(clip.Samples) != 1600 {
		t.Errorf("samples = %d, want 1600", len(clip.Samples))
	}
	if math.Abs(clip.Samples[100]-0.25) > 0.01 {
		t.Errorf("sample = %f, want about 0.25", clip.Samples[100])
	}
}

func TestDecodeWAVDownmixesToMono(t *testing.T) {
	// Left and right cancel out when averaged.
	raw := encodeTestWAV(t, 16000, [][]float64{
		constSamples(800, 0.5),
		constSamples(800, -0.5),
	})

	clip, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if len(clip.Samples) != 800 {
		t.Errorf("samples = %d, want 800 frames after downmix", len(clip.Samples))
	}
	for i, s := range clip.Samples {
		if math.Abs(s) > 0.01 {
			t.Fatalf("sample %d = %f, want about 0 after channel average", i, s)
		}
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV([]byte("definitely not audio"))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("err = %v, want ErrInvalidWAV", err)
	}
}

func TestResample(t *testing.T) {
	clip := &Clip{Samples: constSamples(8000, 0.3), SampleRate: 8000}

	out := clip.Resample(TargetSampleRate)
	if out.SampleRate != TargetSampleRate {
		t.Errorf("SampleRate = %d, want %d", out.SampleRate, TargetSampleRate)
	}
	if got, want := len(out.Samples), 16000; got < want-2 || got > want+2 {
		t.Errorf("samples = %d, want about %d", got, want)
	}
	if math.Abs(out.Samples[1000]-0.3) > 0.01 {
		t.Errorf("sample = %f, want about 0.3", out.Samples[1000])
	}

	// Already at the target rate: same clip back.
	same := out.Resample(TargetSampleRate)
	if same != out {
		t.Error("resample at target rate should be a no-op")
	}
}

func TestPrepareForSpeech(t *testing.T) {
	raw := encodeTestWAV(t, 44100, [][]float64{
		constSamples(4410, 0.2),
		constSamples(4410, 0.2),
	})

	prepared, err := PrepareForSpeech(raw)
	if err != nil {
		t.Fatalf("PrepareForSpeech: %v", err)
	}

	clip, err := DecodeWAV(prepared)
	if err != nil {
		t.Fatalf("decode prepared: %v", err)
	}
	if clip.SampleRate != TargetSampleRate {
		t.Errorf("SampleRate = %d, want %d", clip.SampleRate, TargetSampleRate)
	}
	// 0.1s of audio at 16kHz.
	if got := len(clip.Samples); got < 1500 || got > 1700 {
		t.Errorf("samples = %d, want about 1600", got)
	}
	if math.Abs(clip.Samples[500]-0.2) > 0.01 {
		t.Errorf("sample = %f, want about 0.2", clip.Samples[500])
	}
}
