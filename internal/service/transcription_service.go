package service

import (
	"context"

	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/logger"
	pkgaudio "collectible-documenter-be/pkg/audio"
	"collectible-documenter-be/pkg/transcribe"
)

type ITranscriptionService interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

type transcriptionService struct {
	provider transcribe.Provider
	logger   logger.ILogger
}

func NewTranscriptionService(provider transcribe.Provider, log logger.ILogger) ITranscriptionService {
	return &transcriptionService{
		provider: provider,
		logger:   log,
	}
}

// Transcribe decodes the recording, downmixes to mono, resamples to 16 kHz
// and sends the result to the speech provider. No retry, no partial
// results; a failure is fatal to the request.
func (s *transcriptionService) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	prepared, err := pkgaudio.PrepareForSpeech(audioData)
	if err != nil {
		return "", apperr.Validation("could not decode audio: " + err.Error())
	}

	text, err := s.provider.Transcribe(ctx, prepared)
	if err != nil {
		return "", apperr.Transport("transcription failed", err)
	}
	return text, nil
}
