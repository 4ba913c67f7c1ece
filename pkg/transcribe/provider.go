// Package transcribe converts prepared voice memo audio into plain text.
package transcribe

import "context"

// Provider turns a 16 kHz mono PCM WAV clip into its transcript.
// Implementations are constructed once at bootstrap and shared; inference
// calls are independent of each other.
type Provider interface {
	Transcribe(ctx context.Context, wavData []byte) (string, error)
}
