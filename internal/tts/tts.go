// Package tts synthesizes narration audio for segment text.
package tts

import (
	"context"
	"errors"
)

// ErrEmptyText is returned when there is nothing to synthesize.
var ErrEmptyText = errors.New("empty text")

// Request describes one synthesis call.
type Request struct {
	Text     string
	Language string
	Slow     bool
}

// Synthesizer renders speech for a request into an audio file at outPath.
// Implementations are network-dependent and may fail; callers degrade to
// silent clips on error.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request, outPath string) error
}
