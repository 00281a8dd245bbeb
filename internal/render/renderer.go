// Package render turns script segments into timed clips and orchestrates the
// whole slideshow generation run.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	"slidecast/internal/config"
	"slidecast/internal/encode"
	"slidecast/internal/overlay"
	"slidecast/internal/tts"
	"slidecast/pkg/script"
)

// Clip is the renderable outcome of one segment: a flattened frame, an
// optional narration track, and the effective hold duration.
type Clip struct {
	Index  int
	Text   string
	Media  encode.Clip
	Silent bool
}

// Renderer produces one clip per segment.
type Renderer struct {
	Config   config.Config
	Synth    tts.Synthesizer
	Encoder  encode.Encoder
	Log      *log.Logger
	WorkDir  string
	Registry *Registry
}

// RenderSegment renders the composited frame for a segment and attempts
// narration synthesis. A background that cannot be prepared fails the
// segment; a synthesis failure degrades to a silent clip at the segment's own
// duration.
func (r *Renderer) RenderSegment(ctx context.Context, seg script.Segment, index int, backgroundPath string) (Clip, error) {
	cfg := r.Config

	background, err := LoadBackground(backgroundPath, cfg.Video.Width, cfg.Video.Height)
	if err != nil {
		return Clip{}, fmt.Errorf("segment %d: %w", index, err)
	}

	fontSize := seg.FontSize
	if fontSize <= 0 {
		fontSize = cfg.Text.FontSize
	}
	layer, fontSource := overlay.Build(seg.Text, overlay.Options{
		Width:     cfg.Video.Width,
		Height:    cfg.Video.Height,
		FontFile:  cfg.Text.FontFile,
		FontSize:  fontSize,
		TextColor: parseColor(cfg.Text.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 1),
		BoxColor:  parseColor(cfg.Box.Color, color.NRGBA{A: 128}, cfg.Box.Opacity),
		MarginPx:  cfg.Text.MarginPx,
		PaddingPx: cfg.Box.PaddingPx,
	})
	if fontSource != overlay.FontRequested && cfg.Text.FontFile != "" {
		r.Log.Printf("segment %d: font %s unavailable, using %s font", index, cfg.Text.FontFile, fontSource)
	}

	frame := image.NewRGBA(background.Bounds())
	draw.Draw(frame, frame.Bounds(), background, image.Point{}, draw.Src)
	draw.Draw(frame, frame.Bounds(), layer, image.Point{}, draw.Over)

	imagePath, err := r.writeFrame(frame, index)
	if err != nil {
		return Clip{}, fmt.Errorf("segment %d: %w", index, err)
	}

	duration := seg.Duration

	audioPath, err := r.synthesize(ctx, seg, index)
	if err != nil {
		r.Log.Printf("segment %d: speech synthesis failed, rendering silent clip: %v", index, err)
		return Clip{
			Index:  index,
			Text:   seg.Text,
			Media:  encode.Clip{ImagePath: imagePath, Duration: duration},
			Silent: true,
		}, nil
	}

	if measured, err := r.Encoder.ProbeDuration(ctx, audioPath); err != nil {
		r.Log.Printf("segment %d: could not measure narration length: %v", index, err)
	} else {
		duration = math.Max(duration, measured)
	}

	return Clip{
		Index: index,
		Text:  seg.Text,
		Media: encode.Clip{ImagePath: imagePath, AudioPath: audioPath, Duration: duration},
	}, nil
}

func (r *Renderer) writeFrame(frame *image.RGBA, index int) (string, error) {
	f, err := os.CreateTemp(r.WorkDir, fmt.Sprintf("frame_%03d_*.png", index))
	if err != nil {
		return "", fmt.Errorf("create frame file: %w", err)
	}
	r.Registry.Add(f.Name())
	defer f.Close()

	if err := png.Encode(f, frame); err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	return f.Name(), nil
}

func (r *Renderer) synthesize(ctx context.Context, seg script.Segment, index int) (string, error) {
	f, err := os.CreateTemp(r.WorkDir, fmt.Sprintf("speech_%03d_*.mp3", index))
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	audioPath := f.Name()
	f.Close()
	r.Registry.Add(audioPath)

	req := tts.Request{
		Text:     seg.Text,
		Language: r.Config.Speech.Language,
		Slow:     r.Config.Speech.SlowValue(),
	}
	if err := r.Synth.Synthesize(ctx, req, audioPath); err != nil {
		return "", err
	}
	return audioPath, nil
}

// parseColor reads a #rrggbb hex string and applies an opacity in [0,1]. An
// unparseable value falls back to the given default; config values are not
// validated beyond this.
func parseColor(value string, fallback color.NRGBA, opacity float64) color.NRGBA {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) != 6 {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	alpha := math.Round(opacity * 255)
	if alpha < 0 {
		alpha = 0
	} else if alpha > 255 {
		alpha = 255
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}
}
