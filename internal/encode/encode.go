// Package encode drives ffmpeg for clip rendering, timeline concatenation,
// and audio probing. All pixel and codec work happens inside ffmpeg; this
// package only assembles invocations.
package encode

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"slidecast/internal/config"
)

// Clip pairs a still image with an optional audio track and the duration the
// frame is held for. An empty AudioPath produces a silent track so every
// encoded segment carries identical stream layouts for concatenation.
type Clip struct {
	ImagePath string
	AudioPath string
	Duration  float64
}

// Encoder abstracts the ffmpeg calls the pipeline makes, so tests can swap in
// a fake.
type Encoder interface {
	EncodeClip(ctx context.Context, clip Clip, outPath string) error
	Concat(ctx context.Context, listPath, intermediateAudio, outPath string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// FFmpeg is the production encoder.
type FFmpeg struct {
	Video  config.VideoConfig
	Stderr io.Writer
}

// NewFFmpeg returns an encoder bound to the given video settings.
func NewFFmpeg(video config.VideoConfig) *FFmpeg {
	return &FFmpeg{Video: video}
}

// silenceSource generates an empty stereo track for clips whose synthesis
// failed; the output duration flag trims it.
const silenceSource = "anullsrc=channel_layout=stereo:sample_rate=44100"

// EncodeClip renders one still+audio segment to outPath.
func (f *FFmpeg) EncodeClip(_ context.Context, clip Clip, outPath string) error {
	if clip.Duration <= 0 {
		return fmt.Errorf("clip %s has no duration", filepath.Base(clip.ImagePath))
	}

	image := ffmpeg.Input(clip.ImagePath, ImageInputKwArgs(f.Video))

	var audio *ffmpeg.Stream
	if clip.AudioPath != "" {
		audio = ffmpeg.Input(clip.AudioPath)
	} else {
		audio = ffmpeg.Input(silenceSource, ffmpeg.KwArgs{"f": "lavfi"})
	}

	out := ffmpeg.Output(
		[]*ffmpeg.Stream{image, audio},
		outPath,
		ClipOutputKwArgs(f.Video, clip.Duration),
	)
	if err := f.run(out); err != nil {
		return fmt.Errorf("encode clip: %w", err)
	}
	return nil
}

func (f *FFmpeg) run(s *ffmpeg.Stream) error {
	s = s.OverWriteOutput()
	if f.Stderr != nil {
		s = s.WithErrorOutput(f.Stderr)
	}
	return s.Run()
}

// Concat joins the segments listed in the concat-demuxer file into outPath.
// Audio is routed through intermediateAudio first and the intermediate file
// is removed once the final mux completes.
func (f *FFmpeg) Concat(_ context.Context, listPath, intermediateAudio, outPath string) error {
	listKwArgs := ffmpeg.KwArgs{"f": "concat", "safe": 0}

	audioPass := ffmpeg.Input(listPath, listKwArgs).
		Get("a").
		Output(intermediateAudio, ffmpeg.KwArgs{"c:a": "copy"})
	if err := f.run(audioPass); err != nil {
		return fmt.Errorf("concat audio: %w", err)
	}
	defer os.Remove(intermediateAudio)

	video := ffmpeg.Input(listPath, listKwArgs).Get("v")
	audio := ffmpeg.Input(intermediateAudio).Get("a")

	muxPass := ffmpeg.Output(
		[]*ffmpeg.Stream{video, audio},
		outPath,
		ffmpeg.KwArgs{"c:v": "copy", "c:a": "copy", "movflags": "+faststart"},
	)
	if err := f.run(muxPass); err != nil {
		return fmt.Errorf("concat mux: %w", err)
	}
	return nil
}

// ProbeDuration returns the container duration of a media file in seconds.
func (f *FFmpeg) ProbeDuration(ctx context.Context, path string) (float64, error) {
	timeout := 30 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	out, err := ffmpeg.ProbeWithTimeout(path, timeout, nil)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	return ParseProbeDuration(out)
}

// ImageInputKwArgs builds the input arguments that loop a still image as a
// video stream.
func ImageInputKwArgs(video config.VideoConfig) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"loop":      1,
		"framerate": video.FPS,
	}
}

// ClipOutputKwArgs builds the output arguments for a single timed clip.
func ClipOutputKwArgs(video config.VideoConfig, duration float64) ffmpeg.KwArgs {
	codec := strings.TrimSpace(video.Codec)
	if codec == "" {
		codec = "libx264"
	}
	acodec := strings.TrimSpace(video.AudioCodec)
	if acodec == "" {
		acodec = "aac"
	}

	kwargs := ffmpeg.KwArgs{
		"t":       FormatSeconds(duration),
		"c:v":     codec,
		"c:a":     acodec,
		"r":       strconv.Itoa(video.FPS),
		"s":       fmt.Sprintf("%dx%d", video.Width, video.Height),
		"pix_fmt": "yuv420p",
	}
	if codec == "libx264" {
		kwargs["tune"] = "stillimage"
	}
	return kwargs
}

// FormatSeconds renders a duration for ffmpeg flags with millisecond
// precision.
func FormatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
