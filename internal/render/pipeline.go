package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"slidecast/internal/config"
	"slidecast/internal/encode"
	"slidecast/internal/logx"
	"slidecast/internal/tts"
	"slidecast/pkg/script"
)

// ErrNoClips means every segment failed and there was nothing to concatenate.
var ErrNoClips = errors.New("no clips were successfully created")

// Result records the outcome of one segment for progress reporting and the
// run summary.
type Result struct {
	Index    int
	Text     string
	Duration float64
	Silent   bool
	Err      error
}

// ProgressReporter receives per-segment lifecycle events during a run.
type ProgressReporter interface {
	Start(index int, seg script.Segment)
	Complete(res Result)
}

type nopReporter struct{}

func (nopReporter) Start(int, script.Segment) {}
func (nopReporter) Complete(Result)           {}

// Pipeline runs the full script-to-video generation sequence.
type Pipeline struct {
	Config   config.Config
	Synth    tts.Synthesizer
	Encoder  encode.Encoder
	Log      *log.Logger
	Reporter ProgressReporter
	WorkDir  string
}

// Generate normalizes raw script items, renders a clip per segment, and
// concatenates the clips into the output video. Segment failures are logged
// and skipped; the run fails only when the script itself is invalid, when no
// clip could be produced, or when final encoding fails. Temporary files are
// removed regardless of outcome.
func (p *Pipeline) Generate(ctx context.Context, items []any, backgroundPath, outputPath string) ([]Result, error) {
	segments, err := script.Normalize(items, p.Config.Speech.WordsPerMinute, p.Config.Speech.MinDurationSec)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	logger := p.Log
	if logger == nil {
		logger = logx.Discard()
	}
	reporter := p.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	workDir := p.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	registry := &Registry{}
	defer func() {
		for _, cerr := range registry.CleanupAll() {
			logger.Printf("cleanup: %v", cerr)
		}
	}()

	if _, err := os.Stat(backgroundPath); err != nil {
		logger.Printf("background %s not found, generating gradient", backgroundPath)
		if err := WriteGradientBackground(backgroundPath, p.Config.Video.Width, p.Config.Video.Height); err != nil {
			return nil, fmt.Errorf("generate background: %w", err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	renderer := &Renderer{
		Config:   p.Config,
		Synth:    p.Synth,
		Encoder:  p.Encoder,
		Log:      logger,
		WorkDir:  workDir,
		Registry: registry,
	}

	results := make([]Result, 0, len(segments))
	clips := make([]Clip, 0, len(segments))
	for i, seg := range segments {
		index := i + 1
		reporter.Start(index, seg)

		clip, err := renderer.RenderSegment(ctx, seg, index, backgroundPath)
		res := Result{Index: index, Text: seg.Text}
		if err != nil {
			logger.Printf("segment %d failed: %v", index, err)
			res.Err = err
		} else {
			res.Duration = clip.Media.Duration
			res.Silent = clip.Silent
			clips = append(clips, clip)
		}
		results = append(results, res)
		reporter.Complete(res)
	}

	if len(clips) == 0 {
		return results, ErrNoClips
	}

	segmentPaths := make([]string, 0, len(clips))
	for _, clip := range clips {
		segPath := filepath.Join(workDir, fmt.Sprintf("clip_%03d.mp4", clip.Index))
		registry.Add(segPath)
		if err := p.Encoder.EncodeClip(ctx, clip.Media, segPath); err != nil {
			logger.Printf("segment %d: encode clip: %v", clip.Index, err)
			for ri := range results {
				if results[ri].Index == clip.Index {
					results[ri].Err = fmt.Errorf("encode clip: %w", err)
				}
			}
			continue
		}
		segmentPaths = append(segmentPaths, segPath)
	}
	if len(segmentPaths) == 0 {
		return results, ErrNoClips
	}

	listPath := filepath.Join(workDir, "concat.txt")
	registry.Add(listPath)
	if err := encode.WriteConcatList(listPath, segmentPaths); err != nil {
		return results, fmt.Errorf("write concat list: %w", err)
	}

	intermediateAudio := filepath.Join(workDir, "temp-audio.m4a")
	registry.Add(intermediateAudio)
	if err := p.Encoder.Concat(ctx, listPath, intermediateAudio, outputPath); err != nil {
		return results, fmt.Errorf("encode video: %w", err)
	}

	logger.Printf("wrote %s from %d clips", outputPath, len(segmentPaths))
	return results, nil
}
