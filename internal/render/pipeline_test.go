package render

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"slidecast/internal/config"
	"slidecast/internal/encode"
	"slidecast/internal/tts"
	"slidecast/pkg/script"
)

type fakeSynth struct {
	fail  bool
	texts []string
}

func (s *fakeSynth) Synthesize(_ context.Context, req tts.Request, outPath string) error {
	s.texts = append(s.texts, req.Text)
	if s.fail {
		return errors.New("synth unavailable")
	}
	return os.WriteFile(outPath, []byte("mp3"), 0o644)
}

type fakeEncoder struct {
	clips      []encode.Clip
	probe      float64
	probeErr   error
	encodeErr  error
	concatErr  error
	concatDone bool
}

func (e *fakeEncoder) EncodeClip(_ context.Context, clip encode.Clip, outPath string) error {
	if e.encodeErr != nil {
		return e.encodeErr
	}
	e.clips = append(e.clips, clip)
	return os.WriteFile(outPath, []byte("mp4"), 0o644)
}

func (e *fakeEncoder) Concat(_ context.Context, listPath, intermediateAudio, outPath string) error {
	if e.concatErr != nil {
		return e.concatErr
	}
	e.concatDone = true
	return os.WriteFile(outPath, []byte("mp4"), 0o644)
}

func (e *fakeEncoder) ProbeDuration(context.Context, string) (float64, error) {
	return e.probe, e.probeErr
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Video.Width = 320
	cfg.Video.Height = 180
	return cfg
}

func writeBackground(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bg.png")
	if err := WriteGradientBackground(path, 320, 180); err != nil {
		t.Fatalf("write background: %v", err)
	}
	return path
}

func newPipeline(t *testing.T, synth *fakeSynth, enc *fakeEncoder) (*Pipeline, string) {
	t.Helper()
	workDir := t.TempDir()
	return &Pipeline{
		Config:  testConfig(),
		Synth:   synth,
		Encoder: enc,
		WorkDir: workDir,
	}, workDir
}

func TestGeneratePreservesSegmentOrder(t *testing.T) {
	synth := &fakeSynth{}
	enc := &fakeEncoder{probe: 5.0}
	p, _ := newPipeline(t, synth, enc)

	items := []any{"first slide", "second slide", "third slide"}
	out := filepath.Join(t.TempDir(), "show.mp4")
	results, err := p.Generate(context.Background(), items, writeBackground(t), out)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Index != i+1 {
			t.Errorf("result %d has index %d", i, res.Index)
		}
		if res.Err != nil {
			t.Errorf("result %d failed: %v", i, res.Err)
		}
		if res.Duration != 5.0 {
			t.Errorf("result %d duration = %v, want probed 5.0", i, res.Duration)
		}
	}
	if len(synth.texts) != 3 || synth.texts[0] != "first slide" || synth.texts[2] != "third slide" {
		t.Errorf("synthesis order = %v", synth.texts)
	}
	if len(enc.clips) != 3 {
		t.Fatalf("encoded %d clips, want 3", len(enc.clips))
	}
	if !enc.concatDone {
		t.Error("concat was not invoked")
	}
}

func TestGenerateSurvivesTotalSynthesisFailure(t *testing.T) {
	synth := &fakeSynth{fail: true}
	enc := &fakeEncoder{}
	p, _ := newPipeline(t, synth, enc)

	items := []any{"one", "two"}
	out := filepath.Join(t.TempDir(), "show.mp4")
	results, err := p.Generate(context.Background(), items, writeBackground(t), out)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, res := range results {
		if !res.Silent {
			t.Errorf("segment %d should be silent", res.Index)
		}
		if res.Err != nil {
			t.Errorf("segment %d failed: %v", res.Index, res.Err)
		}
	}
	for _, clip := range enc.clips {
		if clip.AudioPath != "" {
			t.Errorf("silent clip carries audio path %s", clip.AudioPath)
		}
	}
	if !enc.concatDone {
		t.Error("concat was not invoked")
	}
}

func TestGenerateKeepsSubFloorExplicitDurations(t *testing.T) {
	synth := &fakeSynth{fail: true}
	enc := &fakeEncoder{}
	p, _ := newPipeline(t, synth, enc)

	items := []any{[]any{"quick caption", 1.0}}
	out := filepath.Join(t.TempDir(), "show.mp4")
	results, err := p.Generate(context.Background(), items, writeBackground(t), out)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !results[0].Silent {
		t.Error("failed synthesis should yield a silent clip")
	}
	if results[0].Duration != 1.0 {
		t.Errorf("duration = %v, want explicit 1.0", results[0].Duration)
	}
	if len(enc.clips) != 1 || enc.clips[0].Duration != 1.0 {
		t.Errorf("encoded clips = %+v, want one 1.0s clip", enc.clips)
	}
}

func TestGenerateFallsBackToSegmentDurationOnProbeError(t *testing.T) {
	synth := &fakeSynth{}
	enc := &fakeEncoder{probeErr: errors.New("ffprobe missing")}
	p, _ := newPipeline(t, synth, enc)

	out := filepath.Join(t.TempDir(), "show.mp4")
	results, err := p.Generate(context.Background(), []any{"hi"}, writeBackground(t), out)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if results[0].Duration != script.MinDurationSec {
		t.Errorf("duration = %v, want floor %v", results[0].Duration, script.MinDurationSec)
	}
	if results[0].Silent {
		t.Error("probe failure should not silence the clip")
	}
}

func TestGenerateRejectsEmptyScript(t *testing.T) {
	p, _ := newPipeline(t, &fakeSynth{}, &fakeEncoder{})
	out := filepath.Join(t.TempDir(), "show.mp4")
	_, err := p.Generate(context.Background(), nil, writeBackground(t), out)
	if !errors.Is(err, script.ErrEmptyScript) {
		t.Fatalf("err = %v, want ErrEmptyScript", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output file should not exist after script rejection")
	}
}

func TestGenerateRejectsMalformedSegment(t *testing.T) {
	enc := &fakeEncoder{}
	p, _ := newPipeline(t, &fakeSynth{}, enc)
	out := filepath.Join(t.TempDir(), "show.mp4")
	_, err := p.Generate(context.Background(), []any{"ok", 42}, writeBackground(t), out)
	if !errors.Is(err, script.ErrUnrecognizedSegment) {
		t.Fatalf("err = %v, want ErrUnrecognizedSegment", err)
	}
	if len(enc.clips) != 0 {
		t.Error("no clips should be encoded for a malformed script")
	}
}

func TestGenerateFailsWhenEverySegmentFails(t *testing.T) {
	badBackground := filepath.Join(t.TempDir(), "bg.png")
	if err := os.WriteFile(badBackground, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, _ := newPipeline(t, &fakeSynth{}, &fakeEncoder{})
	out := filepath.Join(t.TempDir(), "show.mp4")
	results, err := p.Generate(context.Background(), []any{"a", "b"}, badBackground, out)
	if !errors.Is(err, ErrNoClips) {
		t.Fatalf("err = %v, want ErrNoClips", err)
	}
	for _, res := range results {
		if res.Err == nil {
			t.Errorf("segment %d should carry an error", res.Index)
		}
	}
}

func TestGenerateWritesGradientWhenBackgroundMissing(t *testing.T) {
	p, _ := newPipeline(t, &fakeSynth{}, &fakeEncoder{})
	background := filepath.Join(t.TempDir(), "bg.jpg")
	out := filepath.Join(t.TempDir(), "show.mp4")
	if _, err := p.Generate(context.Background(), []any{"hello"}, background, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := os.Stat(background); err != nil {
		t.Errorf("gradient background was not written: %v", err)
	}
}

func TestGenerateRemovesTempFiles(t *testing.T) {
	runs := []struct {
		name  string
		setup func(enc *fakeEncoder)
	}{
		{name: "success", setup: func(*fakeEncoder) {}},
		{name: "concat failure", setup: func(enc *fakeEncoder) { enc.concatErr = errors.New("mux failed") }},
	}
	for _, run := range runs {
		t.Run(run.name, func(t *testing.T) {
			enc := &fakeEncoder{}
			run.setup(enc)
			p, workDir := newPipeline(t, &fakeSynth{}, enc)

			out := filepath.Join(t.TempDir(), "show.mp4")
			p.Generate(context.Background(), []any{"hello", "world"}, writeBackground(t), out)

			entries, err := os.ReadDir(workDir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				names := make([]string, 0, len(entries))
				for _, e := range entries {
					names = append(names, e.Name())
				}
				t.Errorf("work dir not empty after run: %v", names)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	c := parseColor("#ff8000", white, 0.5)
	if c.R != 255 || c.G != 128 || c.B != 0 {
		t.Errorf("rgb = %d,%d,%d", c.R, c.G, c.B)
	}
	if c.A != 128 {
		t.Errorf("alpha = %d, want 128", c.A)
	}

	if fb := parseColor("nonsense", white, 1); fb != white {
		t.Errorf("fallback not used: %v", fb)
	}
}
