package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeShapes(t *testing.T) {
	items := []any{
		"Just a plain string segment",
		[]any{"Timed pair", 3.5},
		map[string]any{"text": "Record segment", "duration": 4, "font_size": 72},
		Segment{Text: "Typed segment", Duration: 6},
	}

	segments, err := Normalize(items, 150, MinDurationSec)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("got %d segments, want 4", len(segments))
	}
	if segments[0].Duration != 2.0 {
		t.Errorf("string segment duration = %v, want estimated 2.0", segments[0].Duration)
	}
	if segments[1].Duration != 3.5 {
		t.Errorf("pair duration = %v, want 3.5", segments[1].Duration)
	}
	if segments[2].Duration != 4 || segments[2].FontSize != 72 {
		t.Errorf("record segment = %+v", segments[2])
	}
	if segments[3].Duration != 6 {
		t.Errorf("typed segment duration = %v, want 6", segments[3].Duration)
	}
}

func TestNormalizeRejectsUnknownShape(t *testing.T) {
	_, err := Normalize([]any{"fine", 42}, 150, MinDurationSec)
	if !errors.Is(err, ErrUnrecognizedSegment) {
		t.Fatalf("err = %v, want ErrUnrecognizedSegment", err)
	}
}

func TestNormalizeRejectsEmptyText(t *testing.T) {
	_, err := Normalize([]any{"   "}, 150, MinDurationSec)
	if !errors.Is(err, ErrUnrecognizedSegment) {
		t.Fatalf("err = %v, want ErrUnrecognizedSegment", err)
	}
}

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	if _, err := Normalize(nil, 150, MinDurationSec); !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("err = %v, want ErrEmptyScript", err)
	}
}

func TestNormalizeRejectsBadPair(t *testing.T) {
	cases := [][]any{
		{[]any{"only one"}},
		{[]any{3.0, "reversed"}},
		{[]any{"text", "not a number"}},
	}
	for _, items := range cases {
		if _, err := Normalize(items, 150, MinDurationSec); !errors.Is(err, ErrUnrecognizedSegment) {
			t.Errorf("items %v: err = %v, want ErrUnrecognizedSegment", items, err)
		}
	}
}

func TestLoadYAMLScript(t *testing.T) {
	contents := `- Welcome to this tutorial.
- ["First we cover the basics.", 3]
- text: Then we go deeper.
  duration: 5
  font_size: 48
`
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	segments, err := Load(path, 150, MinDurationSec)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	if segments[1].Duration != 3 {
		t.Errorf("pair duration = %v, want 3", segments[1].Duration)
	}
	if segments[2].FontSize != 48 {
		t.Errorf("font size = %d, want 48", segments[2].FontSize)
	}
}

func TestLoadEmptyScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path, 150, MinDurationSec); !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("err = %v, want ErrEmptyScript", err)
	}
}
