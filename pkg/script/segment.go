// Package script models the narration script: the ordered list of text
// segments a slideshow is generated from, and the conversion of caller input
// into that canonical form.
package script

import (
	"math"
	"strings"
)

// DefaultWordsPerMinute is the speaking rate used when the caller supplies a
// non-positive rate.
const DefaultWordsPerMinute = 150

// MinDurationSec is the floor applied to estimated segment durations.
const MinDurationSec = 2.0

// Segment is one narrated unit: its text, how long its slide is held, and an
// optional per-segment font size override. Duration is fixed at construction
// time; the renderer reconciles it against measured audio length without
// mutating the segment.
type Segment struct {
	Text     string  `yaml:"text"`
	Duration float64 `yaml:"duration,omitempty"`
	FontSize int     `yaml:"font_size,omitempty"`
}

// EstimateDuration converts a word count into seconds at the given speaking
// rate, clamped to a floor of MinDurationSec. It always returns a positive
// value.
func EstimateDuration(text string, wordsPerMinute float64) float64 {
	return estimate(text, wordsPerMinute, MinDurationSec)
}

// estimate is EstimateDuration with a caller-supplied floor. The floor only
// applies to estimates; explicit durations never pass through here.
func estimate(text string, wordsPerMinute, minDuration float64) float64 {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	if minDuration <= 0 {
		minDuration = MinDurationSec
	}
	words := len(strings.Fields(text))
	seconds := float64(words) / wordsPerMinute * 60
	return math.Max(seconds, minDuration)
}

// FromText builds a segment from bare text, estimating its duration with the
// given floor.
func FromText(text string, wordsPerMinute, minDuration float64) Segment {
	return Segment{
		Text:     text,
		Duration: estimate(text, wordsPerMinute, minDuration),
	}
}

// FromTimed builds a segment with an explicit duration, kept exactly as
// given. A non-positive duration falls back to the estimate.
func FromTimed(text string, duration, wordsPerMinute, minDuration float64) Segment {
	if duration <= 0 {
		return FromText(text, wordsPerMinute, minDuration)
	}
	return Segment{Text: text, Duration: duration}
}
