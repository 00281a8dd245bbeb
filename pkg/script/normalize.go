package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedSegment is returned when an input item matches none of the
// accepted segment shapes.
var ErrUnrecognizedSegment = errors.New("unrecognized segment shape")

// ErrEmptyScript is returned when the input holds no segments at all.
var ErrEmptyScript = errors.New("script has no segments")

// Normalize converts heterogeneous caller input into a uniform segment list.
// Accepted item shapes:
//
//   - string: the segment text, duration estimated at wordsPerMinute
//   - [text, duration] pair (any two-element slice)
//   - map with a "text" key and optional "duration" / "font_size" keys
//   - Segment or *Segment value
//
// The first item that matches none of these aborts normalization with an
// error wrapping ErrUnrecognizedSegment; nothing is rendered in that case.
// minDuration is the floor applied to estimated durations; explicit durations
// pass through unchanged.
func Normalize(items []any, wordsPerMinute, minDuration float64) ([]Segment, error) {
	if len(items) == 0 {
		return nil, ErrEmptyScript
	}

	segments := make([]Segment, 0, len(items))
	for i, item := range items {
		seg, err := normalizeOne(item, wordsPerMinute, minDuration)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func normalizeOne(item any, wordsPerMinute, minDuration float64) (Segment, error) {
	switch v := item.(type) {
	case string:
		return fromNonEmptyText(v, 0, 0, wordsPerMinute, minDuration)

	case Segment:
		return fromNonEmptyText(v.Text, v.Duration, v.FontSize, wordsPerMinute, minDuration)

	case *Segment:
		if v == nil {
			return Segment{}, ErrUnrecognizedSegment
		}
		return fromNonEmptyText(v.Text, v.Duration, v.FontSize, wordsPerMinute, minDuration)

	case []any:
		if len(v) != 2 {
			return Segment{}, fmt.Errorf("%w: slice of length %d", ErrUnrecognizedSegment, len(v))
		}
		text, ok := v[0].(string)
		if !ok {
			return Segment{}, fmt.Errorf("%w: pair without leading text", ErrUnrecognizedSegment)
		}
		duration, ok := toFloat(v[1])
		if !ok {
			return Segment{}, fmt.Errorf("%w: pair without numeric duration", ErrUnrecognizedSegment)
		}
		return fromNonEmptyText(text, duration, 0, wordsPerMinute, minDuration)

	case map[string]any:
		text, ok := v["text"].(string)
		if !ok {
			return Segment{}, fmt.Errorf("%w: record without text field", ErrUnrecognizedSegment)
		}
		var duration float64
		if raw, present := v["duration"]; present {
			duration, ok = toFloat(raw)
			if !ok {
				return Segment{}, fmt.Errorf("%w: record with non-numeric duration", ErrUnrecognizedSegment)
			}
		}
		fontSize := 0
		if raw, present := v["font_size"]; present {
			f, ok := toFloat(raw)
			if !ok {
				return Segment{}, fmt.Errorf("%w: record with non-numeric font_size", ErrUnrecognizedSegment)
			}
			fontSize = int(f)
		}
		return fromNonEmptyText(text, duration, fontSize, wordsPerMinute, minDuration)

	default:
		return Segment{}, fmt.Errorf("%w: %T", ErrUnrecognizedSegment, item)
	}
}

func fromNonEmptyText(text string, duration float64, fontSize int, wordsPerMinute, minDuration float64) (Segment, error) {
	if strings.TrimSpace(text) == "" {
		return Segment{}, fmt.Errorf("%w: empty text", ErrUnrecognizedSegment)
	}
	seg := FromTimed(text, duration, wordsPerMinute, minDuration)
	seg.FontSize = fontSize
	return seg, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
