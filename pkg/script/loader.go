package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRaw reads a YAML script file and returns its entries without
// normalizing them. The file is a list whose entries may be plain strings,
// [text, duration] pairs, or mappings with text / duration / font_size keys.
func LoadRaw(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("script file is empty")
	}

	var items []any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	// yaml.Unmarshal returns a nil slice for comment-only files.
	if len(items) == 0 {
		return nil, ErrEmptyScript
	}

	return items, nil
}

// Load reads a YAML script file and returns normalized segments. It accepts
// the same entry shapes Normalize does.
func Load(path string, wordsPerMinute, minDuration float64) ([]Segment, error) {
	items, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}
	return Normalize(items, wordsPerMinute, minDuration)
}
