package encode

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseProbeDuration extracts format.duration from ffprobe JSON output.
func ParseProbeDuration(probeJSON string) (float64, error) {
	var payload struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &payload); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}
	if payload.Format.Duration == "" {
		return 0, fmt.Errorf("probe output has no duration")
	}
	duration, err := strconv.ParseFloat(payload.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", payload.Format.Duration, err)
	}
	return duration, nil
}
