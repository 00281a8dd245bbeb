package encode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteConcatList writes an ffmpeg concat demuxer list to listPath. It
// verifies each segment path exists before writing.
func WriteConcatList(listPath string, segmentPaths []string) error {
	var missing []string
	for _, p := range segmentPaths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %d segment file(s):\n  %s", len(missing), strings.Join(missing, "\n  "))
	}

	f, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("create concat list: %w", err)
	}
	defer f.Close()

	for _, p := range segmentPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		// Escape single quotes in paths for the concat file format.
		escaped := strings.ReplaceAll(abs, "'", "'\\''")
		fmt.Fprintf(f, "file '%s'\n", escaped)
	}
	return nil
}
