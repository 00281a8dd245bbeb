package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how generation progress should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea to redraw the segment table in place.
	ModeTUI OutputMode = iota
	// ModePlain prints a line per finished segment, suitable for pipes.
	ModePlain
	// ModeJSON suppresses progress; the command emits a JSON summary instead.
	ModeJSON
)

// DetectMode determines the output mode for the given writer. Anything that
// is not an interactive terminal gets plain output.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress {
		return ModePlain
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
