// Package tools reports availability of the external binaries the renderer
// shells out to.
package tools

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// ToolInfo captures availability and version details for an external tool.
type ToolInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// Names lists the tools a generation run depends on.
func Names() []string {
	return []string{"ffmpeg", "ffprobe"}
}

// Probe discovers tool availability and version information.
func Probe(ctx context.Context) map[string]ToolInfo {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	names := Names()
	result := make(map[string]ToolInfo, len(names))
	for _, name := range names {
		result[name] = probeOne(ctx, name)
	}
	return result
}

func probeOne(ctx context.Context, name string) ToolInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ToolInfo{Name: name, Available: false, Error: "not found"}
		}
		return ToolInfo{Name: name, Available: false, Error: err.Error()}
	}

	version, err := readVersion(ctx, path)
	if err != nil {
		return ToolInfo{Name: name, Path: path, Available: true, Error: err.Error()}
	}

	return ToolInfo{Name: name, Path: path, Version: version, Available: true}
}

func readVersion(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, "-version")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	line := firstLine(strings.TrimSpace(string(output)))
	fields := strings.Fields(line)
	if len(fields) >= 3 {
		return fields[2], nil
	}
	return line, nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
