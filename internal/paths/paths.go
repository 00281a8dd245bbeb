package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectPaths captures canonical locations for a slidecast project.
type ProjectPaths struct {
	Root           string
	ConfigFile     string
	ScriptFile     string
	BackgroundFile string
	OutputFile     string
	WorkDir        string
	LogsDir        string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	return ProjectPaths{
		Root:           root,
		ConfigFile:     filepath.Join(root, "slidecast.yaml"),
		ScriptFile:     filepath.Join(root, "script.yaml"),
		BackgroundFile: filepath.Join(root, "background.jpg"),
		OutputFile:     filepath.Join(root, "slideshow.mp4"),
		WorkDir:        filepath.Join(root, "work"),
		LogsDir:        filepath.Join(root, "logs"),
	}
}

// EnsureRoot makes sure the project root exists on disk.
func (p ProjectPaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	return nil
}

// EnsureMetaDirs creates the work and logs directories.
func (p ProjectPaths) EnsureMetaDirs() error {
	for _, dir := range []string{p.WorkDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
