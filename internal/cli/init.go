package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slidecast/internal/config"
	"slidecast/internal/logx"
	"slidecast/internal/paths"
)

const scriptYAML = `# Each entry becomes one narrated slide. Entries may be:
#   - a plain string (duration estimated from word count)
#   - a [text, duration] pair
#   - a mapping with text, duration, and font_size keys
- Welcome to the presentation.
- [This slide stays up for eight seconds., 8]
- text: A closing slide with smaller text.
  font_size: 48
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a slidecast project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
}

func resolveInitDir(projectFlag string, args []string) (string, error) {
	if projectFlag != "" {
		return projectFlag, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if len(args) > 0 {
		if args[0] == "." {
			return cwd, nil
		}
		return filepath.Join(cwd, args[0]), nil
	}

	return nextAvailableDir(cwd)
}

func nextAvailableDir(base string) (string, error) {
	for i := 1; ; i++ {
		candidate := filepath.Join(base, fmt.Sprintf("slidecast-%d", i))
		exists, err := paths.DirExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveInitDir(projectDir, args)
	if err != nil {
		return err
	}

	pp, err := paths.Resolve(dir)
	if err != nil {
		return err
	}

	if err := pp.EnsureRoot(); err != nil {
		return err
	}
	if err := pp.EnsureMetaDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("slidecast init: project=%s", pp.Root)

	created := make([]string, 0, 2)

	if err := ensureScript(pp, &created, logger); err != nil {
		return err
	}
	if err := ensureConfig(pp, &created, logger); err != nil {
		return err
	}

	if len(created) == 0 {
		cmd.Printf("Project already initialized at %s\n", pp.Root)
		return nil
	}

	cmd.Printf("Initialized project at %s\n", pp.Root)
	for _, entry := range created {
		cmd.Printf("  created %s\n", entry)
	}

	return nil
}

func ensureScript(pp paths.ProjectPaths, created *[]string, logger Logger) error {
	exists, err := paths.FileExists(pp.ScriptFile)
	if err != nil {
		return fmt.Errorf("check script: %w", err)
	}
	if exists {
		logger.Printf("script exists: %s", pp.ScriptFile)
		return nil
	}

	if err := os.WriteFile(pp.ScriptFile, []byte(scriptYAML), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	logger.Printf("created script: %s", pp.ScriptFile)
	*created = append(*created, filepath.Base(pp.ScriptFile))
	return nil
}

func ensureConfig(pp paths.ProjectPaths, created *[]string, logger Logger) error {
	exists, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}
	if exists {
		logger.Printf("config exists: %s", pp.ConfigFile)
		return nil
	}

	cfg := config.Default()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(pp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Printf("created config: %s", pp.ConfigFile)
	*created = append(*created, filepath.Base(pp.ConfigFile))
	return nil
}

// Logger keeps the subset of log.Logger used locally, enabling easy testing.
type Logger interface {
	Printf(format string, v ...any)
}
