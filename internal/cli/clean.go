package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slidecast/internal/paths"
)

var cleanDryRun bool

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove derived artifacts from the project",
	}

	cmd.PersistentFlags().BoolVar(&cleanDryRun, "dry-run", false, "List what would be removed without deleting")

	cmd.AddCommand(newCleanWorkCmd())
	cmd.AddCommand(newCleanLogsCmd())
	cmd.AddCommand(newCleanAllCmd())

	return cmd
}

func newCleanWorkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "work",
		Short: "Remove leftover intermediate files",
		RunE:  runCleanWork,
	}
}

func newCleanLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Remove all log files",
		RunE:  runCleanLogs,
	}
}

func newCleanAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Remove intermediate files and logs",
		RunE:  runCleanAll,
	}
}

type cleanResult struct {
	Removed    int   `json:"removed"`
	FreedBytes int64 `json:"freed_bytes"`
	Skipped    int   `json:"skipped"`
	DryRun     bool  `json:"dry_run"`
}

func runCleanWork(cmd *cobra.Command, _ []string) error {
	pp, err := resolveCleanPaths()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}

	removeDirFiles(pp.WorkDir, out, &result)

	return writeCleanResult(out, "work", result)
}

func runCleanLogs(cmd *cobra.Command, _ []string) error {
	pp, err := resolveCleanPaths()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}

	removeDirFiles(pp.LogsDir, out, &result)

	return writeCleanResult(out, "logs", result)
}

func runCleanAll(cmd *cobra.Command, _ []string) error {
	pp, err := resolveCleanPaths()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}

	removeDirFiles(pp.WorkDir, out, &result)
	removeDirFiles(pp.LogsDir, out, &result)

	return writeCleanResult(out, "all", result)
}

func resolveCleanPaths() (paths.ProjectPaths, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return pp, err
	}
	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return pp, fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return pp, fmt.Errorf("project directory does not exist: %s", pp.Root)
	}
	return pp, nil
}

func removeDirFiles(dir string, out io.Writer, result *cleanResult) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		removeFileEntry(filepath.Join(dir, entry.Name()), out, result)
	}
}

func removeFileEntry(path string, out io.Writer, result *cleanResult) {
	info, err := os.Stat(path)
	if err != nil {
		result.Skipped++
		return
	}
	size := info.Size()

	if cleanDryRun {
		fmt.Fprintf(out, "would remove %s (%s)\n", path, formatSize(size))
		result.Removed++
		result.FreedBytes += size
		return
	}

	if err := os.Remove(path); err != nil {
		if !outputJSON {
			fmt.Fprintf(out, "error removing %s: %v\n", path, err)
		}
		result.Skipped++
		return
	}

	result.Removed++
	result.FreedBytes += size
	if !outputJSON {
		fmt.Fprintf(out, "removed %s (%s)\n", path, formatSize(size))
	}
}

func writeCleanResult(out io.Writer, label string, result cleanResult) error {
	if outputJSON {
		return json.NewEncoder(out).Encode(result)
	}

	action := "complete"
	if cleanDryRun {
		action = "(dry run)"
	}
	fmt.Fprintf(out, "\nClean %s %s: %d removed, %s freed, %d skipped\n",
		label, action, result.Removed, formatSize(result.FreedBytes), result.Skipped)
	return nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
