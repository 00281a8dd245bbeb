package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"slidecast/internal/tools"
	"slidecast/internal/tui"
)

var checkStrict bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check external tool availability",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when required tools are missing")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	var sw *tui.StatusWriter
	if !outputJSON {
		sw = tui.NewStatusWriter(cmd.ErrOrStderr())
		sw.Update("probing tools")
	}
	infos := tools.Probe(cmd.Context())
	if sw != nil {
		sw.Stop()
	}

	if checkStrict {
		if err := ensureStrict(infos); err != nil {
			return err
		}
	}

	if outputJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCheckResult(cmd, infos)
	return nil
}

func printCheckResult(cmd *cobra.Command, infos map[string]tools.ToolInfo) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	names := make([]string, 0, len(infos))
	for name := range infos {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := infos[name]
		if info.Available {
			headline := green.Render("✓") + " " + bold.Render(info.Name)
			if info.Version != "" {
				headline += " v" + info.Version
			}
			cmd.Println(headline)
			if info.Path != "" {
				cmd.Println(faint.Render("  " + info.Path))
			}
		} else {
			headline := red.Render("✗") + " " + bold.Render(info.Name)
			if info.Error != "" {
				headline += red.Render(" (" + info.Error + ")")
			}
			cmd.Println(headline)
		}
		cmd.Println()
	}
}

func ensureStrict(infos map[string]tools.ToolInfo) error {
	var failures []string
	for _, name := range tools.Names() {
		info := infos[name]
		if info.Available {
			continue
		}
		msg := name
		if info.Error != "" {
			msg = fmt.Sprintf("%s (%s)", name, info.Error)
		}
		failures = append(failures, msg)
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("tool check failed: " + strings.Join(failures, ", "))
}
