package cli

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"slidecast/internal/config"
	"slidecast/internal/encode"
	"slidecast/internal/logx"
	"slidecast/internal/paths"
	"slidecast/internal/render"
	"slidecast/internal/tts"
	"slidecast/internal/tui"
	"slidecast/pkg/script"
)

var (
	generateScript     string
	generateBackground string
	generateOut        string
	generateNoProgress bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the narrated slideshow video",
		RunE:  runGenerate,
	}

	cmd.Flags().StringVar(&generateScript, "script", "", "Path to the script file (default: script.yaml)")
	cmd.Flags().StringVar(&generateBackground, "background", "", "Path to the background image (default: background.jpg, generated if missing)")
	cmd.Flags().StringVar(&generateOut, "out", "", "Path to the output video (default: slideshow.mp4)")
	cmd.Flags().BoolVar(&generateNoProgress, "no-progress", false, "Disable the interactive progress display")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	scriptPath := generateScript
	if scriptPath == "" {
		scriptPath = pp.ScriptFile
	}
	backgroundPath := generateBackground
	if backgroundPath == "" {
		backgroundPath = pp.BackgroundFile
	}
	outPath := generateOut
	if outPath == "" {
		outPath = pp.OutputFile
	}

	exists, err := paths.FileExists(scriptPath)
	if err != nil {
		return fmt.Errorf("check script: %w", err)
	}
	if !exists {
		return fmt.Errorf("script file not found: %s (run `slidecast init` first)", scriptPath)
	}

	if err := pp.EnsureMetaDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("slidecast generate: project=%s script=%s out=%s", pp.Root, scriptPath, outPath)

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	items, err := script.LoadRaw(scriptPath)
	if err != nil {
		return err
	}
	segments, err := script.Normalize(items, cfg.Speech.WordsPerMinute, cfg.Speech.MinDurationSec)
	if err != nil {
		return err
	}

	pipeline := &render.Pipeline{
		Config:  cfg,
		Synth:   tts.NewGoogleSynthesizer(),
		Encoder: &encode.FFmpeg{Video: cfg.Video},
		Log:     logger,
		WorkDir: pp.WorkDir,
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var results []render.Result
	var runErr error

	switch tui.DetectMode(out, generateNoProgress, outputJSON) {
	case tui.ModeTUI:
		model := tui.NewProgressModel("generate", tui.SegmentColumns())
		for i, seg := range segments {
			model.AddRow(tui.SegmentKey(i+1), tui.SegmentRow(i+1, seg))
		}
		err := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
			pipeline.Reporter = tui.NewSegmentReporter(send)
			results, runErr = pipeline.Generate(ctx, items, backgroundPath, outPath)
		})
		if err != nil {
			return err
		}
	case tui.ModeJSON:
		results, runErr = pipeline.Generate(ctx, items, backgroundPath, outPath)
	default:
		pipeline.Reporter = &plainReporter{out: out, total: len(segments)}
		results, runErr = pipeline.Generate(ctx, items, backgroundPath, outPath)
	}

	if outputJSON {
		if err := writeGenerateJSON(out, outPath, results, runErr); err != nil {
			return err
		}
		return runErr
	}

	if runErr != nil {
		return runErr
	}

	printGenerateSummary(out, outPath, results)
	return nil
}

// plainReporter writes one line per finished segment for non-interactive runs.
type plainReporter struct {
	out   io.Writer
	total int
}

func (r *plainReporter) Start(int, script.Segment) {}

func (r *plainReporter) Complete(res render.Result) {
	switch {
	case res.Err != nil:
		fmt.Fprintf(r.out, "[%d/%d] error: %v\n", res.Index, r.total, res.Err)
	case res.Silent:
		fmt.Fprintf(r.out, "[%d/%d] silent (%.1fs) %s\n", res.Index, r.total, res.Duration, res.Text)
	default:
		fmt.Fprintf(r.out, "[%d/%d] rendered (%.1fs) %s\n", res.Index, r.total, res.Duration, res.Text)
	}
}

func printGenerateSummary(out io.Writer, outPath string, results []render.Result) {
	var silent, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		} else if res.Silent {
			silent++
		}
	}

	fmt.Fprintf(out, "Wrote %s (%d clips", outPath, len(results)-failed)
	if silent > 0 {
		fmt.Fprintf(out, ", %d silent", silent)
	}
	if failed > 0 {
		fmt.Fprintf(out, ", %d failed", failed)
	}
	fmt.Fprintln(out, ")")
}

func writeGenerateJSON(out io.Writer, outPath string, results []render.Result, runErr error) error {
	type segmentResult struct {
		Index    int     `json:"index"`
		Text     string  `json:"text"`
		Duration float64 `json:"duration_sec"`
		Silent   bool    `json:"silent"`
		Error    string  `json:"error,omitempty"`
	}

	payload := struct {
		Output   string          `json:"output"`
		Segments []segmentResult `json:"segments"`
		Error    string          `json:"error,omitempty"`
	}{Output: outPath}

	for _, res := range results {
		sr := segmentResult{
			Index:    res.Index,
			Text:     res.Text,
			Duration: res.Duration,
			Silent:   res.Silent,
		}
		if res.Err != nil {
			sr.Error = res.Err.Error()
		}
		payload.Segments = append(payload.Segments, sr)
	}
	if runErr != nil {
		payload.Error = runErr.Error()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
