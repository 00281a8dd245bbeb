package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"slidecast/internal/render"
	"slidecast/pkg/script"
)

// SegmentColumns returns the column layout used for generation progress.
func SegmentColumns() []Column {
	return []Column{
		{Header: "#", Width: 3},
		{Header: "TEXT", Width: 44},
		{Header: "DURATION", Width: 8},
		{Header: "STATUS", Width: 11},
	}
}

// SegmentKey returns the row key for a 1-based segment index.
func SegmentKey(index int) string {
	return fmt.Sprintf("seg-%03d", index)
}

// SegmentRow returns the initial row fields for a segment.
func SegmentRow(index int, seg script.Segment) []string {
	return []string{
		fmt.Sprintf("%d", index),
		seg.Text,
		fmt.Sprintf("%.1fs", seg.Duration),
		"pending",
	}
}

// SegmentReporter adapts bubbletea message sending to the
// render.ProgressReporter interface.
type SegmentReporter struct {
	send func(tea.Msg)
}

// NewSegmentReporter constructs a reporter that publishes row updates
// through send.
func NewSegmentReporter(send func(tea.Msg)) *SegmentReporter {
	return &SegmentReporter{send: send}
}

// Start implements render.ProgressReporter.
func (r *SegmentReporter) Start(index int, _ script.Segment) {
	r.send(RowUpdateMsg{
		Key:    SegmentKey(index),
		Fields: map[string]string{"STATUS": "speaking"},
	})
}

// Complete implements render.ProgressReporter.
func (r *SegmentReporter) Complete(res render.Result) {
	status := "rendered"
	switch {
	case res.Err != nil:
		status = "error"
	case res.Silent:
		status = "silent"
	}

	fields := map[string]string{"STATUS": status}
	if res.Err == nil {
		fields["DURATION"] = fmt.Sprintf("%.1fs", res.Duration)
	}
	r.send(RowUpdateMsg{Key: SegmentKey(res.Index), Fields: fields})
}
