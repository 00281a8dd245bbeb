package tui

// RowUpdateMsg updates a segment row's fields by column name, e.g.
// {"STATUS": "rendered", "DURATION": "3.5s"}.
type RowUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg signals that the generation run has finished.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
