package ui

import (
	"strings"
)

// setLogContent fills the log viewport and keeps it pinned to the newest line.
func (m *Model) setLogContent(msg logsMsg) {
	styles := m.theme.Styles()
	if msg.err != nil {
		m.logView.SetContent(styles.DangerText.Render("log unavailable: " + msg.err.Error()))
		return
	}
	if len(msg.entries) == 0 {
		m.logView.SetContent(styles.MutedText.Render("No log entries in " + m.logFile))
		return
	}

	lines := make([]string, 0, len(msg.entries))
	for _, e := range msg.entries {
		var b strings.Builder
		if e.Time != "" {
			b.WriteString(styles.FaintText.Render(shortTime(e.Time)))
			b.WriteString(" ")
		}
		if e.Severity != "" {
			b.WriteString(styles.SeverityStyle(e.Severity).Render(cell(strings.ToUpper(e.Severity), 7)))
			b.WriteString(" ")
		}
		b.WriteString(styles.Text.Render(e.Message))
		if len(e.Fields) > 0 {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(strings.Join(e.Fields, " ")))
		}
		lines = append(lines, b.String())
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	m.logView.GotoBottom()
}

// shortTime keeps the clock part of an RFC 3339 timestamp.
func shortTime(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}
