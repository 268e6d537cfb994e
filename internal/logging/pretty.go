package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	msgStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	valStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	sepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func shouldPrettyPrint(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}

func levelBadge(level slog.Level) (string, lipgloss.Style) {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch {
	case level <= slog.LevelDebug:
		return "DEBUG", base.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240"))
	case level <= slog.LevelInfo:
		return "INFO", base.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("31"))
	case level <= slog.LevelWarn:
		return "WARN", base.Foreground(lipgloss.Color("234")).Background(lipgloss.Color("214"))
	default:
		return "ERROR", base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160"))
	}
}

// FormatEventANSI renders an event with a coloured level badge followed by
// its fields on the same line.
func FormatEventANSI(event Event) string {
	label, badge := levelBadge(event.Level)
	line := lipgloss.JoinHorizontal(
		lipgloss.Center,
		timeStyle.Render(event.Time.Format("15:04:05.000")),
		" ",
		badge.Render(label),
		" ",
		msgStyle.Render(event.Message),
	)
	if len(event.Fields) == 0 {
		return line + "\n"
	}
	keys := orderedFieldKeys(event.Fields)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, keyStyle.Render(key)+sepStyle.Render("=")+valStyle.Render(formatFieldValue(event.Fields[key])))
	}
	return line + "  " + strings.Join(parts, " ") + "\n"
}
