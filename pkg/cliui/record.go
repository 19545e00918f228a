package cliui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/weelink/dashctl/pkg/logbuffer"
	"github.com/weelink/dashctl/pkg/timefmt"
	"github.com/weelink/dashctl/pkg/utils"
)

// maxFunctionLen bounds the caller column.
const maxFunctionLen = 32

var levelStyles = map[string]lipgloss.Style{
	"TRACE":    DimStyle,
	"DEBUG":    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	"INFO":     lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	"SUCCESS":  lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	"WARNING":  WarnStyle,
	"ERROR":    ErrorStyle,
	"CRITICAL": lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("196")).Bold(true),
}

// LevelStyle returns the style for a log level name. Unknown levels render plain.
func LevelStyle(level string) lipgloss.Style {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "WARN" {
		level = "WARNING"
	}
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// RenderLogRecord formats one dashboard log record as a single line:
// time, level, caller and message. Missing columns are left out. Escape
// sequences in server supplied text are stripped.
func RenderLogRecord(r logbuffer.Record) string {
	parts := make([]string, 0, 4)

	if r.Time != "" {
		parts = append(parts, DimStyle.Render(timefmt.FormatString(r.Time)))
	}
	if r.Level != "" {
		label := fmt.Sprintf("%-8s", strings.ToUpper(r.Level))
		parts = append(parts, LevelStyle(r.Level).Render(label))
	}
	if caller := recordCaller(r); caller != "" {
		parts = append(parts, KeyStyle.Render(caller))
	}
	parts = append(parts, ansi.Strip(r.Message))

	return strings.Join(parts, " ")
}

func recordCaller(r logbuffer.Record) string {
	fn := utils.Truncate(ansi.Strip(r.Function), maxFunctionLen)
	path := ansi.Strip(r.Path)
	switch {
	case path != "" && r.Line > 0:
		if fn != "" {
			return fmt.Sprintf("%s:%s:%d", path, fn, r.Line)
		}
		return fmt.Sprintf("%s:%d", path, r.Line)
	case path != "":
		return path
	default:
		return fn
	}
}
