package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/datadiver/diver/pkg/logger"
)

// MarkdownFormatter renders assistant markdown into plain wrapped lines.
// Glamour is run in notty mode because the cell grid applies its own styles;
// any ANSI that leaks through is stripped before display.
type MarkdownFormatter struct {
	width    int
	renderer *glamour.TermRenderer
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func NewMarkdownFormatter(width int) (*MarkdownFormatter, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownFormatter{width: width, renderer: renderer}, nil
}

// Format renders content as markdown, falling back to plain wrapping when
// rendering fails.
func (mf *MarkdownFormatter) Format(content string) []string {
	rendered, err := mf.renderer.Render(content)
	if err != nil {
		logger.WithComponent("tui").Warn("markdown rendering failed", "error", err)
		return WrapText(content, mf.width)
	}

	clean := ansiRegex.ReplaceAllString(rendered, "")
	lines := strings.Split(strings.TrimRight(clean, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// HasMarkdown reports whether content carries markdown structure worth a
// full render pass.
func HasMarkdown(content string) bool {
	return strings.Contains(content, "```") ||
		strings.Contains(content, "**") ||
		regexp.MustCompile(`(?m)^\s*#+\s`).MatchString(content) ||
		regexp.MustCompile(`(?m)^\s*[-*+]\s`).MatchString(content)
}
