package headless

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/sse"
)

const timeRound = 10 * time.Millisecond

// Styles for the status lines around the streamed prose. Response content
// itself is printed unstyled so it pipes cleanly. lipgloss degrades these to
// plain text when stdout is not a terminal.
var (
	retrievalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Output handles console output for headless mode.
type Output struct {
	w io.Writer
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Delta prints a content fragment without a trailing newline so fragments
// join into continuous prose.
func (o *Output) Delta(text string) {
	fmt.Fprint(o.w, text)
}

// Line prints a full line.
func (o *Output) Line(text string) {
	fmt.Fprintln(o.w, text)
}

// Newline terminates the streamed response body.
func (o *Output) Newline() {
	fmt.Fprintln(o.w)
}

// Retrieval prints one retrieval progress update as a bracketed status line.
func (o *Output) Retrieval(ev sse.Event) {
	var line string
	switch ev.Type {
	case sse.TypeRetrievalStep:
		line = fmt.Sprintf("[retrieval] %s %s", ev.Step, ev.Message)
	case sse.TypeRetrievalSummary:
		line = fmt.Sprintf("[retrieval] %d results for %q", ev.Results, ev.Query)
	default:
		line = fmt.Sprintf("[retrieval] %s", ev.Message)
	}
	fmt.Fprintf(o.w, "\n%s\n", retrievalStyle.Render(line))
}

// Sources prints the cited sources with their relevance labels.
func (o *Output) Sources(sources []sse.Source) {
	fmt.Fprintln(o.w, "\nSources:")
	for _, src := range sources {
		name := src.DocumentTitle
		if name == "" {
			name = src.Filename
		}
		fmt.Fprintf(o.w, "  - %s (%s)\n",
			sourceStyle.Render(name),
			matchStyle.Render(chat.MatchLabel(src.RelevanceScore)))
	}
}

// Summary prints the timing and token line after a completed response.
func (o *Output) Summary(meta chat.Metadata) {
	line := fmt.Sprintf("[%d tokens in %s]", meta.TokenCount, meta.ProcessingTime.Round(timeRound))
	fmt.Fprintf(o.w, "\n%s\n", summaryStyle.Render(line))
}
