package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/sse"
)

const timeRound = 10 * time.Millisecond

// styledLine is one display row with its style, produced by message layout
// and consumed by the draw pass.
type styledLine struct {
	text  string
	style tcell.Style
}

// RenderMessages draws the conversation into area. The last streaming
// message gets a block cursor appended so active generation is visible even
// between deltas. Completed assistant messages with markdown structure go
// through the formatter; streaming content is wrapped raw to avoid
// re-rendering partial markup on every delta.
func RenderMessages(screen tcell.Screen, display MessageDisplay, formatter *MarkdownFormatter, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}

	lines := buildMessageLines(display.Messages, formatter, area.Width)

	scroll := display.Scroll
	if display.AutoScroll && len(lines) > area.Height {
		scroll = len(lines) - area.Height
	}

	visible, _ := calculateVisibleStyled(lines, area.Height, scroll)

	clearArea(screen, area)
	for i, line := range visible {
		renderTextWithLimit(screen, area.X, area.Y+i, area.Width, line.text, line.style)
	}
}

func buildMessageLines(messages []*chat.Message, formatter *MarkdownFormatter, width int) []styledLine {
	var lines []styledLine

	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, styledLine{})
		}

		style := roleStyle(msg)
		prefix := roleLabel(msg) + " "

		content := msg.Content
		if msg.Streaming {
			content += "█"
		}

		var wrapped []string
		if formatter != nil && msg.IsAssistant() && !msg.Streaming && HasMarkdown(content) {
			wrapped = formatter.Format(content)
		} else {
			wrapped = WrapText(content, width-len(prefix))
		}
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		lines = append(lines, styledLine{text: prefix + wrapped[0], style: style})
		indent := strings.Repeat(" ", len(prefix))
		for _, w := range wrapped[1:] {
			lines = append(lines, styledLine{text: indent + w, style: style})
		}

		for _, src := range msg.Sources {
			lines = append(lines, styledLine{
				text:  "  " + sourceLine(src),
				style: StyleSourceText,
			})
		}

		if msg.IsAssistant() && !msg.Streaming && msg.Metadata.TokenCount > 0 {
			lines = append(lines, styledLine{
				text:  fmt.Sprintf("  %d tokens · %s", msg.Metadata.TokenCount, msg.Metadata.ProcessingTime.Round(timeRound)),
				style: StyleDimText,
			})
		}
	}

	return lines
}

func sourceLine(src sse.Source) string {
	name := src.DocumentTitle
	if name == "" {
		name = src.Filename
	}
	return fmt.Sprintf("▪ %s (%s)", name, chat.MatchLabel(src.RelevanceScore))
}

// RenderRetrieval draws the one-line retrieval progress strip.
func RenderRetrieval(screen tcell.Screen, update *chat.RetrievalUpdate, spinner SpinnerComponent, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	clearArea(screen, area)

	text := spinner.GetDisplayText()
	if update != nil {
		text += " " + retrievalText(*update)
	}
	renderTextWithLimit(screen, area.X+2, area.Y, area.Width-2, text, StyleRetrieval)
}

func retrievalText(update chat.RetrievalUpdate) string {
	switch update.Kind {
	case sse.TypeRetrievalStep:
		if update.Message != "" {
			return update.Message
		}
		return update.Step
	case sse.TypeRetrievalSummary:
		return fmt.Sprintf("%d results for %q", update.Results, update.Query)
	default:
		return update.Message
	}
}

func RenderInput(screen tcell.Screen, input InputField, area Rect) {
	if area.Width <= 0 || area.Height < 3 {
		return
	}

	clearArea(screen, area)
	drawInputBorder(screen, area, StyleDimText)

	inputX := area.X + 3
	inputY := area.Y + 1
	inputWidth := area.Width - 4
	renderText(screen, area.X+1, inputY, ">", StyleCursor)

	visibleContent := input.Content
	cursorPos := input.Cursor
	if len(visibleContent) > inputWidth {
		start := 0
		if cursorPos >= inputWidth {
			start = cursorPos - inputWidth + 1
		}
		end := start + inputWidth
		if end > len(visibleContent) {
			end = len(visibleContent)
		}
		visibleContent = visibleContent[start:end]
		cursorPos -= start
	}

	renderTextWithLimit(screen, inputX, inputY, inputWidth, visibleContent, tcell.StyleDefault)

	if cursorPos >= 0 && cursorPos <= len(visibleContent) && cursorPos < inputWidth {
		cursorStyle := tcell.StyleDefault.Reverse(true)
		r := ' '
		if cursorPos < len(visibleContent) {
			r = rune(visibleContent[cursorPos])
		}
		screen.SetContent(inputX+cursorPos, inputY, r, nil, cursorStyle)
	}
}

func RenderStatus(screen tcell.Screen, status StatusBar, area Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	clearArea(screen, area)

	style := StyleStatusReady
	backend := status.BackendURL
	if !status.BackendAvailable {
		style = StyleStatusError
		backend += " (unreachable)"
	}

	left := fmt.Sprintf(" %s · %s", status.Status, backend)
	renderTextWithLimit(screen, area.X, area.Y, area.Width, left, style)

	if status.SessionID != "" {
		session := shortID(status.SessionID) + " "
		x := area.X + area.Width - len(session)
		if x > area.X+len(left) {
			renderText(screen, x, area.Y, session, StyleDimText)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func calculateVisibleStyled(lines []styledLine, height, scroll int) ([]styledLine, int) {
	if height <= 0 || len(lines) == 0 {
		return nil, 0
	}
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[scroll:end], scroll
}

func clearArea(screen tcell.Screen, area Rect) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func renderText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func renderTextWithLimit(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= maxWidth {
			break
		}
		screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func drawInputBorder(screen tcell.Screen, area Rect, style tcell.Style) {
	for x := area.X; x < area.X+area.Width; x++ {
		screen.SetContent(x, area.Y, '─', nil, style)
		screen.SetContent(x, area.Y+2, '─', nil, style)
	}
	screen.SetContent(area.X, area.Y, '┌', nil, style)
	screen.SetContent(area.X+area.Width-1, area.Y, '┐', nil, style)
	screen.SetContent(area.X, area.Y+2, '└', nil, style)
	screen.SetContent(area.X+area.Width-1, area.Y+2, '┘', nil, style)
	screen.SetContent(area.X, area.Y+1, '│', nil, style)
	screen.SetContent(area.X+area.Width-1, area.Y+1, '│', nil, style)
}

func roleStyle(msg *chat.Message) tcell.Style {
	switch {
	case msg.IsUser():
		return StyleUserText
	case msg.IsSystem():
		return StyleSystemText
	default:
		return StyleAssistantText
	}
}

func roleLabel(msg *chat.Message) string {
	switch {
	case msg.IsUser():
		return "You:"
	case msg.IsSystem():
		return "·"
	default:
		return "DataDiver:"
	}
}
