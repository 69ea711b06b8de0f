package tui

type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

type Layout struct {
	ScreenWidth  int
	ScreenHeight int
}

func NewLayout(width, height int) Layout {
	return Layout{ScreenWidth: width, ScreenHeight: height}
}

// CalculateAreas splits the screen into the chat regions: the scrolling
// message area, a one-line retrieval progress strip, the input box, and the
// status bar.
func (l Layout) CalculateAreas() (messageArea, retrievalArea, inputArea, statusArea Rect) {
	statusHeight := 1
	inputHeight := 3
	retrievalHeight := 1
	messageHeight := l.ScreenHeight - statusHeight - inputHeight - retrievalHeight

	if messageHeight < 1 {
		messageHeight = 1
	}

	padding := 2
	availableWidth := l.ScreenWidth - (2 * padding)
	if availableWidth < 1 {
		availableWidth = l.ScreenWidth
		padding = 0
	}

	messageArea = NewRect(padding, 0, availableWidth, messageHeight)
	retrievalArea = NewRect(0, messageHeight, l.ScreenWidth, retrievalHeight)
	inputArea = NewRect(0, messageHeight+retrievalHeight, l.ScreenWidth, inputHeight)
	statusArea = NewRect(0, messageHeight+retrievalHeight+inputHeight, l.ScreenWidth, statusHeight)

	return messageArea, retrievalArea, inputArea, statusArea
}

func WrapText(text string, width int) []string {
	if width <= 0 || text == "" {
		return []string{}
	}

	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	runes := []rune(text)

	for len(runes) > 0 {
		lineLength := width
		if lineLength > len(runes) {
			lineLength = len(runes)
		}

		if lineLength == len(runes) {
			lines = append(lines, string(runes))
			break
		}

		breakPos := lineLength
		for i := lineLength - 1; i >= 0; i-- {
			if runes[i] == ' ' || runes[i] == '\n' {
				breakPos = i
				break
			}
		}

		if breakPos == 0 && lineLength > 0 {
			breakPos = lineLength
		}

		lines = append(lines, string(runes[:breakPos]))

		runes = runes[breakPos:]
		for len(runes) > 0 && (runes[0] == ' ' || runes[0] == '\n') {
			runes = runes[1:]
		}
	}

	return lines
}

func CalculateVisibleLines(lines []string, height, scroll int) (visibleLines []string, startLine int) {
	if height <= 0 || len(lines) == 0 {
		return []string{}, 0
	}

	totalLines := len(lines)

	if scroll >= totalLines {
		scroll = totalLines - 1
	}
	if scroll < 0 {
		scroll = 0
	}

	startLine = scroll
	endLine := startLine + height
	if endLine > totalLines {
		endLine = totalLines
	}

	return lines[startLine:endLine], startLine
}
