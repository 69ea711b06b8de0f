package tui

import "github.com/gdamore/tcell/v2"

// Warm base16-style palette shared by all chat surfaces.
var (
	ColorUserText      = tcell.NewRGBColor(147, 181, 107) // Moss green - user messages
	ColorAssistantText = tcell.NewRGBColor(107, 147, 181) // Steel blue - assistant messages
	ColorSystemText    = tcell.NewRGBColor(151, 107, 181) // Lavender - system messages
	ColorErrorText     = tcell.NewRGBColor(217, 95, 95)   // Soft red - errors

	ColorSourceText  = tcell.NewRGBColor(97, 175, 175)  // Teal - source citations
	ColorMatchLabel  = tcell.NewRGBColor(245, 183, 97)  // Amber - relevance labels
	ColorRetrieval   = tcell.NewRGBColor(131, 113, 95)  // Umber - retrieval progress
	ColorDimText     = tcell.NewRGBColor(92, 80, 68)    // Faded brown - secondary text
	ColorCursor      = tcell.NewRGBColor(235, 135, 85)  // Orange - streaming cursor
	ColorStatusReady = tcell.NewRGBColor(147, 181, 107) // Moss green - ready
	ColorStatusBusy  = tcell.NewRGBColor(245, 183, 97)  // Amber - busy
	ColorStatusError = tcell.NewRGBColor(217, 95, 95)   // Soft red - backend down
)

var (
	StyleUserText      = tcell.StyleDefault.Foreground(ColorUserText)
	StyleAssistantText = tcell.StyleDefault.Foreground(ColorAssistantText)
	StyleSystemText    = tcell.StyleDefault.Foreground(ColorSystemText)
	StyleErrorText     = tcell.StyleDefault.Foreground(ColorErrorText)

	StyleSourceText = tcell.StyleDefault.Foreground(ColorSourceText)
	StyleMatchLabel = tcell.StyleDefault.Foreground(ColorMatchLabel)
	StyleRetrieval  = tcell.StyleDefault.Foreground(ColorRetrieval).Dim(true)
	StyleDimText    = tcell.StyleDefault.Foreground(ColorDimText).Dim(true)
	StyleCursor     = tcell.StyleDefault.Foreground(ColorCursor)

	StyleStatusReady = tcell.StyleDefault.Foreground(ColorStatusReady)
	StyleStatusBusy  = tcell.StyleDefault.Foreground(ColorStatusBusy)
	StyleStatusError = tcell.StyleDefault.Foreground(ColorStatusError)
)
