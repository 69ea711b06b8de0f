package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type SpinnerComponent struct {
	IsVisible bool
	Frame     int
	StartTime time.Time
	Text      string
	Style     tcell.Style
}

func NewSpinnerComponent() SpinnerComponent {
	return SpinnerComponent{
		Frame:     0,
		StartTime: time.Now(),
		Style:     StyleStatusBusy,
	}
}

func (sc SpinnerComponent) WithVisibility(visible bool) SpinnerComponent {
	spinner := sc
	spinner.IsVisible = visible
	if visible && !sc.IsVisible {
		spinner.StartTime = time.Now()
		spinner.Frame = 0
	}
	return spinner
}

func (sc SpinnerComponent) WithText(text string) SpinnerComponent {
	spinner := sc
	spinner.Text = text
	return spinner
}

func (sc SpinnerComponent) NextFrame() SpinnerComponent {
	if !sc.IsVisible {
		return sc
	}
	spinner := sc
	spinner.Frame = (sc.Frame + 1) % len(spinnerFrames)
	return spinner
}

func (sc SpinnerComponent) GetDisplayText() string {
	if !sc.IsVisible {
		return ""
	}
	frame := spinnerFrames[sc.Frame]
	if sc.Text == "" {
		return frame
	}
	return frame + " " + sc.Text
}
