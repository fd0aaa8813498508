package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// StatusKind mirrors workflow.StatusKind values; kept as a plain string
// so components stay free of workflow imports.
var statusColors = map[string]color.NRGBA{
	"dim":     {R: 138, G: 128, B: 153, A: 255},
	"error":   {R: 240, G: 128, B: 144, A: 255},
	"success": {R: 144, G: 240, B: 192, A: 255},
}

// StatusBar shows one line of colored status text under the controls.
type StatusBar struct {
	container *fyne.Container
	text      *canvas.Text
}

func NewStatusBar() *StatusBar {
	text := canvas.NewText("", statusColors["dim"])
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = 13

	return &StatusBar{
		container: container.NewCenter(text),
		text:      text,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// SetStatus replaces the status line. Unknown kinds render dim.
func (sb *StatusBar) SetStatus(message, kind string) {
	col, ok := statusColors[kind]
	if !ok {
		col = statusColors["dim"]
	}
	sb.text.Text = message
	sb.text.Color = col
	sb.text.Refresh()
}

// Text returns the current status message.
func (sb *StatusBar) Text() string {
	return sb.text.Text
}
