package components

import (
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TickInterval is the ellipsis animation period.
const TickInterval = 500 * time.Millisecond

// ProgressOverlay is a terminal-style modal surface shown over the
// result panel during generation. Lines are append-only for one run;
// Show resets them. A periodic tick redraws the last line with a
// cycling trailing-dot suffix without mutating the stored line.
type ProgressOverlay struct {
	container *fyne.Container
	text      *widget.Label

	// post marshals tick redraws onto the UI thread.
	post func(func())

	lines   []string
	ticks   int
	showing bool
	stop    chan struct{}
}

func NewProgressOverlay(post func(func())) *ProgressOverlay {
	text := widget.NewLabel("")
	text.TextStyle = fyne.TextStyle{Monospace: true}
	text.Wrapping = fyne.TextWrapWord

	background := canvas.NewRectangle(color.NRGBA{R: 10, G: 10, B: 15, A: 245})

	overlay := container.NewStack(
		background,
		container.NewPadded(text),
	)
	overlay.Hide()

	return &ProgressOverlay{
		container: overlay,
		text:      text,
		post:      post,
	}
}

func (o *ProgressOverlay) GetContainer() *fyne.Container {
	return o.container
}

// Show clears the line storage, makes the overlay visible, and starts
// the animation ticker. Must be called on the UI thread.
func (o *ProgressOverlay) Show() {
	o.lines = nil
	o.ticks = 0
	o.showing = true
	o.text.SetText("")
	o.container.Show()

	o.stop = make(chan struct{})
	go o.animate(o.stop)
}

// Hide stops the ticker and removes the overlay. Must be called on the
// UI thread.
func (o *ProgressOverlay) Hide() {
	if o.stop != nil {
		close(o.stop)
		o.stop = nil
	}
	o.showing = false
	o.container.Hide()
}

// Append adds one line and re-renders the visible text. Must be called
// on the UI thread.
func (o *ProgressOverlay) Append(line string) {
	o.lines = append(o.lines, line)
	o.text.SetText(strings.Join(o.lines, "\n"))
}

// Lines returns a copy of the stored lines.
func (o *ProgressOverlay) Lines() []string {
	out := make([]string, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *ProgressOverlay) animate(stop chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			o.post(o.tick)
		}
	}
}

// tick redraws the text with the next dot count. A tick posted just
// before Hide ran is dropped by the showing guard.
func (o *ProgressOverlay) tick() {
	if !o.showing || len(o.lines) == 0 {
		return
	}
	o.text.SetText(animateEllipsis(o.lines, o.ticks))
	o.ticks++
}

// animateEllipsis renders the stored lines with the last line's
// trailing dots and spaces replaced by an animated suffix cycling
// through one, two, and three dots. The stored lines are not modified.
func animateEllipsis(lines []string, tick int) string {
	if len(lines) == 0 {
		return ""
	}
	dots := strings.Repeat(".", tick%3+1)
	last := strings.TrimRight(lines[len(lines)-1], ". ")

	rendered := make([]string, len(lines))
	copy(rendered, lines[:len(lines)-1])
	rendered[len(lines)-1] = last + dots
	return strings.Join(rendered, "\n")
}
