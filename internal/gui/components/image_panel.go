package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mirror-mirror/internal/imageio"
)

const (
	// PanelWidth and PanelHeight fix the preview box size. Bitmaps are
	// fitted inside with aspect ratio preserved and never upscaled.
	PanelWidth  = 340
	PanelHeight = 340
)

// ImagePanel renders a fitted preview of one bitmap inside a fixed box,
// with placeholder text while empty.
type ImagePanel struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label

	// rendered keeps the fitted bitmap alive while it is on screen.
	rendered image.Image
}

func NewImagePanel(placeholder string) *ImagePanel {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(PanelWidth, PanelHeight))
	img.Hide()

	label := widget.NewLabel(placeholder)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Italic: true}

	panel := container.NewStack(
		img,
		container.NewCenter(label),
	)

	return &ImagePanel{
		container:   panel,
		image:       img,
		placeholder: label,
	}
}

func (p *ImagePanel) GetContainer() *fyne.Container {
	return p.container
}

// SetImage fits the bitmap into the preview box and replaces any prior
// rendering. Must be called on the UI thread.
func (p *ImagePanel) SetImage(img image.Image) {
	if img == nil {
		return
	}

	fitted := imageio.Fit(img, PanelWidth, PanelHeight)
	p.rendered = fitted

	p.placeholder.Hide()
	p.image.Image = fitted
	p.image.Show()
	p.image.Refresh()
}

// Image returns the currently rendered bitmap, nil while empty.
func (p *ImagePanel) Image() image.Image {
	return p.rendered
}
