package gui

import (
	"image"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mirror-mirror/internal/gui/components"
	"mirror-mirror/internal/logger"
)

const (
	Title    = "Mirror Mirror"
	Subtitle = "on the wall"

	instructions = "1. Load a source photo (file or URL).\n" +
		"2. Enter your xAI API key.\n" +
		"3. Edit the prompt if desired, then click Generate.\n" +
		"4. Use Save Output to keep the result.\n\n" +
		"Your API key is used only to call api.x.ai directly — " +
		"nothing is stored or transmitted elsewhere."
)

// Manager owns the widget tree. All mutating methods must run on the
// UI thread; background goroutines reach them through fyne.Do.
type Manager struct {
	window fyne.Window
	logger logger.Logger

	sourcePanel *components.ImagePanel
	resultPanel *components.ImagePanel
	overlay     *components.ProgressOverlay
	controls    *components.Controls
	statusBar   *components.StatusBar

	dropHandler func(path string)
}

func NewManager(window fyne.Window, log logger.Logger) *Manager {
	m := &Manager{
		window:      window,
		logger:      log,
		sourcePanel: components.NewImagePanel("Drop a photo here or\nenter a URL below"),
		resultPanel: components.NewImagePanel("Your reflection\nawaits…"),
		overlay:     components.NewProgressOverlay(fyne.Do),
		controls:    components.NewControls(),
		statusBar:   components.NewStatusBar(),
	}

	window.SetOnDropped(m.onDropped)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"panel_width":  components.PanelWidth,
		"panel_height": components.PanelHeight,
	})

	return m
}

// GetMainContainer assembles the window content.
func (m *Manager) GetMainContainer() *fyne.Container {
	header := container.NewVBox(
		container.NewCenter(widget.NewLabelWithStyle("✦  "+Title+"  ✦", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})),
		container.NewCenter(widget.NewLabelWithStyle(Subtitle, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})),
		widget.NewLabel(instructions),
		widget.NewSeparator(),
	)

	sourceColumn := container.NewVBox(
		widget.NewLabelWithStyle("SOURCE IMAGE", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		m.sourcePanel.GetContainer(),
		m.controls.URLRow(),
		container.NewHBox(m.controls.BrowseButton),
	)

	resultColumn := container.NewVBox(
		widget.NewLabelWithStyle("TRANSFORMED IMAGE", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewStack(
			m.resultPanel.GetContainer(),
			m.overlay.GetContainer(),
		),
		container.NewHBox(m.controls.SaveButton),
	)

	arrow := container.NewCenter(widget.NewLabelWithStyle("→", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))

	panels := container.NewHBox(
		sourceColumn,
		arrow,
		resultColumn,
	)

	keyColumn := container.NewVBox(
		widget.NewLabelWithStyle("XAI API KEY", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		m.controls.KeyEntry,
	)

	modelColumn := container.NewVBox(
		widget.NewLabelWithStyle("MODEL", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		m.controls.ModelRadio,
	)

	bottomRow := container.NewBorder(nil, nil,
		nil,
		container.NewHBox(modelColumn, container.NewCenter(m.controls.GenerateButton)),
		keyColumn,
	)

	return container.NewVBox(
		header,
		container.NewCenter(panels),
		widget.NewLabelWithStyle("TRANSFORMATION PROMPT", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		m.controls.PromptEntry,
		bottomRow,
		m.statusBar.GetContainer(),
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

// Controls exposes the input widgets for reading on the UI thread.
func (m *Manager) Controls() *components.Controls {
	return m.controls
}

// Overlay exposes the progress overlay; its methods must run on the UI
// thread.
func (m *Manager) Overlay() *components.ProgressOverlay {
	return m.overlay
}

// SetDropHandler registers the callback for dropped files. Only the
// first dropped path is used.
func (m *Manager) SetDropHandler(handler func(path string)) {
	m.dropHandler = handler
}

func (m *Manager) onDropped(_ fyne.Position, uris []fyne.URI) {
	if m.dropHandler == nil || len(uris) == 0 {
		return
	}

	path := CleanDroppedPath(uris[0].Path())
	if path == "" {
		return
	}

	m.logger.Debug("GUIManager", "file dropped", map[string]interface{}{
		"path":  path,
		"count": len(uris),
	})

	m.dropHandler(path)
}

// CleanDroppedPath strips the brace wrapping some platforms add around
// dropped paths containing spaces.
func CleanDroppedPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "{")
	path = strings.TrimSuffix(path, "}")
	return strings.TrimSpace(path)
}

func (m *Manager) SetSourceImage(img image.Image) {
	m.sourcePanel.SetImage(img)
	m.logger.Debug("GUIManager", "source image set", map[string]interface{}{
		"bounds": img.Bounds(),
	})
}

func (m *Manager) SetResultImage(img image.Image) {
	m.resultPanel.SetImage(img)
	m.logger.Debug("GUIManager", "result image set", map[string]interface{}{
		"bounds": img.Bounds(),
	})
}

func (m *Manager) UpdateStatus(message, kind string) {
	m.statusBar.SetStatus(message, kind)
}
