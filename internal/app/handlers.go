package app

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"mirror-mirror/internal/gui"
	"mirror-mirror/internal/imageio"
	"mirror-mirror/internal/logger"
	"mirror-mirror/internal/models"
	"mirror-mirror/internal/workflow"
)

// openExtensions restricts the open dialog to common raster formats.
var openExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"}

// Handlers reacts to user actions. Each blocking operation runs in its
// own goroutine and posts its outcome back with fyne.Do; session state
// is only ever touched on the UI thread.
type Handlers struct {
	controller *workflow.Controller
	guiManager *gui.Manager
	session    *models.Session
	loader     *imageio.Loader
	saver      *imageio.Saver
	logger     logger.Logger
}

func NewHandlers(controller *workflow.Controller, gm *gui.Manager, session *models.Session, loader *imageio.Loader, saver *imageio.Saver, log logger.Logger) *Handlers {
	return &Handlers{
		controller: controller,
		guiManager: gm,
		session:    session,
		loader:     loader,
		saver:      saver,
		logger:     log,
	}
}

// WorkflowEvents wires the generation workflow's transitions to the UI.
// The controller invokes every callback on the UI thread.
func (h *Handlers) WorkflowEvents() workflow.Events {
	controls := h.guiManager.Controls()
	overlay := h.guiManager.Overlay()

	return workflow.Events{
		Started: func() {
			h.session.Generating = true
			controls.SetGenerating(true)
			controls.DisableSave()
			overlay.Show()
		},
		Log: overlay.Append,
		Status: func(message string, kind workflow.StatusKind) {
			h.guiManager.UpdateStatus(message, string(kind))
		},
		Success: func(img image.Image) {
			h.session.Generating = false
			h.session.SetResult(img)
			overlay.Hide()
			h.guiManager.SetResultImage(img)
			controls.EnableSave()
			controls.SetGenerating(false)
		},
		Failure: func(err error) {
			h.session.Generating = false
			overlay.Hide()
			controls.SetGenerating(false)
		},
	}
}

// HandleGenerate gathers the current inputs and asks the workflow
// controller to start a run. Validation and the busy guard live in the
// controller.
func (h *Handlers) HandleGenerate() {
	controls := h.guiManager.Controls()

	h.controller.Generate(workflow.Request{
		APIKey: controls.APIKey(),
		Prompt: controls.Prompt(),
		Model:  controls.Model(),
		Source: h.session.Source,
	})
}

// HandleBrowse opens the file dialog and loads the chosen image off the
// UI thread.
func (h *Handlers) HandleBrowse() {
	fileOpen := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.UpdateStatus("Could not load file: "+err.Error(), "error")
			return
		}
		if reader == nil {
			return
		}

		h.guiManager.UpdateStatus("Loading image…", "dim")

		go func() {
			defer reader.Close()

			var img image.Image
			data, loadErr := io.ReadAll(reader)
			if loadErr == nil {
				img, loadErr = h.loader.LoadBytes(data)
			}

			fyne.Do(func() {
				if loadErr != nil {
					h.guiManager.UpdateStatus("Could not load file: "+loadErr.Error(), "error")
					return
				}
				h.session.SetSource(img, "")
				h.guiManager.SetSourceImage(img)
				h.guiManager.UpdateStatus("Source image loaded from file.", "dim")
			})
		}()
	}, h.guiManager.GetWindow())

	fileOpen.SetFilter(storage.NewExtensionFileFilter(openExtensions))
	fileOpen.Show()
}

// HandleDrop loads a dragged-and-dropped file path.
func (h *Handlers) HandleDrop(path string) {
	go func() {
		img, err := h.loader.LoadFile(path)

		fyne.Do(func() {
			if err != nil {
				h.guiManager.UpdateStatus("Could not load dropped file: "+err.Error(), "error")
				return
			}
			h.session.SetSource(img, "")
			h.guiManager.SetSourceImage(img)
			h.guiManager.UpdateStatus("Source image loaded from dropped file.", "dim")
		})
	}()
}

// HandleLoadURL fetches a remote image off the UI thread.
func (h *Handlers) HandleLoadURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		h.guiManager.UpdateStatus("Please enter a URL.", "error")
		return
	}

	h.guiManager.UpdateStatus("Loading image from URL…", "dim")

	go func() {
		img, err := h.loader.LoadURL(context.Background(), url)

		fyne.Do(func() {
			if err != nil {
				h.guiManager.UpdateStatus("Could not load URL: "+err.Error(), "error")
				return
			}
			h.session.SetSource(img, url)
			h.guiManager.SetSourceImage(img)
			h.guiManager.UpdateStatus("Source image loaded from URL.", "dim")
		})
	}()
}

// HandleSave writes the result image to a user-chosen destination. The
// encoding follows the destination extension; the default is .jpg.
func (h *Handlers) HandleSave() {
	if !h.session.HasResult() {
		h.guiManager.UpdateStatus("No result image to save.", "error")
		return
	}
	result := h.session.Result

	fileSave := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.guiManager.UpdateStatus("Save failed: "+err.Error(), "error")
			return
		}
		if writer == nil {
			return
		}

		path := writer.URI().Path()
		ext := writer.URI().Extension()

		go func() {
			defer writer.Close()
			saveErr := h.saver.Save(writer, result, ext)

			fyne.Do(func() {
				if saveErr != nil {
					h.guiManager.UpdateStatus("Save failed: "+saveErr.Error(), "error")
					return
				}
				h.guiManager.UpdateStatus(fmt.Sprintf("Saved to %s", path), "success")
			})
		}()
	}, h.guiManager.GetWindow())

	fileSave.SetFileName("mirror-output.jpg")
	fileSave.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".png"}))
	fileSave.Show()
}
