package app

import (
	"context"
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirror-mirror/internal/grok"
	"mirror-mirror/internal/gui"
	"mirror-mirror/internal/imageio"
	"mirror-mirror/internal/models"
	"mirror-mirror/internal/workflow"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{})   {}
func (nopLogger) Info(string, string, map[string]interface{})    {}
func (nopLogger) Warning(string, string, map[string]interface{}) {}
func (nopLogger) Error(string, error, map[string]interface{})    {}

type stubGenerator struct{ err error }

func (s stubGenerator) SampleImage(context.Context, grok.SampleRequest) (string, error) {
	return "https://example.com/out.png", s.err
}

func newTestHandlers(t *testing.T) (*Handlers, *gui.Manager, *models.Session) {
	t.Helper()
	_ = test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	log := nopLogger{}
	manager := gui.NewManager(window, log)
	session := models.NewSession()
	loader := imageio.NewLoader(log)
	saver := imageio.NewSaver(log)

	controller := workflow.NewController(log, func(f func()) { f() }, func(string) workflow.Generator {
		return stubGenerator{}
	}, loader)

	handlers := NewHandlers(controller, manager, session, loader, saver, log)
	controller.SetEvents(handlers.WorkflowEvents())
	return handlers, manager, session
}

func TestWorkflowEventsDriveControls(t *testing.T) {
	handlers, manager, session := newTestHandlers(t)
	events := handlers.WorkflowEvents()
	controls := manager.Controls()
	overlay := manager.Overlay()

	events.Started()
	assert.True(t, session.Generating)
	assert.True(t, controls.GenerateButton.Disabled())
	assert.True(t, controls.SaveButton.Disabled())
	assert.True(t, overlay.GetContainer().Visible())

	result := image.NewRGBA(image.Rect(0, 0, 4, 4))
	events.Success(result)
	assert.False(t, session.Generating)
	assert.Equal(t, result, session.Result)
	assert.False(t, controls.GenerateButton.Disabled())
	assert.False(t, controls.SaveButton.Disabled())
	assert.False(t, overlay.GetContainer().Visible())
}

func TestWorkflowFailureRestoresIdleState(t *testing.T) {
	handlers, manager, session := newTestHandlers(t)
	events := handlers.WorkflowEvents()
	controls := manager.Controls()
	overlay := manager.Overlay()

	events.Started()
	events.Failure(assert.AnError)

	assert.False(t, session.Generating)
	assert.Nil(t, session.Result)
	assert.False(t, controls.GenerateButton.Disabled())
	// Save stays locked until a generation succeeds.
	assert.True(t, controls.SaveButton.Disabled())
	assert.False(t, overlay.GetContainer().Visible())
}

func TestHandleGenerateValidationLeavesIdle(t *testing.T) {
	handlers, manager, session := newTestHandlers(t)
	controls := manager.Controls()

	// No API key, no source image: nothing may start.
	controls.KeyEntry.SetText("")
	handlers.HandleGenerate()

	assert.False(t, session.Generating)
	assert.False(t, controls.GenerateButton.Disabled())
	assert.False(t, manager.Overlay().GetContainer().Visible())
}

func TestHandleSaveWithoutResult(t *testing.T) {
	handlers, _, session := newTestHandlers(t)

	require.False(t, session.HasResult())
	// Must not open a dialog or panic; just reports the error.
	handlers.HandleSave()
	assert.False(t, session.HasResult())
}
