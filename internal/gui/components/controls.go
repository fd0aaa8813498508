package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mirror-mirror/internal/models"
)

// DefaultPrompt prefills the prompt entry on startup.
const DefaultPrompt = "MtF gender swap transformation of the subject; " +
	"maintain pose and facial structure, but change body shape, " +
	"clothing, and features to emphasize the new gender"

// Controls groups the user input widgets: prompt, credential, model
// selection, source URL row, and the action buttons.
type Controls struct {
	PromptEntry    *widget.Entry
	KeyEntry       *widget.Entry
	ModelRadio     *widget.RadioGroup
	URLEntry       *widget.Entry
	LoadURLButton  *widget.Button
	BrowseButton   *widget.Button
	GenerateButton *widget.Button
	SaveButton     *widget.Button

	generateHandler func()
	saveHandler     func()
	browseHandler   func()
	loadURLHandler  func(url string)
}

func NewControls() *Controls {
	c := &Controls{}

	c.PromptEntry = widget.NewMultiLineEntry()
	c.PromptEntry.Wrapping = fyne.TextWrapWord
	c.PromptEntry.SetMinRowsVisible(4)
	c.PromptEntry.SetText(DefaultPrompt)

	c.KeyEntry = widget.NewPasswordEntry()
	c.KeyEntry.SetPlaceHolder("xAI API key")

	modelNames := make([]string, 0, 2)
	for _, m := range models.Models() {
		modelNames = append(modelNames, m.String())
	}
	c.ModelRadio = widget.NewRadioGroup(modelNames, nil)
	c.ModelRadio.SetSelected(models.ModelImaginePro.String())
	c.ModelRadio.Horizontal = false

	c.URLEntry = widget.NewEntry()
	c.URLEntry.SetPlaceHolder("https://example.com/photo.jpg")
	c.URLEntry.OnSubmitted = func(string) { c.onLoadURL() }
	c.LoadURLButton = widget.NewButton("Load", c.onLoadURL)

	c.BrowseButton = widget.NewButton("Browse File… (or drag & drop)", c.onBrowse)

	c.GenerateButton = widget.NewButton("Generate", c.onGenerate)
	c.GenerateButton.Importance = widget.HighImportance

	c.SaveButton = widget.NewButton("Save Output…", c.onSave)
	c.SaveButton.Disable()

	return c
}

// URLRow lays out the URL entry with its load button.
func (c *Controls) URLRow() *fyne.Container {
	return container.NewBorder(nil, nil,
		widget.NewLabel("URL:"),
		c.LoadURLButton,
		c.URLEntry,
	)
}

func (c *Controls) SetGenerateHandler(handler func()) {
	c.generateHandler = handler
}

func (c *Controls) SetSaveHandler(handler func()) {
	c.saveHandler = handler
}

func (c *Controls) SetBrowseHandler(handler func()) {
	c.browseHandler = handler
}

func (c *Controls) SetLoadURLHandler(handler func(url string)) {
	c.loadURLHandler = handler
}

func (c *Controls) Prompt() string {
	return c.PromptEntry.Text
}

func (c *Controls) APIKey() string {
	return c.KeyEntry.Text
}

func (c *Controls) Model() models.Model {
	return models.ParseModel(c.ModelRadio.Selected)
}

// SetGenerating toggles the generate button for the in-flight state.
func (c *Controls) SetGenerating(generating bool) {
	if generating {
		c.GenerateButton.SetText("Generating…")
		c.GenerateButton.Disable()
	} else {
		c.GenerateButton.SetText("Generate")
		c.GenerateButton.Enable()
	}
}

// EnableSave unlocks the save button once a result exists.
func (c *Controls) EnableSave() {
	c.SaveButton.Enable()
}

func (c *Controls) DisableSave() {
	c.SaveButton.Disable()
}

func (c *Controls) onGenerate() {
	if c.generateHandler != nil {
		c.generateHandler()
	}
}

func (c *Controls) onSave() {
	if c.saveHandler != nil {
		c.saveHandler()
	}
}

func (c *Controls) onBrowse() {
	if c.browseHandler != nil {
		c.browseHandler()
	}
}

func (c *Controls) onLoadURL() {
	if c.loadURLHandler != nil {
		c.loadURLHandler(c.URLEntry.Text)
	}
}
