package workflow

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"mirror-mirror/internal/grok"
	"mirror-mirror/internal/imageio"
	"mirror-mirror/internal/logger"
	"mirror-mirror/internal/models"
)

// StatusKind selects the status bar rendering for a message.
type StatusKind string

const (
	StatusDim     StatusKind = "dim"
	StatusError   StatusKind = "error"
	StatusSuccess StatusKind = "success"
)

// Generator abstracts the remote image generation call.
type Generator interface {
	SampleImage(ctx context.Context, req grok.SampleRequest) (string, error)
}

// Downloader fetches and decodes the generated result image.
type Downloader interface {
	LoadURL(ctx context.Context, url string) (image.Image, error)
}

// Events are the UI-side reactions to workflow transitions. Every
// callback is invoked on the UI thread; the background goroutine only
// ever reaches the UI through the controller's post function.
type Events struct {
	// Started fires when validation passed and a run begins: disable
	// generate, clear and show the overlay.
	Started func()
	// Log appends one line to the overlay terminal.
	Log func(line string)
	// Status updates the status bar.
	Status func(message string, kind StatusKind)
	// Success delivers the decoded result image.
	Success func(img image.Image)
	// Failure fires on any pipeline error, after the error line was
	// logged. Hide the overlay and re-enable generate here.
	Failure func(err error)
}

// Request carries the validated inputs for one generation run.
type Request struct {
	APIKey string
	Prompt string
	Model  models.Model
	Source image.Image
}

// Controller drives the generation workflow:
//
//	Idle -> Validating -> Running -> {Succeeded, Failed} -> Idle
//
// At most one run is in flight; Generate while running is a no-op. The
// in-flight flag is owned by the UI thread: Generate sets it before the
// goroutine is dispatched and the posted terminal callback clears it.
type Controller struct {
	logger       logger.Logger
	post         func(func())
	newGenerator func(apiKey string) Generator
	downloader   Downloader
	events       Events
	inFlight     bool
}

func NewController(log logger.Logger, post func(func()), newGenerator func(apiKey string) Generator, downloader Downloader) *Controller {
	return &Controller{
		logger:       log,
		post:         post,
		newGenerator: newGenerator,
		downloader:   downloader,
	}
}

// SetEvents wires the UI reactions. Must be called before Generate.
func (c *Controller) SetEvents(events Events) {
	c.events = events
}

// InFlight reports whether a generation run is active.
func (c *Controller) InFlight() bool {
	return c.inFlight
}

// Generate validates the request and, if everything is present,
// dispatches exactly one background run. Any missing precondition
// surfaces as a status message and no background work starts. Must be
// called on the UI thread.
func (c *Controller) Generate(req Request) {
	if c.inFlight {
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	prompt := strings.TrimSpace(req.Prompt)

	switch {
	case apiKey == "":
		c.events.Status("Please enter your xAI API key.", StatusError)
		return
	case prompt == "":
		c.events.Status("Please enter a prompt.", StatusError)
		return
	case req.Source == nil:
		c.events.Status("Please load a source image first.", StatusError)
		return
	}

	c.inFlight = true
	c.events.Status("", StatusDim)
	c.events.Started()
	c.events.Log("Model   : " + req.Model.String())
	c.events.Log("Prompt  : " + truncate(prompt, 60))
	c.events.Log(strings.Repeat("─", 38))

	c.logger.Info("Workflow", "generation started", map[string]interface{}{
		"model":         req.Model.String(),
		"prompt_length": len(prompt),
	})

	// The credential lives in the environment for the lifetime of the
	// remote client, matching what the xAI tooling expects.
	os.Setenv(grok.APIKeyEnv, apiKey)
	generator := c.newGenerator(apiKey)

	req.APIKey = apiKey
	req.Prompt = prompt
	go c.run(generator, req)
}

// run executes the pipeline off the UI thread, posting one log line per
// stage in order: encode, connect, authenticate, send, receive,
// download, done.
func (c *Controller) run(generator Generator, req Request) {
	ctx := context.Background()

	c.log("Encoding source image to base64")
	dataURI, err := imageio.DataURI(req.Source, "jpeg")
	if err != nil {
		c.fail(err)
		return
	}
	c.log(fmt.Sprintf("Encoded  : %d KB", imageio.DataURISizeKB(dataURI)))

	c.log("Connecting to api.x.ai")
	c.log("Authenticating")
	c.log("Sending image + prompt to Grok")
	resultURL, err := generator.SampleImage(ctx, grok.SampleRequest{
		Prompt:   req.Prompt,
		Model:    req.Model,
		ImageURL: dataURI,
	})
	if err != nil {
		c.fail(err)
		return
	}

	c.log("Response received")
	c.log("URL: " + truncate(resultURL, 48))
	c.log("Downloading result image")
	result, err := c.downloader.LoadURL(ctx, resultURL)
	if err != nil {
		c.fail(err)
		return
	}
	c.log("Done")

	c.post(func() {
		c.inFlight = false
		c.events.Success(result)
		c.events.Status("Transformation complete. Use Save Output to keep the result.", StatusSuccess)
	})

	c.logger.Info("Workflow", "generation succeeded", map[string]interface{}{
		"result_url": resultURL,
	})
}

func (c *Controller) log(line string) {
	c.post(func() {
		c.events.Log(line)
	})
}

// fail marshals a pipeline error back to the UI thread. The guard is
// cleared identically to the success path so no failure leaves the
// controls disabled.
func (c *Controller) fail(err error) {
	c.logger.Error("Workflow", err, nil)
	c.post(func() {
		c.events.Log("ERROR: " + err.Error())
		c.inFlight = false
		c.events.Failure(err)
		c.events.Status("Error: "+err.Error(), StatusError)
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
