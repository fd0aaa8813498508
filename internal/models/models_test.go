package models

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModel(t *testing.T) {
	assert.Equal(t, ModelImagine, ParseModel("grok-imagine-image"))
	assert.Equal(t, ModelImaginePro, ParseModel("grok-imagine-image-pro"))
	assert.Equal(t, ModelImaginePro, ParseModel("something-else"))
	assert.Equal(t, ModelImaginePro, ParseModel(""))
}

func TestSessionLifetimes(t *testing.T) {
	session := NewSession()
	assert.False(t, session.HasSource())
	assert.False(t, session.HasResult())

	source := image.NewRGBA(image.Rect(0, 0, 2, 2))
	session.SetSource(source, "https://example.com/in.jpg")
	assert.True(t, session.HasSource())
	assert.Equal(t, "https://example.com/in.jpg", session.SourceURL)

	result := image.NewRGBA(image.Rect(0, 0, 4, 4))
	session.SetResult(result)
	assert.True(t, session.HasResult())

	// Loading a new source leaves the previous result in place.
	session.SetSource(image.NewRGBA(image.Rect(0, 0, 3, 3)), "")
	assert.True(t, session.HasResult())
	assert.Equal(t, result, session.Result)
	assert.Empty(t, session.SourceURL)
}
