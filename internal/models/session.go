package models

import "image"

// Session holds the mutable state of one application window: the loaded
// source image, the most recent generation result, and the in-flight
// flag. It is owned by the UI thread; background goroutines never touch
// it directly and hand results back through posted callbacks.
//
// Source and result have independent lifetimes: loading a new source
// does not invalidate a previous result.
type Session struct {
	Source     image.Image
	SourceURL  string
	Result     image.Image
	Generating bool
}

func NewSession() *Session {
	return &Session{}
}

// SetSource records a newly loaded source image and its originating URL
// (empty for local files and drops).
func (s *Session) SetSource(img image.Image, url string) {
	s.Source = img
	s.SourceURL = url
}

// SetResult records a successful generation result.
func (s *Session) SetResult(img image.Image) {
	s.Result = img
}

func (s *Session) HasSource() bool {
	return s.Source != nil
}

func (s *Session) HasResult() bool {
	return s.Result != nil
}
