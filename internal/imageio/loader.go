package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"mirror-mirror/internal/logger"
)

const (
	// UserAgent identifies remote image fetches.
	UserAgent = "MirrorMirror/1.0"
	// FetchTimeout bounds every remote image download.
	FetchTimeout = 15 * time.Second
)

// Loader decodes images from local files, raw bytes, and URLs, and
// normalizes orientation so decoded bitmaps are always display-correct.
type Loader struct {
	logger     logger.Logger
	httpClient *http.Client
}

func NewLoader(log logger.Logger) *Loader {
	return &Loader{
		logger:     log,
		httpClient: &http.Client{Timeout: FetchTimeout},
	}
}

// LoadFile reads and decodes an image from a filesystem path.
func (l *Loader) LoadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}
	return l.LoadBytes(data)
}

// LoadBytes decodes an image from raw bytes and applies any embedded
// EXIF orientation. Missing or malformed metadata never fails the load.
func (l *Loader) LoadBytes(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image data: %w", err)
	}

	orientation := readOrientation(data)
	img = applyOrientation(img, orientation)

	l.logger.Debug("ImageLoader", "image decoded", map[string]interface{}{
		"format":      format,
		"size_bytes":  len(data),
		"orientation": orientation,
		"bounds":      img.Bounds(),
	})

	return img, nil
}

// LoadURL fetches an image over HTTP with a bounded timeout and the
// application User-Agent, then decodes it like LoadBytes.
func (l *Loader) LoadURL(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("download timed out after %s: %w", FetchTimeout, err)
		}
		return nil, fmt.Errorf("could not fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not fetch URL: server returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	l.logger.Debug("ImageLoader", "remote image fetched", map[string]interface{}{
		"url":        url,
		"size_bytes": len(data),
	})

	return l.LoadBytes(data)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readOrientation extracts the EXIF orientation tag, returning 1 (no
// transform) when metadata is absent or malformed.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return 1
	}
	return orientation
}

// applyOrientation undoes the capture-device rotation encoded in the
// EXIF orientation value (1 through 8).
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// 90 degrees clockwise; imaging rotates counter-clockwise.
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
