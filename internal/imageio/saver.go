package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"mirror-mirror/internal/logger"
)

// Saver persists result images. Encoding is chosen by destination
// extension: PNG preserves transparency, everything else flattens to an
// RGB JPEG at high quality.
type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{logger: log}
}

// Save writes the image to the writer using the encoding selected by
// FormatForExtension. A write failure surfaces as a save error and
// leaves in-memory state untouched.
func (s *Saver) Save(writer io.Writer, img image.Image, ext string) error {
	if img == nil {
		return fmt.Errorf("no image to save")
	}

	format := FormatForExtension(ext)

	var err error
	switch format {
	case "png":
		err = png.Encode(writer, img)
	default:
		err = jpeg.Encode(writer, Flatten(img), &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": format,
		})
		return fmt.Errorf("could not save image: %w", err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"format": format,
		"bounds": img.Bounds(),
	})

	return nil
}

// FormatForExtension picks the save encoding for a destination
// extension. JPEG is the default for anything that is not PNG.
func FormatForExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "png"
	default:
		return "jpeg"
	}
}
