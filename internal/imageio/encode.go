package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// jpegQuality is used for every JPEG encode (data URIs and saved files).
const jpegQuality = 95

// DataURI encodes an image as an inline base64 data URI for the remote
// generation request. JPEG encoding flattens alpha to RGB first.
func DataURI(img image.Image, format string) (string, error) {
	var buf bytes.Buffer
	var mime string

	switch format {
	case "png":
		mime = "image/png"
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("png encode failed: %w", err)
		}
	case "jpeg", "jpg", "":
		mime = "image/jpeg"
		if err := jpeg.Encode(&buf, Flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return "", fmt.Errorf("jpeg encode failed: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported encode format %q", format)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}

// DataURISizeKB reports the decoded payload size of a data URI in
// kilobytes, for progress logging.
func DataURISizeKB(uri string) int {
	return len(uri) * 3 / 4 / 1024
}

// Fit scales an image down to fit within the given box, preserving
// aspect ratio. Images already inside the box are returned unchanged;
// there is no upscaling.
func Fit(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width && bounds.Dy() <= height {
		return img
	}
	return imaging.Fit(img, width, height, imaging.Lanczos)
}

// Flatten composites an image over an opaque white background, dropping
// any alpha channel. Formats without transparency pass through visually
// unchanged.
func Flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)
	return flat
}
