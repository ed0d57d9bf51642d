// Package imaging converts decoded WSQ fingerprint images into standard
// image formats for downstream tooling that doesn't speak WSQ directly.
package imaging

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"

	"github.com/romainwurtz/nist-fingerprint/errs"
	"github.com/romainwurtz/nist-fingerprint/wsq"
)

// ToGray converts a decoded WSQ image into a standard library image.Gray,
// the common currency both encoders below accept.
func ToGray(img *wsq.DecodedImage) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	copy(g.Pix, img.Pixels)
	return g
}

// WriteTIFF encodes a decoded WSQ image as an uncompressed TIFF, per
// spec.md's supplementary conversion helpers.
func WriteTIFF(w io.Writer, img *wsq.DecodedImage) error {
	if err := tiff.Encode(w, ToGray(img), nil); err != nil {
		return errs.NewDecode("imaging.WriteTIFF", nil, err)
	}
	return nil
}

// WritePNG encodes a decoded WSQ image as a PNG.
func WritePNG(w io.Writer, img *wsq.DecodedImage) error {
	if err := png.Encode(w, ToGray(img)); err != nil {
		return errs.NewDecode("imaging.WritePNG", nil, err)
	}
	return nil
}

// ToTIFFBytes is a convenience wrapper around WriteTIFF for callers that
// want an in-memory buffer rather than an io.Writer, such as a server
// handler assembling an HTTP response body.
func ToTIFFBytes(img *wsq.DecodedImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTIFF(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToPNGBytes is the PNG counterpart to ToTIFFBytes.
func ToPNGBytes(img *wsq.DecodedImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
