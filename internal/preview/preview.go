// Package preview generates bounded thumbnail files for locally staged
// images. A Handle is a scoped resource: whoever stages the image owns the
// handle and must release it when the slot is cleared, replaced, or the form
// goes away.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	maxSide     = 300
	jpegQuality = 85
)

// Handle is a reference to a generated preview thumbnail on disk
type Handle struct {
	path     string
	released bool
}

// Acquire decodes the staged image bytes, renders a thumbnail bounded to
// 300x300 and writes it to a temp file. The caller owns the returned handle.
func Acquire(data []byte) (*Handle, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)

	f, err := os.CreateTemp("", "alppass-preview-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview file: %w", err)
	}

	if err := jpeg.Encode(f, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}

	return &Handle{path: f.Name()}, nil
}

// Path returns the location of the thumbnail file. Empty after release.
func (h *Handle) Path() string {
	if h == nil || h.released {
		return ""
	}
	return h.path
}

// Release removes the thumbnail file. Safe to call on a nil handle and
// idempotent, so slot-clear and form-close paths may both run it.
func (h *Handle) Release() error {
	if h == nil || h.released {
		return nil
	}
	h.released = true
	return os.Remove(h.path)
}
