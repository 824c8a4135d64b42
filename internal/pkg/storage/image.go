package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor normalizes uploaded images before they are stored.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// NormalizeIcon decodes an uploaded icon, fits it into the maxSize bounding
// box and re-encodes it as PNG so transparency survives.
func (p *ImageProcessor) NormalizeIcon(content io.Reader, maxSize int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	icon := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, icon); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	return buf, nil
}
