package colour

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
)

// DominantExtractor implements colour extraction by delegating to the
// cenkalti/dominantcolor library, which quantises the image and ranks
// colours by coverage.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract extracts the most dominant colours from an image.
// Weight shares are normalised to sum to 1.0.
func (e *DominantExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	candidates := dominantcolor.FindWeight(img, count)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no dominant colours found in image")
	}

	colors := make([]color.Color, 0, len(candidates))
	weights := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		colors = append(colors, c.RGBA)
		weights = append(weights, w)
	}

	return NewPaletteWithWeights(colors, weights), nil
}
