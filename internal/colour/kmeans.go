package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeansExtractor implements colour extraction by delegating to the
// muesli/kmeans clustering library. Initialisation, assignment tie-breaking
// and convergence are the library defaults.
type KMeansExtractor struct{}

// NewKMeansExtractor creates a new KMeansExtractor.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{}
}

// Extract extracts colours from an image using k-means clustering.
// Returned palette weights are the relative cluster sizes, summing to 1.0.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	dataset := SamplePixels(img)
	if len(dataset) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// When the image holds fewer distinct colours than requested, clustering
	// would only produce duplicate or empty clusters. Return the distinct
	// colours with their exact counted frequencies instead.
	if unique, weights := distinctColours(dataset); count >= len(unique) {
		return NewPaletteWithWeights(unique, weights), nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, count)
	if err != nil {
		return nil, fmt.Errorf("k-means partition failed: %w", err)
	}

	colors := make([]color.Color, 0, len(cc))
	weights := make([]float64, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		colors = append(colors, color.RGBA{
			R: channelByte(c.Center[0]),
			G: channelByte(c.Center[1]),
			B: channelByte(c.Center[2]),
			A: 255,
		})
		weights = append(weights, float64(len(c.Observations)))
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("k-means produced no clusters")
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// distinctColours collapses the dataset to its distinct 8-bit colours,
// returning them alongside their raw occurrence counts in first-seen order.
func distinctColours(dataset clusters.Observations) ([]color.Color, []float64) {
	index := make(map[RGB]int, len(dataset))
	colors := make([]color.Color, 0, 16)
	counts := make([]float64, 0, 16)

	for _, obs := range dataset {
		coords := obs.Coordinates()
		if len(coords) < 3 {
			continue
		}
		rgb := RGB{
			R: channelByte(coords[0]),
			G: channelByte(coords[1]),
			B: channelByte(coords[2]),
		}
		if i, ok := index[rgb]; ok {
			counts[i]++
			continue
		}
		index[rgb] = len(colors)
		colors = append(colors, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
		counts = append(counts, 1)
	}
	return colors, counts
}

// channelByte converts a normalised [0, 1] channel to a rounded 8-bit value.
func channelByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
