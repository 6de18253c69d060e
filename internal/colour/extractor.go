// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant extracts the most dominant (frequent) colours.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.ColorCount)
	}
	return nil
}
