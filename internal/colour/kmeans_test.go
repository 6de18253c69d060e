package colour

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// solidImage returns a w x h image filled with a single colour.
func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// blockImage returns an image split into equal vertical bands, one per colour.
func blockImage(w, h int, cols []color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	band := w / len(cols)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x / band
			if i >= len(cols) {
				i = len(cols) - 1
			}
			img.SetRGBA(x, y, cols[i])
		}
	}
	return img
}

func TestKMeansExtractorSolidColour(t *testing.T) {
	red := color.RGBA{R: 255, G: 0, B: 0, A: 255}

	for _, k := range []int{1, 2, 5, 10} {
		extractor := NewKMeansExtractor()
		palette, err := extractor.Extract(solidImage(8, 8, red), k)
		if err != nil {
			t.Fatalf("Extract(solid, k=%d) returned error: %v", k, err)
		}

		// A single-colour image has one distinct colour, so every entry
		// must equal it regardless of the requested count.
		for i, c := range palette.Colors {
			if ToRGB(c) != (RGB{R: 255, G: 0, B: 0}) {
				t.Errorf("k=%d entry %d = %s, want #ff0000", k, i, ToRGB(c).Hex())
			}
		}

		sum := 0.0
		for i := range palette.Colors {
			sum += palette.Weight(i)
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("k=%d weights sum to %f, want 1.0", k, sum)
		}
	}
}

func TestKMeansExtractorTwoColourImage(t *testing.T) {
	// 2x2 image with pixels {red, red, blue, blue} and K=2 must yield two
	// clusters of frequency 0.5 each, pure red and pure blue.
	red := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	blue := color.RGBA{R: 0, G: 0, B: 255, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, red)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, blue)

	palette, err := NewKMeansExtractor().Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if palette.Len() != 2 {
		t.Fatalf("palette has %d entries, want 2", palette.Len())
	}

	seen := make(map[RGB]float64)
	for i, c := range palette.Colors {
		seen[ToRGB(c)] = palette.Weight(i)
	}

	for _, want := range []RGB{{R: 255}, {B: 255}} {
		weight, ok := seen[want]
		if !ok {
			t.Fatalf("palette missing colour %s", want.Hex())
		}
		if math.Abs(weight-0.5) > 1e-9 {
			t.Errorf("colour %s weight = %f, want 0.5", want.Hex(), weight)
		}
	}
}

func TestKMeansExtractorFrequenciesSumToOne(t *testing.T) {
	cols := []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
	}
	img := blockImage(40, 20, cols)

	for _, k := range []int{2, 3} {
		palette, err := NewKMeansExtractor().Extract(img, k)
		if err != nil {
			t.Fatalf("Extract(k=%d) returned error: %v", k, err)
		}

		sum := 0.0
		for i := range palette.Colors {
			sum += palette.Weight(i)
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("k=%d frequencies sum to %f, want 1.0", k, sum)
		}
	}
}

func TestKMeansExtractorInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		count int
	}{
		{name: "nil image", img: nil, count: 5},
		{name: "zero count", img: solidImage(2, 2, color.RGBA{A: 255}), count: 0},
		{name: "negative count", img: solidImage(2, 2, color.RGBA{A: 255}), count: -1},
		{name: "count too large", img: solidImage(2, 2, color.RGBA{A: 255}), count: 300},
		{name: "empty image", img: image.NewRGBA(image.Rect(0, 0, 0, 0)), count: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKMeansExtractor().Extract(tt.img, tt.count); err == nil {
				t.Error("Extract expected error, got nil")
			}
		})
	}
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name      string
		algorithm Algorithm
		wantErr   bool
	}{
		{name: "kmeans", algorithm: AlgorithmKMeans},
		{name: "dominant", algorithm: AlgorithmDominant},
		{name: "unknown", algorithm: Algorithm("mediancut"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewExtractor(tt.algorithm)
			if tt.wantErr {
				if err == nil {
					t.Error("NewExtractor expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExtractor returned error: %v", err)
			}
			if extractor == nil {
				t.Fatal("NewExtractor returned nil extractor")
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ExtractorConfig
		wantErr bool
	}{
		{
			name:   "default config valid",
			config: DefaultExtractorConfig(),
		},
		{
			name:    "bad algorithm",
			config:  ExtractorConfig{Algorithm: "sparkle", ColorCount: 5},
			wantErr: true,
		},
		{
			name:    "count too small",
			config:  ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: 0},
			wantErr: true,
		},
		{
			name:    "count too large",
			config:  ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: 257},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate returned error: %v", err)
			}
		})
	}
}

func TestSamplePixels(t *testing.T) {
	img := solidImage(4, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	dataset := SamplePixels(img)

	if len(dataset) != 12 {
		t.Fatalf("SamplePixels returned %d observations, want 12", len(dataset))
	}

	coords := dataset[0].Coordinates()
	if math.Abs(coords[0]-10.0/255.0) > 1e-9 {
		t.Errorf("first channel = %f, want %f", coords[0], 10.0/255.0)
	}
}

func TestSamplePixelsSkipsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 0})

	if got := len(SamplePixels(img)); got != 1 {
		t.Errorf("SamplePixels returned %d observations, want 1", got)
	}
}
