// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Palette represents a collection of colours extracted from an image.
// Weights carry the relative cluster sizes and always sum to 1.0.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and uniform weights.
func NewPalette(colors []color.Color) *Palette {
	weights := make([]float64, len(colors))
	if len(colors) > 0 {
		w := 1.0 / float64(len(colors))
		for i := range weights {
			weights[i] = w
		}
	}
	return &Palette{Colors: colors, Weights: weights}
}

// NewPaletteWithWeights creates a new Palette with explicit cluster weights.
// Weights are normalised so they sum to 1.0.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	normalised := make([]float64, len(weights))
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total > 0 {
		for i, w := range weights {
			normalised[i] = w / total
		}
	}
	return &Palette{Colors: colors, Weights: normalised}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Weight returns the frequency share of the colour at index.
// Returns 0 for out-of-range indexes.
func (p *Palette) Weight(index int) float64 {
	if index < 0 || index >= len(p.Weights) {
		return 0
	}
	return p.Weights[index]
}

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a hex colour string of the form "#rrggbb" (leading '#'
// optional, case insensitive) back into an RGB triple.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}, fmt.Errorf("invalid hex colour %q: bad digit", s)
		}
		channels[i] = hi<<4 | lo
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = ToRGB(c).Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Saturation float64 `json:"saturation"`
	Frequency  float64 `json:"frequency"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	entries := p.Entries()
	colors := make([]ColorJSON, len(entries))
	for i, e := range entries {
		colors[i] = ColorJSON{
			Hex:        e.Hex,
			RGB:        e.RGB,
			Saturation: e.Saturation,
			Frequency:  e.Frequency,
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(colors),
		Colors: colors,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		result += fmt.Sprintf("  %2d: %s (%s) %.1f%%\n", i+1, rgb.Hex(), rgb.String(), p.Weight(i)*100)
	}
	return result
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (color.Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return nil, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}
