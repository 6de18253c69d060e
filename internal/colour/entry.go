package colour

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is the display form of one extracted cluster: formatted
// descriptors plus the values the sort modes order by. Entries are
// immutable once built and live only for the duration of one render.
type PaletteEntry struct {
	// Hex is the rounded, zero-padded lowercase hex string, e.g. "#1a2b3c".
	Hex string
	// RGB holds the rounded 8-bit channel values.
	RGB RGB
	// Saturation is the HSV saturation of the entry colour, in [0, 1].
	Saturation float64
	// Luminance is the WCAG relative luminance, in [0, 1].
	Luminance float64
	// Frequency is the cluster's share of all sampled pixels, in [0, 1].
	Frequency float64
	// Cluster is the index of the source cluster, used to break sort ties.
	Cluster int
}

// Entries builds the display entries for every colour in the palette,
// in original cluster order.
func (p *Palette) Entries() []PaletteEntry {
	entries := make([]PaletteEntry, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		col := colorful.Color{
			R: float64(rgb.R) / 255.0,
			G: float64(rgb.G) / 255.0,
			B: float64(rgb.B) / 255.0,
		}
		_, s, _ := col.Hsv()
		entries[i] = PaletteEntry{
			Hex:        rgb.Hex(),
			RGB:        rgb,
			Saturation: s,
			Luminance:  Luminance(c),
			Frequency:  p.Weight(i),
			Cluster:    i,
		}
	}
	return entries
}

// SortMode selects the ordering applied to palette entries.
type SortMode string

const (
	// SortFrequency orders entries by descending pixel share.
	SortFrequency SortMode = "frequency"

	// SortLuminance orders entries by descending perceptual luminance.
	SortLuminance SortMode = "luminance"

	// SortHue orders entries by ascending HSL hue.
	SortHue SortMode = "hue"

	// SortLightness orders entries by ascending HSL lightness.
	SortLightness SortMode = "lightness"

	// SortSaturation orders entries by ascending HSL saturation.
	SortSaturation SortMode = "saturation"
)

// ValidSortModes returns the list of recognised sort modes.
func ValidSortModes() []SortMode {
	return []SortMode{SortFrequency, SortLuminance, SortHue, SortLightness, SortSaturation}
}

// ParseSortMode parses a sort mode name. An empty string selects SortFrequency.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortFrequency, nil
	}
	mode := SortMode(s)
	if slices.Contains(ValidSortModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("unknown sort mode: %s (valid modes: %v)", s, ValidSortModes())
}

// SortEntries orders entries according to mode. Every mode is a total
// order: equal keys fall back to the original cluster index.
func SortEntries(entries []PaletteEntry, mode SortMode) {
	key := func(e PaletteEntry) float64 {
		switch mode {
		case SortLuminance:
			return -e.Luminance
		case SortHue:
			h, _, _ := hsl(e.RGB)
			return h
		case SortLightness:
			_, _, l := hsl(e.RGB)
			return l
		case SortSaturation:
			_, s, _ := hsl(e.RGB)
			return s
		default:
			return -e.Frequency
		}
	}

	slices.SortStableFunc(entries, func(a, b PaletteEntry) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return a.Cluster - b.Cluster
		}
	})
}

// hsl returns the HSL components of an RGB triple.
// Hue is in degrees [0, 360), saturation and lightness in [0, 1].
func hsl(rgb RGB) (h, s, l float64) {
	col := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	return col.Hsl()
}
