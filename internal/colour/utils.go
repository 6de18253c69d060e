// Package colour provides utility functions for colour manipulation and analysis.
package colour

import (
	"image/color"
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	// Convert from 16-bit to 8-bit.
	rf := float64(r>>8) / 255.0
	gf := float64(g>>8) / 255.0
	bf := float64(b>>8) / 255.0

	// Apply gamma correction.
	rf = gammaCorrect(rf)
	gf = gammaCorrect(gf)
	bf = gammaCorrect(bf)

	// Calculate luminance using WCAG formula.
	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// luminanceFromRGB is a convenience wrapper for RGB values.
func luminanceFromRGB(rgb RGB) float64 {
	return Luminance(color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// Meets WCAG AA standard for normal text at 4.5:1, large text at 3:1.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// MeetsWCAGAA reports whether the contrast ratio between two colours meets
// the WCAG AA threshold for normal text (4.5:1).
func MeetsWCAGAA(c1, c2 color.Color) bool {
	return ContrastRatio(c1, c2) >= 4.5
}
