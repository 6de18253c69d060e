package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// analogousOffset is the hue rotation used for analogous suggestions,
// thirty degrees either side on the colour wheel.
const analogousOffset = 30.0

// Complementary returns the colour opposite rgb on the HSL colour wheel,
// keeping saturation and lightness.
func Complementary(rgb RGB) RGB {
	return rotateHue(rgb, 180)
}

// Analogous returns the two colours thirty degrees either side of rgb on
// the HSL colour wheel.
func Analogous(rgb RGB) [2]RGB {
	return [2]RGB{
		rotateHue(rgb, analogousOffset),
		rotateHue(rgb, -analogousOffset),
	}
}

// rotateHue rotates the hue of rgb by degrees, wrapping around the wheel.
func rotateHue(rgb RGB, degrees float64) RGB {
	col := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, l := col.Hsl()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}

	rotated := colorful.Hsl(h, s, l).Clamped()
	return RGB{
		R: channelByte(rotated.R),
		G: channelByte(rotated.G),
		B: channelByte(rotated.B),
	}
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// IsAnalogous checks if two hues are analogous (within 30 degrees).
func IsAnalogous(h1, h2 float64) bool {
	return HueDistance(h1, h2) <= analogousOffset
}
