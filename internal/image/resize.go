package image

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultClusterSize is the bounding box images are scaled into before
// clustering. Palettes are insensitive to resolution, so a small working
// copy keeps extraction time flat regardless of input size.
const DefaultClusterSize = 150

// Downscale resamples img so that neither dimension exceeds maxDim,
// preserving aspect ratio. Images already within the bound are returned
// unchanged. Uses approximate bilinear interpolation.
func Downscale(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	// Scale the longest edge down to maxDim.
	var dw, dh int
	if w >= h {
		dw = maxDim
		dh = h * maxDim / w
	} else {
		dh = maxDim
		dw = w * maxDim / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
