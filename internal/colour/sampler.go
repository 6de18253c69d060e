package colour

import (
	"image"

	"github.com/muesli/clusters"
)

// SamplePixels flattens an image into a clustering dataset, one observation
// per grid cell with channel intensities normalised to [0, 1]. Fully
// transparent pixels carry no colour information and are skipped. Order is
// row-major but irrelevant to clustering.
func SamplePixels(img image.Image) clusters.Observations {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	dataset := make(clusters.Observations, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r>>8) / 255.0,
				float64(g>>8) / 255.0,
				float64(b>>8) / 255.0,
			})
		}
	}
	return dataset
}
