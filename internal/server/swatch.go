package server

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"

	"github.com/ssokvathika-ui/palettegen/internal/colour"
)

const (
	// swatchTileSize is the edge length of one exported swatch tile in pixels.
	swatchTileSize = 64

	// maxSwatchColours caps the strip length. Matches the extractor's
	// upper bound, so any palette this server produced can be exported.
	maxSwatchColours = 256
)

// handleSwatchPNG renders the palette named in the colors query parameter
// as a horizontal swatch strip PNG, one tile per colour.
func (s *Server) handleSwatchPNG(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("colors")
	if raw == "" {
		http.Error(w, "missing colors parameter", http.StatusBadRequest)
		return
	}

	parts := strings.Split(raw, ",")
	if len(parts) > maxSwatchColours {
		http.Error(w, fmt.Sprintf("too many colours: %d (maximum: %d)", len(parts), maxSwatchColours), http.StatusBadRequest)
		return
	}

	var palette []colour.RGB
	for _, part := range parts {
		rgb, err := colour.ParseHex(part)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid colour %q", part), http.StatusBadRequest)
			return
		}
		palette = append(palette, rgb)
	}

	img := renderSwatchStrip(palette, swatchTileSize)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="palette.png"`)
	if err := png.Encode(w, img); err != nil {
		s.logger.Error("swatch encode failed", "error", err)
	}
}

// renderSwatchStrip paints one square tile per colour into a strip.
func renderSwatchStrip(palette []colour.RGB, tileSize int) *image.RGBA {
	if tileSize <= 0 {
		tileSize = swatchTileSize
	}

	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		x0 := i * tileSize
		for y := 0; y < tileSize; y++ {
			for x := x0; x < x0+tileSize; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}
