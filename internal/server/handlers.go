package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ssokvathika-ui/palettegen/internal/colour"
	imgutil "github.com/ssokvathika-ui/palettegen/internal/image"
)

// uploadFormats are the image formats accepted from the upload form.
var uploadFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"bmp":  "image/bmp",
}

// viewData is the template model for the index page.
type viewData struct {
	Colours    int
	MinColours int
	MaxColours int
	Sort       colour.SortMode
	SortModes  []colour.SortMode
	Algorithm  colour.Algorithm
	Algorithms []colour.Algorithm

	Error          string
	Result         *resultView
	History        []HistoryRecord
	InsightEnabled bool
}

// resultView is the rendered outcome of one upload.
type resultView struct {
	FileName  string
	ImageURI  template.URL
	Entries   []entryView
	SwatchURL string
	Analysis  string
}

// entryView is one swatch with its formatted descriptors.
type entryView struct {
	Hex           string
	RGBText       string
	SaturationPct string
	FrequencyPct  string
	LabelColor    string
	Complementary string
	Analogous     [2]string
}

// extraction holds the intermediate products of one processed upload.
type extraction struct {
	fileName string
	data     []byte
	mimeType string
	entries  []colour.PaletteEntry
}

// handleIndex renders the empty upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newViewData())
}

// handleUpload runs the full pipeline for one uploaded image and renders
// the palette next to it. Decode failures produce a user-visible message
// and no partial palette.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data := s.newViewData()

	ex, err := s.processUpload(r, data)
	if err != nil {
		s.logger.Warn("upload rejected", "error", err)
		data.Error = err.Error()
		s.renderPage(w, http.StatusUnprocessableEntity, data)
		return
	}

	result := &resultView{
		FileName: ex.fileName,
		ImageURI: template.URL(fmt.Sprintf("data:%s;base64,%s",
			ex.mimeType, base64.StdEncoding.EncodeToString(ex.data))),
	}

	hexes := make([]string, 0, len(ex.entries))
	for _, e := range ex.entries {
		ana := colour.Analogous(e.RGB)
		result.Entries = append(result.Entries, entryView{
			Hex:           e.Hex,
			RGBText:       e.RGB.String(),
			SaturationPct: fmt.Sprintf("%.0f%%", e.Saturation*100),
			FrequencyPct:  fmt.Sprintf("%.1f%%", e.Frequency*100),
			LabelColor:    labelColor(e),
			Complementary: colour.Complementary(e.RGB).Hex(),
			Analogous:     [2]string{ana[0].Hex(), ana[1].Hex()},
		})
		hexes = append(hexes, e.Hex)
	}
	result.SwatchURL = swatchURL(hexes)

	s.history.Add(HistoryRecord{Name: ex.fileName, Colors: hexes})
	data.History = s.history.All()

	if data.InsightEnabled && r.FormValue("analyze") != "" {
		analysis, err := s.analyzer.AnalyzeMaterials(r.Context(), ex.data, ex.mimeType)
		if err != nil {
			s.logger.Warn("material analysis failed", "error", err)
			result.Analysis = fmt.Sprintf("Material analysis unavailable: %v", err)
		} else {
			result.Analysis = analysis
		}
	}

	data.Result = result
	s.renderPage(w, http.StatusOK, data)
}

// handleAPIPalette runs the same pipeline but responds with JSON.
func (s *Server) handleAPIPalette(w http.ResponseWriter, r *http.Request) {
	ex, err := s.processUpload(r, s.newViewData())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	out := colour.PaletteJSON{Count: len(ex.entries)}
	for _, e := range ex.entries {
		out.Colors = append(out.Colors, colour.ColorJSON{
			Hex:        e.Hex,
			RGB:        e.RGB,
			Saturation: e.Saturation,
			Frequency:  e.Frequency,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// handleHistoryClear empties the session history.
func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	s.history.Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// processUpload parses the form, decodes the image and extracts the sorted
// palette entries. Form state is written back into data so the controls
// keep their values on re-render.
func (s *Server) processUpload(r *http.Request, data *viewData) (*extraction, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	data.Colours = clampColours(r.FormValue("colours"))

	sortMode, err := colour.ParseSortMode(r.FormValue("sort"))
	if err != nil {
		return nil, err
	}
	data.Sort = sortMode

	algorithm := colour.Algorithm(r.FormValue("algorithm"))
	if algorithm == "" {
		algorithm = colour.AlgorithmKMeans
	}
	data.Algorithm = algorithm

	config := colour.ExtractorConfig{Algorithm: algorithm, ColorCount: data.Colours}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("no image uploaded")
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	img, format, err := imgutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q as an image: upload a JPG, PNG or BMP file", header.Filename)
	}
	mimeType, ok := uploadFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q: upload a JPG, PNG or BMP file", format)
	}

	s.logger.Info("extracting palette",
		"file", header.Filename, "format", format,
		"colours", data.Colours, "algorithm", algorithm, "sort", sortMode)

	extractor, err := colour.NewExtractor(algorithm)
	if err != nil {
		return nil, err
	}

	small := imgutil.Downscale(img, imgutil.DefaultClusterSize)
	palette, err := extractor.Extract(small, data.Colours)
	if err != nil {
		return nil, fmt.Errorf("palette extraction failed: %w", err)
	}

	entries := palette.Entries()
	colour.SortEntries(entries, sortMode)

	return &extraction{
		fileName: header.Filename,
		data:     raw,
		mimeType: mimeType,
		entries:  entries,
	}, nil
}

// clampColours parses the K control, clamping into the slider range.
func clampColours(raw string) int {
	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultColours
	}
	if k < MinColours {
		return MinColours
	}
	if k > MaxColours {
		return MaxColours
	}
	return k
}

// labelColor picks black or white text for a swatch background, whichever
// gives the higher WCAG contrast ratio.
func labelColor(e colour.PaletteEntry) string {
	bg := color.RGBA{R: e.RGB.R, G: e.RGB.G, B: e.RGB.B, A: 255}
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	if colour.ContrastRatio(bg, black) >= colour.ContrastRatio(bg, white) {
		return "#000000"
	}
	return "#ffffff"
}

// swatchURL builds the export link for the given hex colours.
func swatchURL(hexes []string) string {
	stripped := make([]string, len(hexes))
	for i, h := range hexes {
		stripped[i] = strings.TrimPrefix(h, "#")
	}
	q := url.Values{"colors": {strings.Join(stripped, ",")}}
	return "/swatch.png?" + q.Encode()
}
