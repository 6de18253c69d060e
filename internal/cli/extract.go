package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssokvathika-ui/palettegen/internal/colour"
	"github.com/ssokvathika-ui/palettegen/internal/image"
)

var (
	// Extract command flags
	extractColours     int
	extractAlgorithm   string
	extractSort        string
	extractFormat      string
	extractOutput      string
	extractShowPreview bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image without starting the web UI.

The extract command analyses an image and prints the dominant colours with
their pixel share. The image may be a local file or an HTTP(S) URL.

Supported image formats: JPEG, PNG, BMP, GIF, WebP

Examples:
  # Extract 5 colours (default) from an image
  palettegen extract photo.jpg

  # Extract 8 colours ordered by luminance, with terminal previews
  palettegen extract --colours 8 --sort luminance --preview photo.png

  # Extract colours and output as JSON
  palettegen extract --format json photo.jpg

  # Extract colours and save to a file
  palettegen extract --output palette.txt photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 5, "number of colours to extract (1-256)")
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", "kmeans", "extraction algorithm (kmeans, dominant)")
	extractCmd.Flags().StringVarP(&extractSort, "sort", "s", "frequency", "sort mode (frequency, luminance, hue, lightness, saturation)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	logger := loggerFromFlags(cmd)

	// Validate the image path
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	// Validate configuration
	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(extractAlgorithm),
		ColorCount: extractColours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sortMode, err := colour.ParseSortMode(extractSort)
	if err != nil {
		return err
	}

	// Load the image
	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	// Extract the colour palette
	extractor, err := colour.NewExtractor(config.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	small := image.Downscale(img, image.DefaultClusterSize)
	palette, err := extractor.Extract(small, extractColours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	logger.Debug("extraction complete", "colours", palette.Len())

	entries := palette.Entries()
	colour.SortEntries(entries, sortMode)

	output, err := formatEntries(entries, extractFormat, extractShowPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Write output to file or stdout
	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("palette written", "path", extractOutput)
	} else {
		fmt.Print(output)
	}

	return nil
}

// formatEntries formats sorted palette entries according to the specified format.
func formatEntries(entries []colour.PaletteEntry, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(entries, showPreview), nil
	case "rgb":
		return formatRGB(entries, showPreview), nil
	case "json":
		return formatJSON(entries)
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the entries as hex colour codes with their pixel share.
func formatHex(entries []colour.PaletteEntry, showPreview bool) string {
	output := ""
	for _, e := range entries {
		if showPreview {
			output += colour.ColourPreview(e.RGB, 8) + "  "
		}
		output += fmt.Sprintf("%s  %5.1f%%\n", e.Hex, e.Frequency*100)
	}
	return output
}

// formatRGB formats the entries as RGB values with their pixel share.
func formatRGB(entries []colour.PaletteEntry, showPreview bool) string {
	output := ""
	for _, e := range entries {
		if showPreview {
			output += colour.ColourPreview(e.RGB, 8) + "  "
		}
		output += fmt.Sprintf("%s  %5.1f%%\n", e.RGB.String(), e.Frequency*100)
	}
	return output
}

// formatJSON formats the entries as an indented JSON palette.
func formatJSON(entries []colour.PaletteEntry) (string, error) {
	out := colour.PaletteJSON{Count: len(entries)}
	for _, e := range entries {
		out.Colors = append(out.Colors, colour.ColorJSON{
			Hex:        e.Hex,
			RGB:        e.RGB,
			Saturation: e.Saturation,
			Frequency:  e.Frequency,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
