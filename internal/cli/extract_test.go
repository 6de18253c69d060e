// Package cli provides the command-line interface for palettegen.
package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ssokvathika-ui/palettegen/internal/colour"
)

func testEntries() []colour.PaletteEntry {
	return []colour.PaletteEntry{
		{Hex: "#ff0000", RGB: colour.RGB{R: 255}, Saturation: 1.0, Frequency: 0.75, Cluster: 0},
		{Hex: "#0000ff", RGB: colour.RGB{B: 255}, Saturation: 1.0, Frequency: 0.25, Cluster: 1},
	}
}

func TestFormatEntriesHex(t *testing.T) {
	output, err := formatEntries(testEntries(), "hex", false)
	if err != nil {
		t.Fatalf("formatEntries returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "#ff0000") || !strings.Contains(lines[0], "75.0%") {
		t.Errorf("first line = %q, want hex and share", lines[0])
	}
}

func TestFormatEntriesRGB(t *testing.T) {
	output, err := formatEntries(testEntries(), "rgb", false)
	if err != nil {
		t.Fatalf("formatEntries returned error: %v", err)
	}
	if !strings.Contains(output, "rgb(255, 0, 0)") {
		t.Errorf("output missing rgb triple: %q", output)
	}
}

func TestFormatEntriesJSON(t *testing.T) {
	output, err := formatEntries(testEntries(), "json", false)
	if err != nil {
		t.Fatalf("formatEntries returned error: %v", err)
	}

	var decoded colour.PaletteJSON
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("count = %d, want 2", decoded.Count)
	}
	if decoded.Colors[1].Hex != "#0000ff" {
		t.Errorf("second colour = %s, want #0000ff", decoded.Colors[1].Hex)
	}
}

func TestFormatEntriesPreview(t *testing.T) {
	output, err := formatEntries(testEntries(), "hex", true)
	if err != nil {
		t.Fatalf("formatEntries returned error: %v", err)
	}
	if !strings.Contains(output, "\033[48;2;255;0;0m") {
		t.Error("preview output missing ANSI background escape")
	}
}

func TestFormatEntriesUnsupported(t *testing.T) {
	if _, err := formatEntries(testEntries(), "yaml", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}
