// Package insight provides optional AI-assisted material analysis of an
// uploaded image using Google's Gemini models.
package insight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	// APIKeyEnvVar is the environment variable holding the Gemini API key.
	APIKeyEnvVar = "GEMINI_API_KEY"

	// materialPrompt asks the model to reason about surface materials in the
	// image, matching the interior-design analysis this tool grew out of.
	materialPrompt = "You are an interior architect. Analyze this image for materials. " +
		"List primary textures (e.g., velvet, brushed concrete, wood), " +
		"describe if they absorb or reflect light, and suggest one " +
		"missing texture (like a thick wool throw) to balance the room."
)

// Analyzer runs material analysis against the Gemini API.
type Analyzer struct {
	apiKey string
	model  string
	logger hclog.Logger
}

// Options configures an Analyzer.
type Options struct {
	// APIKey is the Gemini API key. Falls back to the GEMINI_API_KEY
	// environment variable when empty.
	APIKey string

	// Model overrides the default Gemini model.
	Model string

	// Logger receives debug output. A no-op logger is used when nil.
	Logger hclog.Logger
}

// New creates an Analyzer. Returns nil (feature disabled) when no API key
// is available from options or the environment.
func New(opts Options) *Analyzer {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv(APIKeyEnvVar)
	}
	if key == "" {
		return nil
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Analyzer{
		apiKey: key,
		model:  model,
		logger: logger.Named("insight"),
	}
}

// Enabled reports whether the analyzer can make API calls.
// A nil Analyzer is a valid disabled analyzer.
func (a *Analyzer) Enabled() bool {
	return a != nil
}

// AnalyzeMaterials sends the image to Gemini and returns the material
// analysis text. imageData must be an encoded image, mimeType its MIME type
// (e.g. "image/png").
func (a *Analyzer) AnalyzeMaterials(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("material analysis is not configured: set %s", APIKeyEnvVar)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	a.logger.Debug("requesting material analysis", "model", a.model, "bytes", len(imageData))

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: materialPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		},
	}

	response, err := client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("material analysis failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no analysis in response")
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no analysis text in response")
	}

	return text, nil
}
