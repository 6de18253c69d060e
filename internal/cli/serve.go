package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssokvathika-ui/palettegen/internal/insight"
	"github.com/ssokvathika-ui/palettegen/internal/server"
)

var (
	// Serve command flags
	serveListen      string
	serveGenAIKey    string
	serveInsightName string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive web UI",
	Long: `Start the interactive web UI for palette extraction.

Upload a JPG, PNG or BMP image, pick the number of colours and a sort mode,
and the extracted palette is rendered next to the original image. The
palette can be exported as a swatch-strip PNG or fetched as JSON from
POST /api/palette.

Material analysis of the uploaded image is offered when a Gemini API key is
configured via --genai-api-key or the GEMINI_API_KEY environment variable.

Examples:
  # Serve on the default address
  palettegen serve

  # Serve on another port
  palettegen serve --listen 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", server.DefaultListenAddr, "address to bind the web UI to")
	serveCmd.Flags().StringVar(&serveGenAIKey, "genai-api-key", "", "Gemini API key for material analysis (optional)")
	serveCmd.Flags().StringVar(&serveInsightName, "genai-model", "", "Gemini model for material analysis")
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	logger := loggerFromFlags(cmd)

	analyzer := insight.New(insight.Options{
		APIKey: serveGenAIKey,
		Model:  serveInsightName,
		Logger: logger,
	})
	if analyzer.Enabled() {
		logger.Info("material analysis enabled")
	}

	srv, err := server.New(server.Options{
		ListenAddr: serveListen,
		Logger:     logger,
		Analyzer:   analyzer,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.ListenAndServe()
}
