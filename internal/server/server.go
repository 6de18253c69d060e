// Package server provides the web UI for interactive palette extraction:
// an upload form, the rendered palette, and small JSON/PNG export endpoints.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ssokvathika-ui/palettegen/internal/colour"
	"github.com/ssokvathika-ui/palettegen/internal/insight"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	// DefaultListenAddr is the default bind address for the web UI.
	DefaultListenAddr = "127.0.0.1:8480"

	// maxUploadBytes caps the multipart upload size (32 MiB).
	maxUploadBytes = 32 << 20

	// MinColours and MaxColours bound the K slider.
	MinColours = 2
	MaxColours = 10

	// DefaultColours is the initial K slider position.
	DefaultColours = 5
)

// Options configures a Server.
type Options struct {
	// ListenAddr is the address to bind. Defaults to DefaultListenAddr.
	ListenAddr string

	// Logger receives request and pipeline logging. A default logger is
	// created when nil.
	Logger hclog.Logger

	// Analyzer enables the optional material-analysis section when non-nil.
	Analyzer *insight.Analyzer
}

// Server serves the palette extraction UI. Each request is processed
// synchronously; the only cross-request state is the palette history.
type Server struct {
	addr     string
	logger   hclog.Logger
	analyzer *insight.Analyzer
	history  *History
	tmpl     *template.Template
}

// New creates a Server from options.
func New(opts Options) (*Server, error) {
	addr := opts.ListenAddr
	if addr == "" {
		addr = DefaultListenAddr
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "palettegen"})
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		addr:     addr,
		logger:   logger.Named("server"),
		analyzer: opts.Analyzer,
		history:  NewHistory(),
		tmpl:     tmpl,
	}, nil
}

// Routes returns the HTTP handler for the UI.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleUpload)
	mux.HandleFunc("GET /swatch.png", s.handleSwatchPNG)
	mux.HandleFunc("POST /api/palette", s.handleAPIPalette)
	mux.HandleFunc("POST /history/clear", s.handleHistoryClear)
	return s.logRequests(mux)
}

// ListenAndServe starts the HTTP server and blocks until it exits.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web UI", "addr", s.addr)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// logRequests wraps a handler with access logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// renderPage executes the index template with the given view data.
func (s *Server) renderPage(w http.ResponseWriter, status int, data *viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		s.logger.Error("template render failed", "error", err)
	}
}

// newViewData builds the default view state for the upload form.
func (s *Server) newViewData() *viewData {
	return &viewData{
		Colours:        DefaultColours,
		MinColours:     MinColours,
		MaxColours:     MaxColours,
		Sort:           colour.SortFrequency,
		SortModes:      colour.ValidSortModes(),
		Algorithm:      colour.AlgorithmKMeans,
		Algorithms:     colour.ValidAlgorithms(),
		InsightEnabled: s.analyzer.Enabled(),
		History:        s.history.All(),
	}
}
