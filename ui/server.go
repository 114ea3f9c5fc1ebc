// Package ui serves the upload form, the sheet preview and the deck download.
package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"prizedeck/app"
	"prizedeck/internal/config"
	"prizedeck/internal/errors"
	"prizedeck/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/css/*.css
var embeddedFiles embed.FS

// Server represents the web server
type Server struct {
	router    *gin.Engine
	templates *template.Template
	deck      *app.DeckService
	uploads   ports.UploadStore
	cfg       config.ServerConfig
	log       *zap.Logger
}

// NewServer creates a server with its routes registered
func NewServer(deck *app.DeckService, uploads ports.UploadStore, cfg config.ServerConfig, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		deck:      deck,
		uploads:   uploads,
		cfg:       cfg,
		log:       log.Named("ui"),
	}
	// file parts beyond this spill to temporary files
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes()

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() error {
	s.router.Use(RequestLogger(s.log), gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return errors.Wrap(err, "failed to create static filesystem")
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	// Form flow
	s.router.GET("/", s.handleIndex)
	uploads := s.router.Group("/uploads", LimitBody(s.requestLimit(), func(c *gin.Context, err error) {
		s.renderError(c, err, "/")
	}))
	uploads.POST("", s.handleUpload)
	uploads.GET("/:id", s.handleUploadView)
	uploads.POST("/:id/deck", s.handleGenerate)

	// JSON API
	api := s.router.Group("/api", LimitBody(s.requestLimit(), s.apiError))
	api.POST("/sheets", s.handleAPISheets)
	api.POST("/decks", s.handleAPIDecks)
}

// requestLimit caps a whole request: two files plus form fields.
func (s *Server) requestLimit() int64 {
	return 2*s.cfg.MaxUploadBytes() + 1<<20
}
