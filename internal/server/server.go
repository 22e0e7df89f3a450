// Package server exposes the analysis pipeline and the education workflow
// over HTTP.
package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/cronkite-edu/cronkite/internal/auth"
	"github.com/cronkite-edu/cronkite/internal/model"
	"github.com/cronkite-edu/cronkite/internal/pipeline"
	"github.com/cronkite-edu/cronkite/internal/source"
	"github.com/cronkite-edu/cronkite/internal/store"
)

// Server wires the pipeline, extractors, and store into HTTP handlers.
type Server struct {
	pipeline *pipeline.Pipeline
	sources  *source.Set
	store    *store.Store // nil when no database is configured
	cfg      *model.Config
}

// New creates a Server. st may be nil: education endpoints then answer 503.
func New(p *pipeline.Pipeline, sources *source.Set, st *store.Store, cfg *model.Config) *Server {
	return &Server{pipeline: p, sources: sources, store: st, cfg: cfg}
}

// Router constructs the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/analyse", s.handleAnalyse)
	r.GET("/youtube/transcript", s.handleTranscript)

	if dir := s.cfg.Server.StaticDir; dir != "" {
		r.StaticFile("/teacher", filepath.Join(dir, "teacher.html"))
		r.StaticFile("/student", filepath.Join(dir, "student.html"))
		r.StaticFile("/app", filepath.Join(dir, "cronkite-edu.html"))
	}

	authed := r.Group("/", auth.Middleware([]byte(s.cfg.Auth.JWTSecret)))
	authed.GET("/modules", s.handleListModules)
	authed.POST("/modules", s.handleCreateModule)
	authed.GET("/modules/:id", s.handleGetModule)
	authed.GET("/modules/:id/assignments", s.handleListAssignments)
	authed.POST("/assignments", s.handleCreateAssignment)
	authed.POST("/student-results", s.handleCreateResult)
	authed.GET("/student-results/:assignment_id", s.handleAssignmentResults)
	authed.GET("/my-results", s.handleMyResults)

	return r
}

// corsMiddleware mirrors the permissive CORS policy of the original
// deployment: the static pages are served cross-origin in development.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "*")
		c.Header("Access-Control-Allow-Headers", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
