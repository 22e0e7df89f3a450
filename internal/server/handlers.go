package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cronkite-edu/cronkite/internal/auth"
	"github.com/cronkite-edu/cronkite/internal/model"
	"github.com/cronkite-edu/cronkite/internal/source"
	"github.com/cronkite-edu/cronkite/internal/store"
)

// analyseRequest carries either raw article text or a URL. Exactly one is
// expected; when both are set, text takes priority.
type analyseRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (s *Server) handleAnalyse(c *gin.Context) {
	var req analyseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON payload"})
		return
	}

	result, err := s.pipeline.Analyse(c.Request.Context(), req.Text, req.URL)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Printf("analyse: %v", err)
		}
		c.JSON(status, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTranscript(c *gin.Context) {
	rawURL := c.Query("url")
	if source.Classify(rawURL) != source.KindYouTube {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Not a valid YouTube URL"})
		return
	}

	text, err := s.sources.YouTube().Extract(c.Request.Context(), rawURL)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcript": text, "length": len(text)})
}

// statusForError maps the error taxonomy onto HTTP status classes: client
// input problems and unextractable content are 400, everything else
// (LLM/search failures, unparseable model output) is 500.
func statusForError(err error) int {
	var validationErr *model.ValidationError
	var extractionErr *model.ExtractionError
	if errors.As(err, &validationErr) || errors.As(err, &extractionErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ── Education endpoints ──────────────────────────────────────────────────

type moduleCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FocusPoint  string `json:"focus_point"`
}

type assignmentCreateRequest struct {
	ModuleID     string `json:"module_id"`
	ArticleURL   string `json:"article_url"`
	ArticleTitle string `json:"article_title"`
}

type resultCreateRequest struct {
	AssignmentID string          `json:"assignment_id"`
	Analysis     json.RawMessage `json:"analysis_json"`
}

// requireStore answers 503 when no database is configured.
func (s *Server) requireStore(c *gin.Context) bool {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "store not configured"})
		return false
	}
	return true
}

func parseID(c *gin.Context, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListModules(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	modules, err := s.store.ListModules(c.Request.Context(), auth.Subject(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, modules)
}

func (s *Server) handleCreateModule(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	var req moduleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "title is required"})
		return
	}
	module, err := s.store.CreateModule(c.Request.Context(), auth.Subject(c), req.Title, req.Description, req.FocusPoint)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, module)
}

func (s *Server) handleGetModule(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	module, err := s.store.GetModule(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Module not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, module)
}

func (s *Server) handleListAssignments(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}
	assignments, err := s.store.ListAssignments(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (s *Server) handleCreateAssignment(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	var req assignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ModuleID == "" || req.ArticleURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "module_id and article_url are required"})
		return
	}
	moduleID, ok := parseID(c, req.ModuleID)
	if !ok {
		return
	}
	assignment, err := s.store.CreateAssignment(c.Request.Context(), moduleID, req.ArticleURL, req.ArticleTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (s *Server) handleCreateResult(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	var req resultCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AssignmentID == "" || len(req.Analysis) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "assignment_id and analysis_json are required"})
		return
	}
	assignmentID, ok := parseID(c, req.AssignmentID)
	if !ok {
		return
	}
	result, err := s.store.CreateStudentResult(c.Request.Context(), auth.Subject(c), assignmentID, req.Analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleAssignmentResults(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id, ok := parseID(c, c.Param("assignment_id"))
	if !ok {
		return
	}
	results, err := s.store.ResultsForAssignment(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleMyResults(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	results, err := s.store.ResultsForStudent(c.Request.Context(), auth.Subject(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}
