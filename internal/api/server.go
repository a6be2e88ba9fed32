// Package api serves the board to the browser front end as JSON over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/types"
)

const (
	headerUserID    = "X-User-ID"
	headerRequestID = "X-Request-ID"

	ctxSession   = "session"
	ctxRequestID = "request_id"
)

// SessionLookup resolves the user named by the X-User-ID header
type SessionLookup interface {
	ForUser(ctx context.Context, id types.UserID) (session.Session, error)
}

// ActivityLister reads the activity log
type ActivityLister interface {
	List(ctx context.Context, limit int) ([]models.Activity, error)
}

// Server provides HTTP handlers for the lead board
type Server struct {
	engine    *gin.Engine
	board     *board.Manager
	sessions  SessionLookup
	activity  ActivityLister
	notices   *board.Notices
	logger    *slog.Logger
	staticDir string
}

// Deps are the services the server needs
type Deps struct {
	Board    *board.Manager
	Sessions SessionLookup
	Activity ActivityLister
	Notices  *board.Notices
	Logger   *slog.Logger

	// StaticDir holds the built browser front end; empty means API only
	StaticDir string
}

// New constructs the HTTP server with routes and middleware configured
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Notices == nil {
		d.Notices = board.NewNotices()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:    router,
		board:     d.Board,
		sessions:  d.Sessions,
		activity:  d.Activity,
		notices:   d.Notices,
		logger:    d.Logger,
		staticDir: d.StaticDir,
	}
	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/api/healthz", s.handleHealth)

	api := s.engine.Group("/api", s.requireSession)
	{
		api.GET("/board", s.handleGetBoard)
		api.POST("/board/reload", s.handleReload)
		api.GET("/notices", s.handleNotices)

		api.POST("/columns", s.handleAddColumn)
		api.DELETE("/columns/:key", s.handleDeleteColumn)

		api.POST("/leads", s.handleAddLead)
		api.PUT("/leads/:id", s.handleEditLead)
		api.DELETE("/leads/:id", s.handleDeleteLead)
		api.POST("/leads/:id/move", s.handleMoveLead)

		api.GET("/activity", s.handleListActivity)
	}

	s.mountStatic()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestID tags every request with an id, reusing the caller's when given
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// requireSession resolves X-User-ID into a session or aborts with 401
func (s *Server) requireSession(c *gin.Context) {
	raw := c.GetHeader(headerUserID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + headerUserID})
		return
	}
	sess, err := s.sessions.ForUser(c.Request.Context(), types.UserID(id))
	if err != nil {
		s.logger.Warn("session lookup failed", "user_id", id, "error", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	c.Set(ctxSession, sess)
	c.Next()
}

func sessionOf(c *gin.Context) session.Session {
	v, _ := c.Get(ctxSession)
	sess, _ := v.(session.Session)
	return sess
}

// parseID converts a path parameter to a lead id
func parseID(c *gin.Context, name string) (types.LeadID, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return types.LeadID(id), true
}

// respondError logs the error and returns a JSON payload with the status
// derived from it
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(ctxRequestID)),
			slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

// mountStatic serves the built browser front end when configured
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		return
	}
	indexPath := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		s.logger.Warn("index.html not found; API only mode", "path", indexPath, "error", err)
		return
	}

	s.engine.Static("/assets", filepath.Join(s.staticDir, "assets"))
	s.engine.GET("/", func(c *gin.Context) { c.File(indexPath) })
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.File(indexPath)
	})
}
