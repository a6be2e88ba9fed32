package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
)

type columnRequest struct {
	Title string `json:"title"`
	After string `json:"after"`
}

type moveRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// handleGetBoard returns the board, filtered by ?search= when given
func (s *Server) handleGetBoard(c *gin.Context) {
	view := s.board.Filter(c.Query("search"))
	respondSuccess(c, http.StatusOK, gin.H{
		"columns":  view.Columns,
		"diverged": s.board.Diverged(),
	})
}

func (s *Server) handleReload(c *gin.Context) {
	if err := s.board.Load(c.Request.Context()); err != nil {
		s.respondError(c, err)
		return
	}
	s.handleGetBoard(c)
}

// handleNotices drains the pending notices
func (s *Server) handleNotices(c *gin.Context) {
	drained := s.notices.Drain()
	out := make([]gin.H, 0, len(drained))
	for _, n := range drained {
		out = append(out, gin.H{"level": n.Level.String(), "message": n.Message})
	}
	respondSuccess(c, http.StatusOK, gin.H{"notices": out})
}

func (s *Server) handleAddColumn(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	col, err := s.board.AddColumn(c.Request.Context(), sessionOf(c), req.Title, req.After)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"column": col})
}

// handleDeleteColumn requires ?confirm=true
func (s *Server) handleDeleteColumn(c *gin.Context) {
	err := s.board.DeleteColumn(c.Request.Context(), sessionOf(c), c.Param("key"), confirmation(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleAddLead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.board.AddCard(c.Request.Context(), sessionOf(c), &lead)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"lead": created})
}

// handleEditLead overwrites the whole lead; an empty stage keeps the column
func (s *Server) handleEditLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := s.board.EditCard(c.Request.Context(), sessionOf(c), id, &lead)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"lead": updated})
}

func (s *Server) handleDeleteLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.board.DeleteCard(c.Request.Context(), sessionOf(c), id, confirmation(c)); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleMoveLead applies the move and answers 202: the stage is written in
// the background
func (s *Server) handleMoveLead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.board.MoveCard(c.Request.Context(), id, req.From, req.To); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) handleListActivity(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	records, err := s.activity.List(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": records})
}

func confirmation(c *gin.Context) board.Confirmer {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return board.Confirmed(ok)
}
