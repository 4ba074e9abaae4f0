package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haiderzaidi/allaboutme/internal/server/memories"
)

type memoryCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	IsPrivate   bool     `json:"isPrivate"`
}

type memoryUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
	Type        *string   `json:"type"`
	Image       *string   `json:"image"`
	Tags        *[]string `json:"tags"`
	IsPrivate   *bool     `json:"isPrivate"`
}

func (s *Server) handleCreateMemory(c *gin.Context) {
	var req memoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	memory, err := s.memories.Create(c.Request.Context(), requesterID(c), memories.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Type:        req.Type,
		Image:       req.Image,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "memory": memory})
}

func (s *Server) handleGetMemory(c *gin.Context) {
	memory, err := s.memories.GetByID(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memory": memory})
}

func (s *Server) handleListOwn(c *gin.Context) {
	// the owner's listing includes private records unless explicitly
	// narrowed
	includePrivate := c.DefaultQuery("includePrivate", "true") != "false"

	list, err := s.memories.ListByOwner(c.Request.Context(), requesterID(c), includePrivate)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memories": list})
}

func (s *Server) handleListPublic(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	list, err := s.memories.ListPublic(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memories": list})
}

func (s *Server) handleSearch(c *gin.Context) {
	includePrivate := c.Query("includePrivate") == "true"

	list, err := s.memories.Search(c.Request.Context(), c.Query("q"), requesterID(c), includePrivate)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memories": list})
}

func (s *Server) handleUpdateMemory(c *gin.Context) {
	var req memoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	memory, err := s.memories.Update(c.Request.Context(), c.Param("id"), requesterID(c), memories.Patch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Type:        req.Type,
		Image:       req.Image,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "memory": memory})
}

func (s *Server) handleDeleteMemory(c *gin.Context) {
	if err := s.memories.Delete(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Memory deleted"})
}
