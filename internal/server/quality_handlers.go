package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

type createCheckRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	IsEv         bool   `json:"isEv"`
	Passed       *bool  `json:"passed" binding:"required"`
	Comment      string `json:"comment"`
}

func (s *Server) handleListChecks(c *gin.Context) {
	checks, err := s.quality.ListChecksForDate(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checks)
}

func (s *Server) handleCreateCheck(c *gin.Context) {
	var req createCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	check, err := s.quality.CreateCheck(c.Request.Context(), service.QualityCheckInput{
		LicensePlate: req.LicensePlate,
		IsEv:         req.IsEv,
		Passed:       *req.Passed,
		Comment:      req.Comment,
		CheckedBy:    actor(c),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, check)
}

func (s *Server) handleDeleteCheck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.quality.DeleteCheck(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListDriverTasks(c *gin.Context) {
	tasks, err := s.quality.ListOpenDriverTasks(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCompleteDriverTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := s.quality.CompleteDriverTask(c.Request.Context(), id, actor(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
