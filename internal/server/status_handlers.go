package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type setStatusRequest struct {
	ModuleName string `json:"moduleName" binding:"required"`
	Date       string `json:"date" binding:"required"`
	IsDone     bool   `json:"isDone"`
}

func (s *Server) handleDailyStatus(c *gin.Context) {
	status, err := s.progress.GetDailyStatus(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleGetStatuses(c *gin.Context) {
	statuses, err := s.status.GetStatuses(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (s *Server) handleSetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := s.status.SetStatus(c.Request.Context(), req.ModuleName, req.Date, req.IsDone, actor(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
