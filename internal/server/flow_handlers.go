package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

type createFlowTaskRequest struct {
	LicensePlate string  `json:"licensePlate" binding:"required"`
	IsEv         bool    `json:"isEv"`
	TaskType     string  `json:"taskType" binding:"required"`
	NeedAt       *string `json:"needAt"`
}

type updateFlowTaskRequest struct {
	Completed  *bool   `json:"completed"`
	NeedsRetry *bool   `json:"needsRetry"`
	NeedAt     *string `json:"needAt"`
}

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

func (s *Server) handleListFlowTasks(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		tasks, err := s.flow.ListForDate(c.Request.Context(), date)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}
	tasks, err := s.flow.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateFlowTask(c *gin.Context) {
	var req createFlowTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := s.flow.Create(c.Request.Context(), service.FlowTaskInput{
		LicensePlate: req.LicensePlate,
		IsEv:         req.IsEv,
		TaskType:     req.TaskType,
		NeedAt:       req.NeedAt,
		CreatedBy:    actor(c),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateFlowTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateFlowTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := s.flow.Update(c.Request.Context(), id, service.FlowTaskPatch{
		Completed:   req.Completed,
		CompletedBy: actor(c),
		NeedsRetry:  req.NeedsRetry,
		NeedAt:      req.NeedAt,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleReorderFlowTasks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.flow.Reorder(c.Request.Context(), req.IDs); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteFlowTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.flow.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
