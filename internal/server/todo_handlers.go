package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

type createTodoRequest struct {
	Title       string   `json:"title" binding:"required"`
	AssignedTo  []string `json:"assignedTo"`
	IsRecurring bool     `json:"isRecurring"`
	Priority    int      `json:"priority" binding:"gte=0,lte=3"`
}

type updateTodoRequest struct {
	Title      *string  `json:"title"`
	AssignedTo []string `json:"assignedTo"`
	Completed  *bool    `json:"completed"`
	Priority   *int     `json:"priority"`
}

func (s *Server) handleListTodos(c *gin.Context) {
	todos, err := s.todos.ListForDate(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	todo, err := s.todos.Create(c.Request.Context(), service.TodoInput{
		Title:       req.Title,
		AssignedTo:  req.AssignedTo,
		IsRecurring: req.IsRecurring,
		Priority:    req.Priority,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	todo, err := s.todos.Update(c.Request.Context(), id, service.TodoPatch{
		Title:       req.Title,
		AssignedTo:  req.AssignedTo,
		Completed:   req.Completed,
		CompletedBy: actor(c),
		Priority:    req.Priority,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) handlePostponeTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := s.todos.Postpone(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.todos.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
