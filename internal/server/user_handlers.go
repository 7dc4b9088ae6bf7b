package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

type createUserRequest struct {
	Initials      string   `json:"initials" binding:"required"`
	PIN           string   `json:"pin" binding:"required,len=4,numeric"`
	Roles         []string `json:"roles"`
	MaxDailyHours *float64 `json:"maxDailyHours"`
	HourlyRate    *float64 `json:"hourlyRate"`
}

type updateUserRequest struct {
	Initials      *string  `json:"initials"`
	PIN           *string  `json:"pin"`
	Roles         []string `json:"roles"`
	IsAdmin       *bool    `json:"isAdmin"`
	MaxDailyHours *float64 `json:"maxDailyHours"`
	HourlyRate    *float64 `json:"hourlyRate"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.users.Create(c.Request.Context(), service.UserInput{
		Initials:      req.Initials,
		PIN:           req.PIN,
		Roles:         req.Roles,
		MaxDailyHours: req.MaxDailyHours,
		HourlyRate:    req.HourlyRate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.users.Update(c.Request.Context(), id, service.UserPatch{
		Initials:      req.Initials,
		PIN:           req.PIN,
		Roles:         req.Roles,
		IsAdmin:       req.IsAdmin,
		MaxDailyHours: req.MaxDailyHours,
		HourlyRate:    req.HourlyRate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
