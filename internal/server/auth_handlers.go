package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin must be exactly 4 digits"})
		return
	}
	token, user, err := s.auth.Login(c.Request.Context(), req.PIN)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleMe(c *gin.Context) {
	claims := getClaims(c)
	user, err := s.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// parseID reads the :id route param as an unsigned integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return 0, false
	}
	return uint(id), true
}

// dateOrToday reads the date query param, defaulting to the current civil date.
func (s *Server) dateOrToday(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return s.cal.Today()
}
