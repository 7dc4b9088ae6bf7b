package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

const claimsKey = "dashboard_claims"

// authRequired validates the bearer token and stores the claims in the context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := s.auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// adminRequired rejects non-admin callers. Runs after authRequired.
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims == nil || !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func getClaims(c *gin.Context) *service.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// actor returns the caller's initials for audit fields, or nil when unknown.
func actor(c *gin.Context) *string {
	claims := getClaims(c)
	if claims == nil || claims.Initials == "" {
		return nil
	}
	return &claims.Initials
}
