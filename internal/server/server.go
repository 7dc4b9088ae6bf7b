// Package server binds the dashboard services to HTTP. Routes hold no business
// logic: they validate the request shape, call a service and map its error
// taxonomy onto status codes.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/realtime"
	"branch-dashboard/internal/service"
	"branch-dashboard/internal/shared"
)

// Server wires the HTTP routes to the service layer.
type Server struct {
	auth     *service.AuthService
	users    *service.UserService
	vehicles *service.VehicleService
	todos    *service.TodoService
	quality  *service.QualityService
	flow     *service.FlowTaskService
	planning *service.PlanningService
	settings *service.SettingsService
	status   *service.StatusService
	progress *service.ProgressService
	hub      *realtime.Hub
	cal      *clock.Calendar
	log      *zap.SugaredLogger
}

func New(
	auth *service.AuthService,
	users *service.UserService,
	vehicles *service.VehicleService,
	todos *service.TodoService,
	quality *service.QualityService,
	flow *service.FlowTaskService,
	planning *service.PlanningService,
	settings *service.SettingsService,
	status *service.StatusService,
	progress *service.ProgressService,
	hub *realtime.Hub,
	cal *clock.Calendar,
	log *zap.SugaredLogger,
) *Server {
	return &Server{
		auth:     auth,
		users:    users,
		vehicles: vehicles,
		todos:    todos,
		quality:  quality,
		flow:     flow,
		planning: planning,
		settings: settings,
		status:   status,
		progress: progress,
		hub:      hub,
		cal:      cal,
		log:      log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/login", s.handleLogin)
	router.GET("/ws", s.hub.ServeWS())

	api := router.Group("/api", s.authRequired())
	{
		api.GET("/me", s.handleMe)

		api.GET("/status/daily", s.handleDailyStatus)
		api.GET("/status/modules", s.handleGetStatuses)
		api.POST("/status/modules", s.handleSetStatus)

		api.GET("/vehicles", s.handleListVehicles)
		api.POST("/vehicles", s.handleCreateVehicle)
		api.PATCH("/vehicles/:id", s.handleUpdateVehicle)
		api.DELETE("/vehicles/:id", s.handleDeleteVehicle)
		api.GET("/vehicles/:id/comments", s.handleListComments)
		api.POST("/vehicles/:id/comments", s.handleAddComment)

		api.GET("/todos", s.handleListTodos)
		api.POST("/todos", s.handleCreateTodo)
		api.PATCH("/todos/:id", s.handleUpdateTodo)
		api.POST("/todos/:id/postpone", s.handlePostponeTodo)
		api.DELETE("/todos/:id", s.handleDeleteTodo)

		api.GET("/quality/checks", s.handleListChecks)
		api.POST("/quality/checks", s.handleCreateCheck)
		api.DELETE("/quality/checks/:id", s.handleDeleteCheck)
		api.GET("/quality/driver-tasks", s.handleListDriverTasks)
		api.POST("/quality/driver-tasks/:id/complete", s.handleCompleteDriverTask)

		api.GET("/flow", s.handleListFlowTasks)
		api.POST("/flow", s.handleCreateFlowTask)
		api.PATCH("/flow/:id", s.handleUpdateFlowTask)
		api.POST("/flow/reorder", s.handleReorderFlowTasks)
		api.DELETE("/flow/:id", s.handleDeleteFlowTask)

		api.GET("/timedriver", s.handleGetCalculation)
		api.POST("/timedriver", s.handleSaveCalculation)

		api.GET("/planning", s.handleGetPlanning)
		api.POST("/planning", s.handleSavePlanning)

		api.GET("/upgrades", s.handleListUpgrades)
		api.POST("/upgrades", s.handleCreateUpgrade)
		api.POST("/upgrades/:id/sell", s.handleSellUpgrade)
		api.DELETE("/upgrades/:id", s.handleDeleteUpgrade)

		api.GET("/kpis", s.handleListKpis)
		api.PUT("/kpis/:key", s.handleUpsertKpi)

		api.GET("/settings", s.handleListSettings)
		api.PUT("/settings/:key", s.handleSetSetting)

		admin := api.Group("", s.adminRequired())
		{
			admin.GET("/users", s.handleListUsers)
			admin.POST("/users", s.handleCreateUser)
			admin.PATCH("/users/:id", s.handleUpdateUser)
			admin.DELETE("/users/:id", s.handleDeleteUser)
		}
	}

	return router
}

// fail maps the service error taxonomy onto HTTP status codes.
func (s *Server) fail(c *gin.Context, err error) {
	var fieldErr *shared.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Msg, "field": fieldErr.Field})
	case errors.Is(err, shared.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, shared.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, shared.ErrInvalidPIN), errors.Is(err, shared.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		s.log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
