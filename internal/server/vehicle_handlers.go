package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/model"
	"branch-dashboard/internal/service"
)

type createVehicleRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	Name         string `json:"name"`
	Notes        string `json:"notes"`
	IsEv         bool   `json:"isEv"`
}

type updateVehicleRequest struct {
	LicensePlate       *string `json:"licensePlate"`
	Name               *string `json:"name"`
	Notes              *string `json:"notes"`
	IsEv               *bool   `json:"isEv"`
	ReadyForCollection *bool   `json:"readyForCollection"`
	IsPast             *bool   `json:"isPast"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// vehicleView decorates a vehicle with the remaining days of its 7-day window.
type vehicleView struct {
	model.Vehicle
	DaysLeft int `json:"daysLeft"`
}

func (s *Server) handleListVehicles(c *gin.Context) {
	var (
		vehicles []model.Vehicle
		err      error
	)
	if c.Query("all") == "true" {
		vehicles, err = s.vehicles.ListAll(c.Request.Context())
	} else {
		vehicles, err = s.vehicles.ListActive(c.Request.Context())
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	now := s.cal.Now()
	views := make([]vehicleView, len(vehicles))
	for i, v := range vehicles {
		views[i] = vehicleView{Vehicle: v, DaysLeft: service.DaysLeft(&v, now)}
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleCreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := s.vehicles.Create(c.Request.Context(), service.VehicleInput{
		LicensePlate: req.LicensePlate,
		Name:         req.Name,
		Notes:        req.Notes,
		IsEv:         req.IsEv,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicleView{Vehicle: *vehicle, DaysLeft: service.DaysLeft(vehicle, s.cal.Now())})
}

func (s *Server) handleUpdateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := s.vehicles.Update(c.Request.Context(), id, service.VehiclePatch{
		LicensePlate:       req.LicensePlate,
		Name:               req.Name,
		Notes:              req.Notes,
		IsEv:               req.IsEv,
		ReadyForCollection: req.ReadyForCollection,
		IsPast:             req.IsPast,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicleView{Vehicle: *vehicle, DaysLeft: service.DaysLeft(vehicle, s.cal.Now())})
}

func (s *Server) handleDeleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.vehicles.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListComments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	comments, err := s.vehicles.ListComments(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) handleAddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := s.vehicles.AddComment(c.Request.Context(), id, req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
