package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"branch-dashboard/internal/service"
)

type timedriverRequest struct {
	Date            string                     `json:"date" binding:"required"`
	Rentals         int                        `json:"rentals" binding:"gte=0"`
	BudgetPerRental float64                    `json:"budgetPerRental" binding:"gte=0"`
	Drivers         []service.DriverAllocation `json:"drivers"`
}

type planningRequest struct {
	Date               string `json:"date" binding:"required"`
	ReservationsTotal  int    `json:"reservationsTotal" binding:"gte=0"`
	ReservationsCar    int    `json:"reservationsCar" binding:"gte=0"`
	ReservationsVan    int    `json:"reservationsVan" binding:"gte=0"`
	ReservationsTas    int    `json:"reservationsTas" binding:"gte=0"`
	DeliveriesTomorrow int    `json:"deliveriesTomorrow" binding:"gte=0"`
	CollectionsOpen    int    `json:"collectionsOpen" binding:"gte=0"`
	CarDayMin          *int   `json:"carDayMin"`
	VanDayMin          *int   `json:"vanDayMin"`
}

type upgradeRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	Model        string `json:"model"`
	Reason       string `json:"reason"`
	IsVan        bool   `json:"isVan"`
	Date         string `json:"date"`
}

type kpiRequest struct {
	Value float64 `json:"value"`
	Goal  float64 `json:"goal"`
}

type settingRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleGetCalculation(c *gin.Context) {
	calc, err := s.planning.GetCalculation(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (s *Server) handleSaveCalculation(c *gin.Context) {
	var req timedriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	calc, err := s.planning.SaveCalculation(c.Request.Context(), service.TimedriverInput{
		Date:            req.Date,
		Rentals:         req.Rentals,
		BudgetPerRental: req.BudgetPerRental,
		Drivers:         req.Drivers,
		CalculatedBy:    actor(c),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (s *Server) handleGetPlanning(c *gin.Context) {
	plan, err := s.planning.GetPlanning(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleSavePlanning(c *gin.Context) {
	var req planningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := s.planning.SavePlanning(c.Request.Context(), service.FuturePlanningInput{
		Date:               req.Date,
		ReservationsTotal:  req.ReservationsTotal,
		ReservationsCar:    req.ReservationsCar,
		ReservationsVan:    req.ReservationsVan,
		ReservationsTas:    req.ReservationsTas,
		DeliveriesTomorrow: req.DeliveriesTomorrow,
		CollectionsOpen:    req.CollectionsOpen,
		CarDayMin:          req.CarDayMin,
		VanDayMin:          req.VanDayMin,
		SavedBy:            actor(c),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleListUpgrades(c *gin.Context) {
	ups, err := s.planning.ListUpgradesForDate(c.Request.Context(), s.dateOrToday(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ups)
}

func (s *Server) handleCreateUpgrade(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	up, err := s.planning.CreateUpgrade(c.Request.Context(), service.UpgradeInput{
		LicensePlate: req.LicensePlate,
		Model:        req.Model,
		Reason:       req.Reason,
		IsVan:        req.IsVan,
		Date:         req.Date,
		CreatedBy:    actor(c),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, up)
}

func (s *Server) handleSellUpgrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	up, err := s.planning.MarkUpgradeSold(c.Request.Context(), id, actor(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}

func (s *Server) handleDeleteUpgrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.planning.DeleteUpgrade(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListKpis(c *gin.Context) {
	metrics, err := s.settings.ListKpis(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (s *Server) handleUpsertKpi(c *gin.Context) {
	var req kpiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metric, err := s.settings.UpsertKpi(c.Request.Context(), c.Param("key"), req.Value, req.Goal, actor(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (s *Server) handleListSettings(c *gin.Context) {
	settings, err := s.settings.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleSetSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	setting, err := s.settings.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
