package handler

import (
	"errors"
	"net/http"

	"nadlan-backend/internal/middleware"
	"nadlan-backend/internal/model"
	"nadlan-backend/internal/service"
	"nadlan-backend/internal/tax"
	"nadlan-backend/pkg/pagination"
	"nadlan-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseTaxHandler struct {
	estimateService service.EstimateService
}

func NewPurchaseTaxHandler(estimateService service.EstimateService) *PurchaseTaxHandler {
	return &PurchaseTaxHandler{estimateService: estimateService}
}

func (h *PurchaseTaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	pt := router.Group("/api/purchase-tax")
	pt.Use(middleware.RequireRole(model.RoleAdmin, model.RoleBroker, model.RoleAgent))
	{
		pt.POST("/calculate", h.Calculate)
		pt.GET("/schedules", h.GetSchedules)
		pt.POST("/estimates", h.CreateEstimate)
		pt.GET("/estimates", h.GetEstimates)
		pt.GET("/estimates/:id", h.GetEstimate)
		pt.DELETE("/estimates/:id", middleware.RequireRole(model.RoleAdmin, model.RoleBroker), h.DeleteEstimate)
	}
}

// Calculate computes the purchase tax for a set of co-buyers without saving anything
// @Summary      Calculate purchase tax
// @Description  Computes the statutory purchase tax per buyer and in total, choosing the cheapest eligible track for each buyer
// @Tags         purchase-tax
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CalculateTaxRequest  true  "Purchase details"
// @Success      200      {object}  response.Response{data=service.PurchaseTaxResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-tax/calculate [post]
func (h *PurchaseTaxHandler) Calculate(c *gin.Context) {
	var req service.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.estimateService.Calculate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tax.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetSchedules returns the statutory bracket tables for UI form hints
func (h *PurchaseTaxHandler) GetSchedules(c *gin.Context) {
	type bracketView struct {
		Limit string `json:"limit"`
		Rate  string `json:"rate"`
	}
	type scheduleView struct {
		Track    string        `json:"track"`
		Name     string        `json:"name"`
		Brackets []bracketView `json:"brackets"`
		TopRate  string        `json:"top_rate"`
	}

	schedules := make([]scheduleView, 0)
	for _, s := range tax.Schedules() {
		view := scheduleView{
			Track:   string(s.Track),
			Name:    s.Name,
			TopRate: s.TopRate.String(),
		}
		for _, b := range s.Brackets {
			view.Brackets = append(view.Brackets, bracketView{Limit: b.Limit.String(), Rate: b.Rate.String()})
		}
		schedules = append(schedules, view)
	}

	reduced := tax.ReducedCap()
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"schedules": schedules,
		"reduced_cap": gin.H{
			"rate": reduced.Rate.String(),
			"cap":  reduced.Cap.String(),
		},
		"land_rate": tax.LandRate().String(),
	}))
}

// CreateEstimate computes and persists a named estimate
// @Summary      Save a purchase-tax estimate
// @Description  Computes the purchase tax and stores the inputs and breakdown as a named estimate
// @Tags         purchase-tax
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateEstimateRequest  true  "Estimate payload"
// @Success      201      {object}  response.Response{data=service.EstimateResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-tax/estimates [post]
func (h *PurchaseTaxHandler) CreateEstimate(c *gin.Context) {
	var req service.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), userIDStr, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tax.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, estimate))
}

// GetEstimates returns saved estimates, newest first
func (h *PurchaseTaxHandler) GetEstimates(c *gin.Context) {
	params := pagination.Parse(c)

	estimates, total, err := h.estimateService.GetEstimates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, estimates, total, params.Page, params.Limit))
}

// GetEstimate returns one saved estimate by ID
func (h *PurchaseTaxHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, estimate))
}

// DeleteEstimate soft-deletes a saved estimate
func (h *PurchaseTaxHandler) DeleteEstimate(c *gin.Context) {
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), c.Param("id"), userIDStr); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Estimate deleted successfully"))
}
