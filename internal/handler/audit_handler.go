package handler

import (
	"net/http"

	"nadlan-backend/internal/middleware"
	"nadlan-backend/internal/model"
	"nadlan-backend/internal/service"
	"nadlan-backend/pkg/pagination"
	"nadlan-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-logs")
	audit.Use(middleware.RequireRole(model.RoleAdmin, model.RoleBroker))
	{
		audit.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns audit entries, newest first
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, logs, total, params.Page, params.Limit))
}
