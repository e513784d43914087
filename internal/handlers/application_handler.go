package handlers

import (
	"net/http"

	"careerhub_backend/internal/middleware"
	"careerhub_backend/internal/models"
	"careerhub_backend/internal/services"
	"careerhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Все маршруты откликов требуют аутентификации.
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware(h.cfg))
	{
		applications.POST("", middleware.RequireRoles(models.UserRoleApplicant, models.UserRoleAdmin), h.CreateApplication)
		applications.GET("/my", h.GetMyApplications)
		applications.GET("/:applicationId", h.GetApplication)
		applications.PUT("/:applicationId/status", h.UpdateApplicationStatus)
		applications.DELETE("/:applicationId", h.DeleteApplication)
	}

	// Admin routes
	admin := r.Group("/admin/applications")
	admin.Use(middleware.AuthMiddleware(h.cfg), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListApplications)
		admin.GET("/applicant/:email", h.GetApplicantApplications)
	}
}

func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	application, err := h.applicationService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	applicationID := c.Param("applicationId")
	application, err := h.applicationService.Get(c.Request.Context(), principal, applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	applications, err := h.applicationService.ListByApplicant(c.Request.Context(), principal, principal.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	applicationID := c.Param("applicationId")
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	application, err := h.applicationService.UpdateStatus(c.Request.Context(), principal, applicationID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	applicationID := c.Param("applicationId")
	if err := h.applicationService.Delete(c.Request.Context(), principal, applicationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// --- Admin handlers ---

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	var req dto.ListApplicationsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	applications, err := h.applicationService.List(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

func (h *ApplicationHandler) GetApplicantApplications(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	email := c.Param("email")
	applications, err := h.applicationService.ListByApplicant(c.Request.Context(), principal, email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}
