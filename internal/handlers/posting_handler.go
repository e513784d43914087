package handlers

import (
	"net/http"

	"careerhub_backend/internal/middleware"
	"careerhub_backend/internal/models"
	"careerhub_backend/internal/services"
	"careerhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostingHandler struct {
	*BaseHandler
	postingService     *services.PostingService
	applicationService *services.ApplicationService
}

func NewPostingHandler(base *BaseHandler, postingService *services.PostingService, applicationService *services.ApplicationService) *PostingHandler {
	return &PostingHandler{
		BaseHandler:        base,
		postingService:     postingService,
		applicationService: applicationService,
	}
}

func (h *PostingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/postings")
	{
		public.GET("", h.ListPostings)
		public.GET("/:postingId", h.GetPosting)
	}

	// Устаревшие публичные маршруты, сохранены для старых клиентов.
	r.GET("/internships", h.ListInternships)
	r.GET("/internships/:postingId", h.GetPosting)

	// Protected routes - Recruiter only
	postings := r.Group("/postings")
	postings.Use(middleware.AuthMiddleware(h.cfg), middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin))
	{
		postings.POST("", h.CreatePosting)
		postings.GET("/my", h.GetMyPostings)
		postings.PUT("/:postingId", h.UpdatePosting)
		postings.DELETE("/:postingId", h.DeletePosting)
		postings.PUT("/:postingId/status", h.UpdatePostingStatus)

		// Отклики на конкретную публикацию (для владельца)
		postings.GET("/:postingId/applications", h.GetPostingApplications)
	}

	// Admin routes - модерация стажировок
	admin := r.Group("/admin/postings")
	admin.Use(middleware.AuthMiddleware(h.cfg), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.PUT("/:postingId/status", h.UpdatePostingStatus)
	}
}

// --- Public handlers ---

func (h *PostingHandler) ListPostings(c *gin.Context) {
	var req dto.ListPostingsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	// Публичный листинг без явного статуса показывает только активные
	// публикации: черновики и закрытые вакансии наружу не утекают.
	// У стажировок свой enum-набор, их отдает /internships.
	if req.Status == "" && req.Kind != string(models.PostingKindInternship) {
		req.Status = string(models.PostingStatusActive)
	}
	postings, err := h.postingService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"postings": postings,
		"total":    len(postings),
	})
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	postingID := c.Param("postingId")
	posting, err := h.postingService.Get(c.Request.Context(), postingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *PostingHandler) ListInternships(c *gin.Context) {
	internships, err := h.postingService.ListInternships(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"internships": internships,
		"total":       len(internships),
	})
}

// --- Recruiter handlers ---

func (h *PostingHandler) CreatePosting(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreatePostingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	posting, err := h.postingService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, posting)
}

func (h *PostingHandler) GetMyPostings(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	req := dto.ListPostingsRequest{PostedBy: principal.Email}
	postings, err := h.postingService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"postings": postings,
		"total":    len(postings),
	})
}

func (h *PostingHandler) UpdatePosting(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	postingID := c.Param("postingId")
	var req dto.UpdatePostingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	posting, err := h.postingService.Update(c.Request.Context(), principal, postingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *PostingHandler) UpdatePostingStatus(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	postingID := c.Param("postingId")
	var req dto.UpdatePostingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	posting, err := h.postingService.UpdateStatus(c.Request.Context(), principal, postingID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *PostingHandler) DeletePosting(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	postingID := c.Param("postingId")
	if err := h.postingService.Delete(c.Request.Context(), principal, postingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Posting deleted successfully"})
}

func (h *PostingHandler) GetPostingApplications(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}
	postingID := c.Param("postingId")
	applications, err := h.applicationService.ListByPosting(c.Request.Context(), principal, postingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}
