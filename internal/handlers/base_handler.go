package handlers

import (
	"careerhub_backend/internal/auth"
	"careerhub_backend/internal/config"
	"careerhub_backend/internal/logger"
	"careerhub_backend/internal/validator"
	"careerhub_backend/pkg/apperrors"
	"careerhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
	cfg       *config.Config
}

func NewBaseHandler(v *validator.Validator, cfg *config.Config) *BaseHandler {
	return &BaseHandler{
		validator: v,
		cfg:       cfg,
	}
}

// ============================================================================
// Методы привязки и валидации
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) runValidation(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

// GetPrincipal извлекает аутентифицированного субъекта из контекста.
// Для защищенных маршрутов его кладет AuthMiddleware.
func (h *BaseHandler) GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	ctx := c.Request.Context()

	val, exists := c.Get(string(contextkeys.PrincipalContextKey))
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: principal not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return auth.Principal{}, false
	}

	principal, ok := val.(auth.Principal)
	if !ok {
		logger.CtxWarn(ctx, "Unauthorized access: invalid principal in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid principal in context"))
		return auth.Principal{}, false
	}

	return principal, true
}
