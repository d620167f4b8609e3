package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindful-escapades/internal/models"
	"mindful-escapades/internal/service"
	"mindful-escapades/internal/session"
)

// SessionService - операции над сессиями, которые нужны HTTP API.
type SessionService interface {
	StartSession(ctx context.Context) (*session.State, error)
	GetSession(ctx context.Context, id string) (*session.State, error)
	PlayTurn(ctx context.Context, sessionID string, req models.TurnRequest) (*models.RenderedTurn, error)
	ResetSession(ctx context.Context, id string) (*session.State, error)
	EndSession(ctx context.Context, id string) error
}

var _ SessionService = (*service.TurnService)(nil)

// AdventureHandler обрабатывает HTTP запросы веб-клиента.
type AdventureHandler struct {
	service           SessionService
	logger            *zap.Logger
	defaultImageStyle string
	defaultVoiceStyle string
}

// NewAdventureHandler создает новый AdventureHandler.
func NewAdventureHandler(s SessionService, defaultImageStyle, defaultVoiceStyle string, logger *zap.Logger) *AdventureHandler {
	return &AdventureHandler{
		service:           s,
		logger:            logger.Named("AdventureHandler"),
		defaultImageStyle: defaultImageStyle,
		defaultVoiceStyle: defaultVoiceStyle,
	}
}

// RegisterRoutes регистрирует маршруты /api/v1. turnLimiter вешается только
// на ходы: остальные запросы не тратят квоту модели.
func (h *AdventureHandler) RegisterRoutes(router gin.IRouter, turnLimiter gin.HandlerFunc) {
	api := router.Group("/api/v1")
	{
		api.GET("/styles", h.listStyles)
		api.POST("/sessions", h.startSession)
		api.GET("/sessions/:id", h.getSession)
		api.POST("/sessions/:id/reset", h.resetSession)
		api.DELETE("/sessions/:id", h.endSession)

		turnHandlers := []gin.HandlerFunc{h.playTurn}
		if turnLimiter != nil {
			turnHandlers = append([]gin.HandlerFunc{turnLimiter}, turnHandlers...)
		}
		api.POST("/sessions/:id/turns", turnHandlers...)
	}
}

func (h *AdventureHandler) listStyles(c *gin.Context) {
	c.JSON(http.StatusOK, StylesDTO{
		ImageStyles:       service.ImageStyles(),
		VoiceStyles:       service.VoiceStyles(),
		DefaultImageStyle: h.defaultImageStyle,
		DefaultVoiceStyle: h.defaultVoiceStyle,
	})
}

func (h *AdventureHandler) startSession(c *gin.Context) {
	st, err := h.service.StartSession(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionDTO(st))
}

func (h *AdventureHandler) getSession(c *gin.Context) {
	st, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionDTO(st))
}

func (h *AdventureHandler) playTurn(c *gin.Context) {
	var req TurnRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid turn request", zap.Error(err))
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	rendered, err := h.service.PlayTurn(c.Request.Context(), c.Param("id"), models.TurnRequest{
		Utterance:  req.Utterance,
		ImageStyle: req.ImageStyle,
		VoiceStyle: req.VoiceStyle,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rendered)
}

func (h *AdventureHandler) resetSession(c *gin.Context) {
	st, err := h.service.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionDTO(st))
}

func (h *AdventureHandler) endSession(c *gin.Context) {
	if err := h.service.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleServiceError переводит ошибки конвейера в HTTP статусы.
func (h *AdventureHandler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnknownStyle), errors.Is(err, service.ErrEmptyUtterance):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrSessionNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Session not found"}
	case errors.Is(err, models.ErrSessionTerminated):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: "The story has ended. Reset the session to play again."}
	case errors.Is(err, models.ErrTransport):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Message: "The narrator is unavailable. Please retry your turn."}
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	if statusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(statusCode, apiErr)
}
