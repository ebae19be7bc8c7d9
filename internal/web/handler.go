package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	api "github.com/glekoz/uvsearch/api/v1"
	"github.com/glekoz/uvsearch/internal/models"
	"github.com/glekoz/uvsearch/internal/service"
)

const searchPath = "/search"

type ServiceAPI interface {
	Search(ctx context.Context, date, hour, minute string) ([]models.Observation, error)
	LatestUV(ctx context.Context, location string) (models.UVReading, error)
	Health(ctx context.Context) error
}

type Handler struct {
	svc    ServiceAPI
	logger *slog.Logger
}

func NewHandler(svc ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SearchObservations реализует интерфейс api.ServerInterface.
// Absent parameters are treated as empty strings and simply match nothing.
func (h *Handler) SearchObservations(c *gin.Context, params api.SearchObservationsParams) {
	ctx := c.Request.Context()
	h.logger.InfoContext(ctx, "received search query",
		slog.String("date", deref(params.Date)),
		slog.String("hour", deref(params.Hour)),
		slog.String("minute", deref(params.Minute)),
	)

	result, err := h.svc.Search(ctx, deref(params.Date), deref(params.Hour), deref(params.Minute))
	if err != nil {
		h.logger.ErrorContext(ctx, "database query error", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	resp := make([]api.Observation, 0, len(result))
	for _, obs := range result {
		resp = append(resp, api.Observation(obs))
	}

	c.JSON(http.StatusOK, resp)
}

// GetUVData реализует интерфейс api.ServerInterface.
func (h *Handler) GetUVData(c *gin.Context, params api.GetUVDataParams) {
	result, err := h.svc.LatestUV(c.Request.Context(), deref(params.Location))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.UVReading{
		Location: result.Location,
		UvIndex:  result.UVIndex,
	})
}

func (h *Handler) GetHealthz(c *gin.Context) {
	if err := h.svc.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// bindError handles query parameters the generated wrapper could not bind.
// On /search such a request can never match a row, so it goes down the
// same path as any other malformed key.
func (h *Handler) bindError(c *gin.Context, err error, statusCode int) {
	h.logger.DebugContext(c.Request.Context(), "query binding failed",
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	if c.FullPath() == searchPath {
		h.SearchObservations(c, api.SearchObservationsParams{})
		return
	}
	c.JSON(statusCode, api.ErrorResponse{Error: http.StatusText(statusCode)})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyLocation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Location is required"})

	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No UV data found"})

	default:
		h.logger.ErrorContext(c.Request.Context(), "internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
