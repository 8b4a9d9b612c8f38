package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/domain"
	"github.com/kapu/cinepick-go/internal/util"
	apperrors "github.com/kapu/cinepick-go/pkg/errors"
)

// Recommender is the orchestration pipeline as the HTTP layer sees it.
type Recommender interface {
	Recommend(ctx context.Context, req *domain.RecommendationRequest) ([]domain.EnrichedMovie, error)
}

// CircuitReporter exposes the generation backend's breaker state.
type CircuitReporter interface {
	GetCircuitStatus() util.CircuitBreakerStatus
}

// RecommendationHandler handles HTTP requests for recommendations.
type RecommendationHandler struct {
	svc     Recommender
	circuit CircuitReporter
	logger  *zap.Logger
}

func NewRecommendationHandler(svc Recommender, circuit CircuitReporter, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, circuit: circuit, logger: logger}
}

// Health returns service health status, including the generation backend's
// circuit state.
func (h *RecommendationHandler) Health(c fiber.Ctx) error {
	body := fiber.Map{
		"status":  "ok",
		"service": "cinepick",
	}

	if h.circuit != nil {
		status := h.circuit.GetCircuitStatus()
		body["generation"] = fiber.Map{
			"circuit":  status.State.String(),
			"failures": status.FailureCount,
		}
	}

	return c.JSON(body)
}

// Recommend produces the enriched recommendation list for one request.
func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	var req domain.RecommendationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	movies, err := h.svc.Recommend(c.Context(), &req)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(movies)
}

// renderError maps the coded error taxonomy onto status codes and response
// bodies. Unrecognized errors should not happen; they render as a bare 500.
func (h *RecommendationHandler) renderError(c fiber.Ctx, err error) error {
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		h.logger.Error("Unclassified pipeline error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	h.logger.Warn("Request failed",
		zap.String("code", apiErr.Code),
		zap.Int("status", apiErr.StatusCode),
		zap.Error(err),
	)

	body := fiber.Map{"error": apiErr.Message}
	if details, ok := apiErr.Context["details"]; ok {
		body["details"] = details
	}
	if response, ok := apiErr.Context["response"]; ok {
		body["response"] = response
	}

	return c.Status(apiErr.StatusCode).JSON(body)
}
