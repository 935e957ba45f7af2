package handlers

import (
	"feecalc/internal/models"
	"feecalc/internal/services/estimate"
	"feecalc/internal/utils/pagination"
	"feecalc/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EstimateHandler struct {
	estimateService *estimate.Service
}

func NewEstimateHandler(estimateService *estimate.Service) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

type estimateRequest struct {
	SessionID string `json:"sessionId"`
	models.Inputs
}

// CreateEstimate prices the posted inputs. A session id is issued when the
// caller does not send one, so later history lookups have something to use.
func (h *EstimateHandler) CreateEstimate(c *fiber.Ctx) error {
	var input estimateRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.SessionID == "" {
		input.SessionID = uuid.NewString()
	}

	result, err := h.estimateService.Calculate(c.UserContext(), input.SessionID, input.Inputs)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Estimate calculated successfully", result)
}

func (h *EstimateHandler) GetRates(c *fiber.Ctx) error {
	return response.Success(c, "Rates retrieved successfully", h.estimateService.Rates())
}

func (h *EstimateHandler) GetHistory(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	calcs, err := h.estimateService.History(c.UserContext(), c.Params("sessionId"), p.Limit)
	if err != nil {
		return response.FromError(c, err)
	}

	p.Count = len(calcs)
	return c.JSON(pagination.Response(p, calcs))
}

func (h *EstimateHandler) TrackFeatureToggle(c *fiber.Ctx) error {
	var input struct {
		SessionID string `json:"sessionId"`
		Feature   string `json:"feature"`
		Enabled   bool   `json:"enabled"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := h.estimateService.TrackFeatureToggle(c.UserContext(), input.SessionID, input.Feature, input.Enabled); err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Event recorded",
	})
}
