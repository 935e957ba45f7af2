package handlers

import (
	"feecalc/internal/models"
	"feecalc/internal/services/fee"
	"feecalc/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// SetMethodPercentage rebalances a method mix after one slider moves.
func SetMethodPercentage(c *fiber.Ctx) error {
	var input struct {
		MethodMix models.MethodMix     `json:"methodMix"`
		Method    models.PaymentMethod `json:"method"`
		Value     decimal.Decimal      `json:"value"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	mix, err := fee.SetMethodPercentage(input.MethodMix, input.Method, input.Value)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Method mix updated", fiber.Map{
		"methodMix": mix,
		"total":     mix.Total(),
	})
}
