package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"swiftkart/internal/catalog"
	"swiftkart/internal/delivery"
	"swiftkart/internal/domain"
	"swiftkart/internal/log"
	"swiftkart/internal/validate"
)

type DeliveryHandler struct {
	Resolver *delivery.Resolver
	Ticker   *delivery.Ticker
	Pages    *catalog.Paginator
}

// Check resolves eligibility for a pincode, optionally scoped to the product
// being viewed.
// POST /api/v1/delivery/check  body: pincode, productId (optional)
func (h *DeliveryHandler) Check(c *fiber.Ctx) error {
	pin, ok := validate.Pincode(c.FormValue("pincode"))
	if !ok {
		log.Warn(c, "validation.fail", map[string]any{"field": "pincode"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid 6-digit pincode"})
	}

	var products []domain.Product
	if id, ok := validate.ID(c.FormValue("productId")); ok {
		p, err := h.Pages.Get(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		products = append(products, p)
	}

	res, err := h.Resolver.Resolve(pin, products)
	if err != nil {
		if errors.Is(err, delivery.ErrInvalidPincode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid 6-digit pincode"})
		}
		log.Error(c, "delivery.check", err, map[string]any{"pincode": pin})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "delivery check failed"})
	}
	if !res.Available {
		log.Info(c, "delivery.none", map[string]any{"pincode": pin})
	}
	return c.JSON(res)
}

// Countdown returns the live remaining time for every active cutoff.
// GET /api/v1/delivery/countdown
func (h *DeliveryHandler) Countdown(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"countdowns": h.Ticker.Snapshot()})
}
