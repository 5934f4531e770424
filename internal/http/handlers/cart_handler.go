package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"swiftkart/internal/cart"
	"swiftkart/internal/catalog"
	"swiftkart/internal/log"
	"swiftkart/internal/validate"
)

type CartHandler struct {
	Cart  *cart.Store
	Pages *catalog.Paginator
}

// ensureSID tags the device with a session cookie so cart actions can be
// correlated in the logs.
func (h *CartHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

// View returns the cart as currently persisted.
// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	h.ensureSID(c)
	items, err := h.Cart.Items(c.Context())
	if err != nil {
		log.Error(c, "cart.view", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "cart is temporarily unavailable"})
	}
	return c.JSON(fiber.Map{"items": items})
}

// Add merges a product into the cart.
// POST /api/v1/cart  body: productId
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	p, err := h.Pages.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err := h.Cart.Add(c.Context(), p); err != nil {
		log.Error(c, "cart.add", err, map[string]any{"product": id, "sid": sid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save cart, try again"})
	}
	log.Info(c, "cart.add", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove drops a product line; unknown ids are a silent no-op.
// POST /api/v1/cart/remove  body: productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	h.ensureSID(c)
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid productId"})
	}
	if err := h.Cart.Remove(c.Context(), id); err != nil {
		log.Error(c, "cart.remove", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save cart, try again"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
