package handlers

import (
	"github.com/gofiber/fiber/v2"

	"swiftkart/internal/catalog"
	"swiftkart/internal/log"
	"swiftkart/internal/validate"
)

type ProductHandler struct {
	Pages *catalog.Paginator
}

// List serves one catalog page past the caller-held cursor.
// GET /api/v1/products?loaded=N
func (h *ProductHandler) List(c *fiber.Ctx) error {
	loaded := validate.Loaded(c.Query("loaded"))
	page, ok := h.Pages.LoadPage(loaded)
	if !ok {
		// A load is already in flight; tell the caller to retry shortly.
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "page load in progress, retry",
		})
	}
	return c.JSON(fiber.Map{"products": page, "loaded": loaded + len(page)})
}

// Detail resolves a single product for detail views and deep links.
// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Warn(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Pages.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
