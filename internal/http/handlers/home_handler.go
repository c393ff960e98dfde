package handlers

import (
	"renusboutique/internal/log"
	"renusboutique/internal/services"
	"renusboutique/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type HomeHandler struct {
	Catalog *services.CatalogService
}

// Home renders the storefront grid. Filter and sort intents arrive as query
// params; defaults mean "show everything, featured first".
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	return h.page(c, c.Query("category", "all"))
}

// Category is the sidebar route form of the same page.
func (h *HomeHandler) Category(c *fiber.Ctx) error {
	return h.page(c, c.Params("id"))
}

func (h *HomeHandler) page(c *fiber.Ctx, category string) error {
	cr := services.DefaultCriteria()
	sortBy := services.SortFeatured

	if category != "all" {
		sel, ok := validate.Selector(category)
		if !ok || !h.Catalog.KnownCategory(sel) {
			log.Security(c, "validation.fail", map[string]any{"field": "category", "value": category})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown category"})
		}
		cr.Category = sel
	}
	if raw := c.Query("sort"); raw != "" {
		key, ok := services.ValidSortKey(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "sort", "value": raw})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown sort option"})
		}
		sortBy = key
	}
	if raw := c.Query("price"); raw != "" && raw != "all" {
		sel, ok := validate.Selector(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "price", "value": raw})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown price range"})
		}
		cr.Price = sel
	}
	if raw := c.Query("occasion"); raw != "" && raw != "All" {
		sel, ok := validate.Choice(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "occasion", "value": raw})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown occasion"})
		}
		cr.Occasion = sel
	}
	if raw := c.Query("fabric"); raw != "" && raw != "All" {
		sel, ok := validate.Choice(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "fabric", "value": raw})
			return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown fabric"})
		}
		cr.Fabric = sel
	}

	view := h.Catalog.Visible(cr, sortBy)
	return render(c, "home", fiber.Map{
		"Title":       h.Catalog.Title(cr.Category),
		"Sarees":      view.Sarees,
		"Total":       view.Total,
		"Filtered":    view.Filtered,
		"Categories":  h.Catalog.Categories(),
		"Category":    cr.Category,
		"Sort":        string(sortBy),
		"Price":       cr.Price,
		"Occasion":    cr.Occasion,
		"Fabric":      cr.Fabric,
		"SortOptions": services.SortOptions,
		"PriceBands":  services.PriceBands,
		"Occasions":   services.Occasions,
		"Fabrics":     services.Fabrics,
	})
}
