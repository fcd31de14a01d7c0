package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/catalog"
)

// RegisterCatalogRoutes wires the public storefront lookups.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	group := r.Group("/catalog")
	group.Get("/games", h.Games)
	group.Get("/regions", h.Regions)
	group.Get("/packages", h.Packages)
}
