package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/order"
)

// RegisterOrderRoutes wires checkout and order history.
func RegisterOrderRoutes(r fiber.Router, h *order.Handler) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
}
