package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

// RegisterWalletRoutes wires wallet balance and top-up endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.Balance)
	r.Post("/wallet/topup", h.TopUp)
}
