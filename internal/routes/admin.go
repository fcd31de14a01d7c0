package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/order"
	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

// RegisterAdminRoutes wires the back-office endpoints. The caller mounts
// this group behind the admin guard.
func RegisterAdminRoutes(r fiber.Router, orders *order.Handler, wallets *wallet.Handler) {
	r.Get("/orders", orders.AdminList)
	r.Get("/orders/:orderId/items", orders.AdminItems)
	r.Put("/orders/:orderId/items/:itemId/pin", orders.AdminSetItemPIN)
	r.Post("/orders/:orderId/complete", orders.AdminComplete)
	r.Post("/orders/:orderId/cancel", orders.AdminCancel)
	r.Post("/orders/:orderId/refund", orders.AdminRefund)
	r.Put("/wallet", wallets.AdminSetBalance)
}
