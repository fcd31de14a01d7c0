package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/gateway"
	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

// Handler exposes checkout and order HTTP endpoints.
type Handler struct {
	service  *Service
	adminCap int
}

// NewHandler builds an order HTTP handler. adminCap bounds the admin order
// listing.
func NewHandler(service *Service, adminCap int) *Handler {
	return &Handler{service: service, adminCap: adminCap}
}

type createItemRequest struct {
	Game      string `json:"game"`
	Package   string `json:"package"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	UID       string `json:"uid,omitempty"`
}

type createRequest struct {
	Email  string              `json:"email"`
	Items  []createItemRequest `json:"items"`
	Total  int64               `json:"total"`
	Method string              `json:"payment_method"`
}

type createResponse struct {
	Success bool             `json:"success"`
	OrderID string           `json:"orderId"`
	Status  string           `json:"status"`
	Gateway *gateway.Session `json:"gateway,omitempty"`
}

type orderResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Total     int64     `json:"total"`
	Method    string    `json:"payment_method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type itemResponse struct {
	ID        string `json:"id"`
	Line      int    `json:"line"`
	Game      string `json:"game"`
	Package   string `json:"package"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	UID       string `json:"uid,omitempty"`
	PIN       string `json:"pin,omitempty"`
}

// Create places an order against the submitted cart.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	items := make([]ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = ItemInput{
			Game:      it.Game,
			Package:   it.Package,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UID:       it.UID,
		}
	}
	res, err := h.service.Create(c.UserContext(), CreateInput{
		Email:  req.Email,
		Items:  items,
		Total:  req.Total,
		Method: req.Method,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(createResponse{
		Success: true,
		OrderID: res.OrderID,
		Status:  res.Status,
		Gateway: res.Gateway,
	})
}

// List returns the account's orders, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	orders, err := h.service.ListByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toOrderResponses(orders))
}

// AdminList returns the most recent orders across all accounts.
func (h *Handler) AdminList(c *fiber.Ctx) error {
	orders, err := h.service.ListRecent(c.UserContext(), h.adminCap)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toOrderResponses(orders))
}

// AdminItems returns one order's items.
func (h *Handler) AdminItems(c *fiber.Ctx) error {
	items, err := h.service.Items(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return mapError(err)
	}
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = itemResponse{
			ID:        it.ID,
			Line:      it.Line,
			Game:      it.Game,
			Package:   it.Package,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UID:       it.UID,
			PIN:       it.PIN,
		}
	}
	return c.Status(http.StatusOK).JSON(out)
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// AdminSetItemPIN assigns the redemption code of one order item.
func (h *Handler) AdminSetItemPIN(c *fiber.Ctx) error {
	var req setPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetItemPIN(c.UserContext(), c.Params("orderId"), c.Params("itemId"), req.PIN); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}

// AdminComplete marks a Processing order as Completed.
func (h *Handler) AdminComplete(c *fiber.Ctx) error {
	return h.transition(c, h.service.Complete)
}

// AdminCancel cancels a non-terminal order.
func (h *Handler) AdminCancel(c *fiber.Ctx) error {
	return h.transition(c, h.service.Cancel)
}

// AdminRefund refunds a cancelled order.
func (h *Handler) AdminRefund(c *fiber.Ctx) error {
	return h.transition(c, h.service.Refund)
}

func (h *Handler) transition(c *fiber.Ctx, fn func(context.Context, string) (string, error)) error {
	status, err := fn(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "status": status})
}

func toOrderResponses(orders []Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = orderResponse{
			ID:        o.ID,
			Email:     o.Email,
			Total:     o.Total,
			Method:    o.Method,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		}
	}
	return out
}

func mapError(err error) error {
	var insufficient *wallet.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return fiber.NewError(http.StatusPaymentRequired, insufficient.Error())
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrEmailRequired):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
