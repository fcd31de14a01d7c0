package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance returns the account balance, 0 when no wallet exists yet.
func (h *Handler) Balance(c *fiber.Ctx) error {
	email := c.Query("email")
	balance, err := h.service.Balance(c.UserContext(), email)
	if err != nil {
		if errors.Is(err, ErrEmailRequired) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"balance": balance})
}

type topUpRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

// TopUp credits the wallet, creating it if absent, and returns the new balance.
func (h *Handler) TopUp(c *fiber.Ctx) error {
	var req topUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	balance, err := h.service.Credit(c.UserContext(), req.Email, req.Amount)
	if err != nil {
		if errors.Is(err, ErrEmailRequired) || errors.Is(err, ErrInvalidAmount) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "balance": balance})
}

type setBalanceRequest struct {
	Email   string `json:"email"`
	Balance int64  `json:"balance"`
}

// AdminSetBalance overwrites an account balance. Wired behind the admin guard.
func (h *Handler) AdminSetBalance(c *fiber.Ctx) error {
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetBalance(c.UserContext(), req.Email, req.Balance); err != nil {
		if errors.Is(err, ErrEmailRequired) || errors.Is(err, ErrInvalidAmount) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
