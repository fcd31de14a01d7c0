package catalog

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog browse endpoints.
type Handler struct {
	repo Repository
}

// NewHandler builds a catalog HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Games lists every game.
func (h *Handler) Games(c *fiber.Ctx) error {
	games, err := h.repo.Games(c.UserContext())
	if err != nil {
		return err
	}
	if games == nil {
		games = []Game{}
	}
	return c.Status(http.StatusOK).JSON(games)
}

// Regions lists the regions of the requested game.
func (h *Handler) Regions(c *fiber.Ctx) error {
	gameID := c.Query("gameId")
	if gameID == "" {
		return fiber.NewError(http.StatusBadRequest, "gameId is required")
	}
	regions, err := h.repo.Regions(c.UserContext(), gameID)
	if err != nil {
		return err
	}
	if regions == nil {
		regions = []Region{}
	}
	return c.Status(http.StatusOK).JSON(regions)
}

// Packages lists the denominations of the requested game and region. The
// front-end sends literal "null"/"undefined" for non-regional games; those
// read as no region, matching packages without a region key.
func (h *Handler) Packages(c *fiber.Ctx) error {
	gameID := c.Query("gameId")
	if gameID == "" {
		return fiber.NewError(http.StatusBadRequest, "gameId is required")
	}
	regionKey := c.Query("regionKey")
	if regionKey == "null" || regionKey == "undefined" {
		regionKey = ""
	}
	packages, err := h.repo.Packages(c.UserContext(), gameID, regionKey)
	if err != nil {
		return err
	}
	if packages == nil {
		packages = []Package{}
	}
	return c.Status(http.StatusOK).JSON(packages)
}
