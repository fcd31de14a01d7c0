package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lelefon-gaming/lelefon-api/internal/auth"
	"github.com/lelefon-gaming/lelefon-api/internal/catalog"
	"github.com/lelefon-gaming/lelefon-api/internal/config"
	"github.com/lelefon-gaming/lelefon-api/internal/identity"
	"github.com/lelefon-gaming/lelefon-api/internal/middleware"
	"github.com/lelefon-gaming/lelefon-api/internal/order"
	"github.com/lelefon-gaming/lelefon-api/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if len(d.Cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(d.Cfg.AllowedOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		}))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories, backed by Postgres when a pool is present and by the
	// in-memory stores in dev.
	var walletRepo wallet.Repository
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		walletRepo = wallet.NewMemoryRepository()
	}
	var orderRepo order.Repository
	if d.DB != nil {
		orderRepo = order.NewPostgresRepository(d.DB)
	} else {
		orderRepo = order.NewMemoryRepository()
	}
	var catalogRepo catalog.Repository
	if d.DB != nil {
		catalogRepo = catalog.NewPostgresRepository(d.DB)
	} else {
		mem := catalog.NewMemoryRepository()
		seedCatalog(mem)
		catalogRepo = mem
	}
	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}

	// Services and handlers
	walletSvc := wallet.NewService(walletRepo)
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg)
	orderSvc := order.NewService(orderRepo, walletSvc, nil, d.Logger)

	authHandler := auth.NewHandler(identitySvc, authSvc, walletSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	orderHandler := order.NewHandler(orderSvc, d.Cfg.AdminOrderCap)
	catalogHandler := catalog.NewHandler(catalogRepo)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMinute)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterCatalogRoutes(api, catalogHandler)

	// Protected routes
	jwtmw := middleware.JWTAuth(authSvc)
	protected := api.Group("", jwtmw)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterOrderRoutes(protected, orderHandler)

	// Admin routes, with a structured audit trail on top of the access log.
	admin := api.Group("/admin", jwtmw, middleware.AdminOnly(), middleware.Audit(d.Logger))
	RegisterAdminRoutes(admin, orderHandler, walletHandler)

	return nil
}

// seedCatalog loads a handful of storefront entries so the dev server has
// something to sell without a database.
func seedCatalog(mem *catalog.MemoryRepository) {
	mem.AddGame(catalog.Game{ID: "mlbb", Name: "Mobile Legends", Category: "Mobile Games", UIDRequired: true})
	mem.AddGame(catalog.Game{ID: "genshin", Name: "Genshin Impact", Category: "Mobile Games", Regionable: true, UIDRequired: true})
	mem.AddRegion(catalog.Region{GameID: "genshin", RegionKey: "asia", Name: "Asia"})
	mem.AddRegion(catalog.Region{GameID: "genshin", RegionKey: "america", Name: "America"})
	mem.AddPackage(catalog.Package{ID: "mlbb-86", GameID: "mlbb", Label: "86 Diamonds", Price: 500})
	mem.AddPackage(catalog.Package{ID: "mlbb-172", GameID: "mlbb", Label: "172 Diamonds", Price: 1000})
	mem.AddPackage(catalog.Package{ID: "gi-60-asia", GameID: "genshin", RegionKey: "asia", Label: "60 Genesis Crystals", Price: 450})
	mem.AddPackage(catalog.Package{ID: "gi-60-am", GameID: "genshin", RegionKey: "america", Label: "60 Genesis Crystals", Price: 480})
}
