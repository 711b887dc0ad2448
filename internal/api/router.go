package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dosapp/discovery-api/internal/api/handler"
	"github.com/dosapp/discovery-api/internal/api/middleware"
	"github.com/dosapp/discovery-api/internal/core/ports"
	"github.com/dosapp/discovery-api/internal/core/service"
	mongodb "github.com/dosapp/discovery-api/internal/infrastructure/db/mongo"
	rediscache "github.com/dosapp/discovery-api/internal/infrastructure/db/redis"
	"github.com/dosapp/discovery-api/internal/infrastructure/geocode"
	"github.com/dosapp/discovery-api/internal/pkg/config"
	"github.com/dosapp/discovery-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, verifier ports.IdentityVerifier) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("discovery"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	shopRepo := mongodb.NewShopRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	accountService := service.NewAccountService(verifier, accountRepo, shopRepo, log)
	shopService := service.NewShopService(shopRepo, accountRepo, log)
	productService := service.NewProductService(productRepo, shopRepo, log)
	discoveryService := service.NewDiscoveryService(shopRepo, productRepo, log)

	nominatim := geocode.NewNominatimClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, 5*time.Second)
	geocoder := rediscache.NewGeocodeCache(rdb, nominatim)

	accountHandler := handler.NewAccountHandler(accountService)
	shopHandler := handler.NewShopHandler(shopService, discoveryService)
	productHandler := handler.NewProductHandler(productService, discoveryService)
	locationHandler := handler.NewLocationHandler(geocoder)

	authed := middleware.Auth(accountService)
	ownerOnly := middleware.RequireOwner()
	devOnly := middleware.DevOnly(cfg.IsProduction())

	// --- Auth routes ---
	e.POST("/auth/session", accountHandler.Session, authed)
	e.PUT("/auth/role", accountHandler.ChooseRole, authed)

	// --- Public discovery routes ---
	e.GET("/shops", shopHandler.List)
	e.GET("/shops/nearby", shopHandler.Nearby)
	e.GET("/shops/:id", shopHandler.Get)
	e.GET("/products/search", productHandler.Search)
	e.GET("/products/shop/:shopId", productHandler.ListByShop)
	e.GET("/location/reverse", locationHandler.Reverse)

	// --- Owner routes ---
	e.POST("/shops", shopHandler.Create, authed, ownerOnly)
	e.PUT("/shops/update", shopHandler.Update, authed, ownerOnly)
	e.PUT("/shops/timings", shopHandler.Timings, authed, ownerOnly)
	e.PUT("/shops/toggle-open", shopHandler.ToggleOpen, authed, ownerOnly)
	e.GET("/shops/my", shopHandler.My, authed)
	e.POST("/products/shop/:shopId", productHandler.Add, authed, ownerOnly)
	e.PUT("/products/:id", productHandler.Update, authed, ownerOnly)
	e.DELETE("/products/:id", productHandler.Delete, authed, ownerOnly)
	e.PATCH("/products/:id/offer", productHandler.ToggleOffer, authed, ownerOnly)

	// --- Development-only routes ---
	e.GET("/shops/seed", shopHandler.Seed, devOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
