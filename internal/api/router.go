package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wheelhouse/car-rental-backend/internal/auth"
	"github.com/wheelhouse/car-rental-backend/internal/booking"
	bookingHttp "github.com/wheelhouse/car-rental-backend/internal/booking/http"
	"github.com/wheelhouse/car-rental-backend/internal/user"
	userHttp "github.com/wheelhouse/car-rental-backend/internal/user/http"
	"github.com/wheelhouse/car-rental-backend/internal/vehicle"
	vehicleHttp "github.com/wheelhouse/car-rental-backend/internal/vehicle/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	VehicleService vehicle.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine. It assembles middleware
// (CORS, recovery, metrics, auth) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	registry := prometheus.NewRegistry()
	r.Use(Metrics(registry))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := auth.Required(cfg.JWTManager)
	adminMiddleware := RequireAdmin()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
