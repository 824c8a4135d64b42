package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
	bookingHttp "github.com/Andrej19990506/supboard-booking-backend/internal/booking/http"
	"github.com/Andrej19990506/supboard-booking-backend/internal/client"
	clientHttp "github.com/Andrej19990506/supboard-booking-backend/internal/client/http"
	"github.com/Andrej19990506/supboard-booking-backend/internal/gateway"
	"github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype"
	invHttp "github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype/http"
	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
	notifHttp "github.com/Andrej19990506/supboard-booking-backend/internal/notification/http"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
	pricingHttp "github.com/Andrej19990506/supboard-booking-backend/internal/pricing/http"
	"github.com/Andrej19990506/supboard-booking-backend/internal/staff"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	StaffService        staff.Service
	ClientService       client.Service
	InventoryService    inventorytype.Service
	BookingService      booking.Service
	PricingService      *pricing.Service
	NotificationService *notification.Service
	GatewayHub          *gateway.Hub

	JWTManager *auth.JWTManager
	Log        zerolog.Logger
}

// NewRouter assembles middleware and registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.StaffService)

	authHandler := NewAuthHandler(cfg.StaffService, cfg.JWTManager)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	invHandler := invHttp.NewHandler(cfg.InventoryService)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)
	notifHandler := notifHttp.NewHandler(cfg.NotificationService)
	gatewayHandler := gateway.NewHandler(cfg.GatewayHub, cfg.JWTManager, cfg.Log)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		me := v1.Group("")
		me.Use(authMiddleware)
		{
			me.GET("/me", authHandler.Me)
			me.GET("/me/quick-slots", authHandler.GetQuickSlots)
			me.PUT("/me/quick-slots", authHandler.PutQuickSlots)
		}

		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware)
		invHttp.RegisterRoutes(v1, invHandler, authMiddleware, adminMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware, adminMiddleware)
		notifHttp.RegisterRoutes(v1, notifHandler, authMiddleware)
		gateway.RegisterRoutes(v1, gatewayHandler)
	}

	return r
}
