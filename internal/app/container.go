package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/api"
	"github.com/Andrej19990506/supboard-booking-backend/internal/auth"
	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
	"github.com/Andrej19990506/supboard-booking-backend/internal/client"
	"github.com/Andrej19990506/supboard-booking-backend/internal/gateway"
	"github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype"
	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/storage"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
	"github.com/Andrej19990506/supboard-booking-backend/internal/staff"
)

// Version is reported to gateway clients on CLIENT_READY and GET_VERSION.
const Version = "1.0.0"

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
	Log          zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Hub        *gateway.Hub
}

// catalogAdapter exposes the inventory catalog to the pricing module.
type catalogAdapter struct {
	inv inventorytype.Service
}

func (a catalogAdapter) Catalog(ctx context.Context) (map[string]pricing.CatalogEntry, error) {
	types, _, err := a.inv.List(ctx, inventorytype.Filter{ActiveOnly: true, PageSize: 500})
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]pricing.CatalogEntry, len(types))
	for _, it := range types {
		catalog[it.ID] = pricing.CatalogEntry{
			DisplayName: it.DisplayName,
			Icon:        it.IconPath,
		}
	}
	return catalog, nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	files, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// Staff module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	// Client module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// Inventory type module
	invRepo := inventorytype.NewPgxRepository(cfg.DBPool)
	invService := inventorytype.NewService(invRepo, files)

	// Pricing module
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo, catalogAdapter{inv: invService})

	// Notification module and gateway. The hub broadcasts what the
	// notification service stores; the booking service emits through it.
	notifStore := notification.NewStore(cfg.Redis)
	hub := gateway.NewHub(nil, Version, cfg.Log)
	notifService := notification.NewService(notifStore, hub, cfg.Log)
	hub.SetBackend(notifService)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, clientService, invService, pricingService, notifService, cfg.Log)
	notifService.SetBookingActions(bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		StaffService:        staffService,
		ClientService:       clientService,
		InventoryService:    invService,
		BookingService:      bookingService,
		PricingService:      pricingService,
		NotificationService: notifService,
		GatewayHub:          hub,
		JWTManager:          jwtManager,
		Log:                 cfg.Log,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Hub:        hub,
	}, nil
}
