// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/gateway"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/catalog"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/database"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/identity"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateful singletons)
	SessionService  *services.SessionService
	CatalogService  *services.CatalogService
	WishlistService *services.WishlistService

	// Infrastructure dependencies
	AccountGateway    gateway.AccountGateway
	IdentityStore     *identity.Store
	CatalogRepository *catalog.Repository
	DB                *database.DB
	Logger            *logging.ChanneledLogger
	PerfTracker       *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) (*Container, error) {
	perfTracker := performance.NewTracker(&performance.TrackerConfig{
		MaxMarkers: config.MaxTrackedOperations,
	})

	accountGateway := gateway.NewHTTPAccountGateway(config.AccountServiceURL, config.AccountRequestTimeout, logger)
	identityStore := identity.NewStore(config.IdentityStorePath, logger)
	catalogRepo := catalog.NewRepository(db, logger)

	if err := catalogRepo.CreateSchema(); err != nil {
		return nil, fmt.Errorf("failed to create collection schema: %w", err)
	}
	if err := catalogRepo.SeedCollections(); err != nil {
		return nil, fmt.Errorf("failed to seed collections: %w", err)
	}

	catalogService, err := services.NewCatalogService(catalogRepo, logger, perfTracker)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog service: %w", err)
	}

	return &Container{
		SessionService:  services.NewSessionService(accountGateway, identityStore, logger, perfTracker),
		CatalogService:  catalogService,
		WishlistService: services.NewWishlistService(logger),

		AccountGateway:    accountGateway,
		IdentityStore:     identityStore,
		CatalogRepository: catalogRepo,
		DB:                db,
		Logger:            logger,
		PerfTracker:       perfTracker,
	}, nil
}
