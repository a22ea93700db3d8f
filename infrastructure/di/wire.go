//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"venus-backend/infrastructure/config"

	"github.com/google/wire"
)

// SiteSet provides everything the site API server needs
var SiteSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideIDGenerator,
	ProvideDurableCache,
	ProvideRemoteStore,
	ProvideGateway,
	ProvideStateController,
	ProvideAdminAuthenticator,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// DocstoreSet provides everything the document store server needs
var DocstoreSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideDocumentStorage,
	ProvideDocstoreRouter,
	wire.Struct(new(DocstoreContainer), "*"),
)

// InitializeContainer creates a fully wired site API container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SiteSet)
	return nil, nil, nil // Wire will replace this
}

// InitializeDocstore creates a fully wired document store container
func InitializeDocstore(ctx context.Context, cfg *config.Config) (*DocstoreContainer, func(), error) {
	wire.Build(DocstoreSet)
	return nil, nil, nil // Wire will replace this
}
