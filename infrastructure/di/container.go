package di

import (
	"net/http"

	"venus-backend/application/commands/bus"
	querybus "venus-backend/application/queries/bus"
	"venus-backend/application/services"
	"venus-backend/infrastructure/config"
	"venus-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all site API dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Controller *services.StateController
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Handler    http.Handler
}

// DocstoreContainer holds all document store dependencies
type DocstoreContainer struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Collector
	Storage *DocumentStorage
	Handler http.Handler
}
