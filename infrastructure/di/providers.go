package di

import (
	"context"
	"fmt"
	"net/http"

	"venus-backend/application/commands"
	"venus-backend/application/commands/bus"
	commands_handlers "venus-backend/application/commands/handlers"
	"venus-backend/application/ports"
	"venus-backend/application/queries"
	querybus "venus-backend/application/queries/bus"
	queries_handlers "venus-backend/application/queries/handlers"
	"venus-backend/application/services"
	"venus-backend/domain/core/valueobjects"
	"venus-backend/infrastructure/config"
	"venus-backend/infrastructure/persistence"
	"venus-backend/infrastructure/persistence/cache"
	"venus-backend/infrastructure/persistence/memory"
	"venus-backend/infrastructure/persistence/postgres"
	"venus-backend/infrastructure/persistence/remote"
	"venus-backend/interfaces/http/rest"
	"venus-backend/pkg/observability"

	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideMetrics creates the metrics collector, or nil when metrics are disabled
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("venus")
}

// ProvideIDGenerator creates the identifier generator named by ID_STRATEGY
func ProvideIDGenerator(cfg *config.Config) (valueobjects.IDGenerator, error) {
	return valueobjects.NewIDGenerator(valueobjects.IDStrategy(cfg.IDStrategy))
}

// ProvideDurableCache creates the local cache slot named by CACHE_PROVIDER
func ProvideDurableCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.DurableCache, func(), error) {
	switch cfg.CacheProvider {
	case config.CacheProviderRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		return cache.NewRedisCache(client, cfg.CacheKey, logger), cleanup, nil

	case config.CacheProviderMemory:
		return cache.NewMemoryCache(), func() {}, nil

	default:
		fileCache, err := cache.NewFileCache(cfg.CacheDir, cfg.CacheKey, logger)
		if err != nil {
			return nil, nil, err
		}
		return fileCache, func() {}, nil
	}
}

// ProvideRemoteStore creates the remote store client. It returns a nil
// interface when no endpoint is configured.
func ProvideRemoteStore(cfg *config.Config, logger *zap.Logger) ports.RemoteStore {
	if cfg.RemoteEndpoint == "" {
		logger.Info("No remote endpoint configured, running on the local cache only")
		return nil
	}

	breaker := remote.DefaultBreakerConfig("remote-document")
	breaker.MaxRequests = uint32(cfg.Breaker.MaxRequests)
	breaker.Interval = cfg.Breaker.Interval
	breaker.Timeout = cfg.Breaker.Timeout
	breaker.FailureThreshold = cfg.Breaker.FailureThreshold
	breaker.MinRequests = uint32(cfg.Breaker.MinRequests)

	return remote.NewHTTPStore(remote.Config{
		Endpoint: cfg.RemoteEndpoint,
		Timeout:  cfg.RemoteTimeout,
		Breaker:  breaker,
	}, nil, logger)
}

// ProvideGateway creates the persistence gateway
func ProvideGateway(
	remoteStore ports.RemoteStore,
	durableCache ports.DurableCache,
	logger *zap.Logger,
	metrics *observability.Collector,
) ports.SnapshotGateway {
	return persistence.NewGateway(remoteStore, durableCache, logger, metrics)
}

// ProvideStateController creates the state controller. Initialize is left to the caller.
// Generators that track issued ids are seeded from the loaded document.
func ProvideStateController(
	cfg *config.Config,
	gateway ports.SnapshotGateway,
	ids valueobjects.IDGenerator,
	logger *zap.Logger,
	metrics *observability.Collector,
) *services.StateController {
	var opts []services.Option
	if seeder, ok := ids.(valueobjects.IDSeeder); ok {
		opts = append(opts, services.WithIDSeeder(seeder))
	}
	return services.NewStateController(gateway, cfg.SaveTimeout, logger, metrics, opts...)
}

// ProvideAdminAuthenticator creates the admin password check
func ProvideAdminAuthenticator(cfg *config.Config) *services.AdminAuthenticator {
	return services.NewAdminAuthenticator(cfg.AdminPassword)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// typedCommandHandler is implemented by every handler in application/commands/handlers
type typedCommandHandler[C bus.Command] interface {
	Handle(ctx context.Context, cmd C) error
}

func adaptCommand[C bus.Command](h typedCommandHandler[C]) *CommandHandlerAdapter {
	return &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			typed, ok := cmd.(C)
			if !ok {
				return fmt.Errorf("invalid command type %T", cmd)
			}
			return h.Handle(ctx, typed)
		},
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(controller *services.StateController, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(&zapLoggerAdapter{logger.Named("commands")}))

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.AddCommentCommand{}, adaptCommand[commands.AddCommentCommand](commands_handlers.NewAddCommentHandler(controller, logger))},
		{commands.ToggleCommentVisibilityCommand{}, adaptCommand[commands.ToggleCommentVisibilityCommand](commands_handlers.NewToggleCommentVisibilityHandler(controller, logger))},
		{commands.DeleteCommentCommand{}, adaptCommand[commands.DeleteCommentCommand](commands_handlers.NewDeleteCommentHandler(controller, logger))},
		{commands.CreateStoryCommand{}, adaptCommand[commands.CreateStoryCommand](commands_handlers.NewCreateStoryHandler(controller, logger))},
		{commands.ToggleStoryVisibilityCommand{}, adaptCommand[commands.ToggleStoryVisibilityCommand](commands_handlers.NewToggleStoryVisibilityHandler(controller, logger))},
		{commands.DeleteStoryCommand{}, adaptCommand[commands.DeleteStoryCommand](commands_handlers.NewDeleteStoryHandler(controller, logger))},
		{commands.CreateTopicCommand{}, adaptCommand[commands.CreateTopicCommand](commands_handlers.NewCreateTopicHandler(controller, logger))},
		{commands.UpdateTopicCommand{}, adaptCommand[commands.UpdateTopicCommand](commands_handlers.NewUpdateTopicHandler(controller, logger))},
		{commands.DeleteTopicCommand{}, adaptCommand[commands.DeleteTopicCommand](commands_handlers.NewDeleteTopicHandler(controller, logger))},
		{commands.SubmitBookingCommand{}, adaptCommand[commands.SubmitBookingCommand](commands_handlers.NewSubmitBookingHandler(controller, logger))},
		{commands.SetBookingStatusCommand{}, adaptCommand[commands.SetBookingStatusCommand](commands_handlers.NewSetBookingStatusHandler(controller, logger))},
		{commands.UpdateSettingsCommand{}, adaptCommand[commands.UpdateSettingsCommand](commands_handlers.NewUpdateSettingsHandler(controller, logger))},
	}

	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

type typedQueryHandler[Q querybus.Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

func adaptQuery[Q querybus.Query, R any](h typedQueryHandler[Q, R]) *QueryHandlerAdapter {
	return &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			typed, ok := query.(Q)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", query)
			}
			return h.Handle(ctx, typed)
		},
	}
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(controller *services.StateController, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(&zapLoggerAdapter{logger.Named("queries")}))

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetPublicSiteQuery{}, adaptQuery[queries.GetPublicSiteQuery, *queries.PublicSiteResult](queries_handlers.NewGetPublicSiteHandler(controller, logger))},
		{queries.GetAdminStateQuery{}, adaptQuery[queries.GetAdminStateQuery, *queries.AdminStateResult](queries_handlers.NewGetAdminStateHandler(controller))},
		{queries.ListBookingsQuery{}, adaptQuery[queries.ListBookingsQuery, *queries.ListBookingsResult](queries_handlers.NewListBookingsHandler(controller, logger))},
		{queries.GetGroundingContextQuery{}, adaptQuery[queries.GetGroundingContextQuery, *queries.GroundingContextResult](queries_handlers.NewGetGroundingContextHandler(controller))},
	}

	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideRouter creates the HTTP handler of the site API
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	controller *services.StateController,
	auth *services.AdminAuthenticator,
	ids valueobjects.IDGenerator,
	metrics *observability.Collector,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(rest.RouterDeps{
		CommandBus:  commandBus,
		QueryBus:    queryBus,
		Readiness:   controller,
		Auth:        auth,
		IDs:         ids,
		Metrics:     metrics,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Debug:       cfg.IsDevelopment(),
		Logger:      logger,
	}).Setup()
}

// DocumentStorage is the storage behind the document store server
type DocumentStorage struct {
	Repository ports.DocumentRepository
	Health     ports.HealthChecker // nil for in-memory storage
}

// ProvideDocumentStorage opens the storage named by DOCSTORE_BACKEND
func ProvideDocumentStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*DocumentStorage, func(), error) {
	switch cfg.DocstoreBackend {
	case config.DocstoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			URL:      cfg.DatabaseURL,
			MaxConns: int32(cfg.DatabaseMaxConns),
		})
		if err != nil {
			return nil, nil, err
		}

		repo := postgres.NewDocumentRepository(pool, cfg.DocumentKey, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return &DocumentStorage{Repository: repo, Health: pool}, pool.Close, nil

	default:
		return &DocumentStorage{Repository: memory.NewDocumentRepository()}, func() {}, nil
	}
}

// ProvideDocstoreRouter creates the HTTP handler of the document store server
func ProvideDocstoreRouter(storage *DocumentStorage, metrics *observability.Collector, logger *zap.Logger) http.Handler {
	return rest.NewDocstoreRouter(storage.Repository, storage.Health, metrics, logger)
}

// zapLoggerAdapter adapts zap.Logger to the bus Logger interfaces
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
