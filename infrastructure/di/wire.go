//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"tastebud/application/commands/bus"
	"tastebud/application/ports"
	querybus "tastebud/application/queries/bus"
	"tastebud/infrastructure/config"
	"tastebud/pkg/auth"
	"tastebud/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	Catalog      ports.TrackCatalog
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
	JWTValidator *auth.JWTValidator
	RateLimiter  *auth.DistributedRateLimiter
}

// Shutdown flushes buffered telemetry and releases resources
func (c *Container) Shutdown(ctx context.Context) {
	if c.Metrics != nil {
		c.Metrics.Flush(ctx)
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideSongLogRepository,
	ProvideComparisonRepository,
	ProvidePreferenceRepository,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideDistributedLock,
	ProvideRatingLock,
	ProvideDistributedRateLimiter,
	ProvideInMemoryCache,
	ProvideTrackCatalog,
	ProvidePairSelector,
	ProvideSimilarityScorer,
	ProvideJWTValidator,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
