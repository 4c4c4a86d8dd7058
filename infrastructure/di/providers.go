package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"tastebud/application/commands"
	"tastebud/application/commands/bus"
	commands_handlers "tastebud/application/commands/handlers"
	"tastebud/application/ports"
	"tastebud/application/queries"
	querybus "tastebud/application/queries/bus"
	queries_handlers "tastebud/application/queries/handlers"
	"tastebud/domain/services"
	"tastebud/infrastructure/catalog/spotify"
	"tastebud/infrastructure/config"
	"tastebud/infrastructure/messaging/eventbridge"
	"tastebud/infrastructure/persistence/dynamodb"
	"tastebud/pkg/auth"
	"tastebud/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideSongLogRepository creates the song log repository
func ProvideSongLogRepository(client *awsdynamodb.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.SongLogRepository {
	return dynamodb.NewSongLogRepository(client, cfg.DynamoDBTable, cfg.IndexName, tracer, logger)
}

// ProvideComparisonRepository creates the comparison repository
func ProvideComparisonRepository(client *awsdynamodb.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.ComparisonRepository {
	return dynamodb.NewComparisonRepository(client, cfg.DynamoDBTable, tracer, logger)
}

// ProvidePreferenceRepository creates the preference repository
func ProvidePreferenceRepository(client *awsdynamodb.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.PreferenceRepository {
	return dynamodb.NewPreferenceRepository(client, cfg.DynamoDBTable, cfg.GSI2IndexName, tracer, logger)
}

// ProvideEventPublisher creates the EventBridge event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics("", nil)
	}
	namespace := fmt.Sprintf("TasteBud/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("tastebud")
}

// ProvideDistributedLock creates a distributed lock instance
func ProvideDistributedLock(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodb.DistributedLock {
	return dynamodb.NewDistributedLock(client, cfg.DynamoDBTable, logger)
}

// ProvideRatingLock creates the per-user rating lock
func ProvideRatingLock(lock *dynamodb.DistributedLock, logger *zap.Logger) ports.RatingLock {
	return dynamodb.NewRatingLockService(lock, logger)
}

// ProvideDistributedRateLimiter creates a distributed rate limiter
func ProvideDistributedRateLimiter(client *awsdynamodb.Client, cfg *config.Config) *auth.DistributedRateLimiter {
	return auth.NewDistributedRateLimiter(
		client,
		cfg.DynamoDBTable,
		cfg.RequestsPerMinute,
		time.Minute,
		"API",
	)
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideTrackCatalog creates the Spotify catalog client
func ProvideTrackCatalog(cfg *config.Config, cache ports.Cache, logger *zap.Logger) ports.TrackCatalog {
	return spotify.NewClient(cfg.SpotifyBaseURL, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cache, logger)
}

// ProvidePairSelector creates the comparison pair selector
func ProvidePairSelector() *services.PairSelector {
	return services.NewPairSelector(time.Now().UnixNano())
}

// ProvideSimilarityScorer creates the similarity scorer
func ProvideSimilarityScorer() *services.SimilarityScorer {
	return services.NewSimilarityScorer()
}

// ProvideJWTValidator creates the JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.IsDevelopment() {
		secret = "dev-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	songLogRepo ports.SongLogRepository,
	comparisonRepo ports.ComparisonRepository,
	prefRepo ports.PreferenceRepository,
	catalog ports.TrackCatalog,
	ratingLock ports.RatingLock,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()
	logging := bus.LoggingMiddleware(logger)

	createHandler := commands_handlers.NewCreateSongLogHandler(songLogRepo, prefRepo, catalog, publisher, logger)
	commandBus.Register(commands.CreateSongLogCommand{}, bus.Chain(createHandler, logging))

	compareHandler := commands_handlers.NewRecordComparisonHandler(songLogRepo, comparisonRepo, ratingLock, publisher, metrics, logger)
	commandBus.Register(commands.RecordComparisonCommand{}, bus.Chain(compareHandler, logging))

	prefsHandler := commands_handlers.NewUpdatePreferencesHandler(prefRepo, publisher, logger)
	commandBus.Register(commands.UpdatePreferencesCommand{}, bus.Chain(prefsHandler, logging))

	return commandBus
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	songLogRepo ports.SongLogRepository,
	comparisonRepo ports.ComparisonRepository,
	prefRepo ports.PreferenceRepository,
	selector *services.PairSelector,
	scorer *services.SimilarityScorer,
	cache ports.Cache,
	metrics *observability.Metrics,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()
	withMetrics := querybus.NewMetricsMiddleware(metrics).Wrap

	queryBus.Register(queries.GetComparisonPairQuery{},
		withMetrics(queries_handlers.NewGetComparisonPairHandler(songLogRepo, selector, cache)))
	queryBus.Register(queries.GetRankingsQuery{},
		withMetrics(queries_handlers.NewGetRankingsHandler(songLogRepo)))
	queryBus.Register(queries.GetStatsQuery{},
		withMetrics(queries_handlers.NewGetStatsHandler(songLogRepo, comparisonRepo)))
	queryBus.Register(queries.GetSocialFeedQuery{},
		withMetrics(queries_handlers.NewGetSocialFeedHandler(prefRepo, songLogRepo, scorer)))
	queryBus.Register(queries.GetUserDiscoveryQuery{},
		withMetrics(queries_handlers.NewGetUserDiscoveryHandler(prefRepo, songLogRepo, scorer)))
	queryBus.Register(queries.GetSimilarUsersQuery{},
		withMetrics(queries_handlers.NewGetSimilarUsersHandler(prefRepo, scorer)))
	queryBus.Register(queries.ListSongLogsQuery{},
		withMetrics(queries_handlers.NewListSongLogsHandler(songLogRepo)))

	gate := queries_handlers.NewCanLogTodayHandler(songLogRepo, prefRepo)
	queryBus.Register(queries.CanLogTodayQuery{}, withMetrics(gate))
	queryBus.Register(queries.GetHomeStatusQuery{},
		withMetrics(queries_handlers.NewGetHomeStatusHandler(gate)))

	return queryBus
}
