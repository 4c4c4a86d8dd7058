package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"tastebud/application/ports"
	"tastebud/domain/core/entities"
	"tastebud/domain/core/valueobjects"
	apperrors "tastebud/pkg/errors"
	"tastebud/pkg/observability"
)

// SongLogRepository implements the SongLogRepository port using DynamoDB.
// Logs live under the owner's partition keyed by day, with a GSI for direct
// lookups by LogID.
type SongLogRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewSongLogRepository creates a new SongLogRepository
func NewSongLogRepository(client *dynamodb.Client, tableName, indexName string, tracer *observability.Tracer, logger *zap.Logger) ports.SongLogRepository {
	return &SongLogRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		tracer:    tracer,
		logger:    logger,
	}
}

// songLogItem represents the DynamoDB item structure for a song log
type songLogItem struct {
	PK              string  `dynamodbav:"PK"`     // USER#<userID>
	SK              string  `dynamodbav:"SK"`     // LOG#<date>
	GSI1PK          string  `dynamodbav:"GSI1PK"` // LOGID#<logID>
	GSI1SK          string  `dynamodbav:"GSI1SK"` // METADATA
	EntityType      string  `dynamodbav:"EntityType"`
	LogID           string  `dynamodbav:"LogID"`
	UserID          string  `dynamodbav:"UserID"`
	Date            string  `dynamodbav:"Date"`
	Title           string  `dynamodbav:"Title"`
	Artist          string  `dynamodbav:"Artist"`
	Album           string  `dynamodbav:"Album,omitempty"`
	SpotifyID       string  `dynamodbav:"SpotifyID,omitempty"`
	AlbumArtURL     string  `dynamodbav:"AlbumArtURL,omitempty"`
	PreviewURL      string  `dynamodbav:"PreviewURL,omitempty"`
	DurationMs      int     `dynamodbav:"DurationMs,omitempty"`
	Popularity      int     `dynamodbav:"Popularity,omitempty"`
	Note            string  `dynamodbav:"Note,omitempty"`
	CreatedAt       string  `dynamodbav:"CreatedAt"`
	EloRating       float64 `dynamodbav:"EloRating"`
	ComparisonCount int     `dynamodbav:"ComparisonCount"`
	LastComparedAt  string  `dynamodbav:"LastComparedAt,omitempty"`
	Version         int     `dynamodbav:"Version"`
}

// newSongLogItem maps an entity onto its item representation
func newSongLogItem(log *entities.SongLog) songLogItem {
	track := log.Track()
	item := songLogItem{
		PK:              userPK(log.UserID()),
		SK:              fmt.Sprintf("LOG#%s", log.Date().String()),
		GSI1PK:          fmt.Sprintf("LOGID#%s", log.ID().String()),
		GSI1SK:          "METADATA",
		EntityType:      "SONGLOG",
		LogID:           log.ID().String(),
		UserID:          log.UserID(),
		Date:            log.Date().String(),
		Title:           track.Title(),
		Artist:          track.Artist(),
		Album:           track.Album(),
		SpotifyID:       track.SpotifyID(),
		AlbumArtURL:     track.AlbumArtURL(),
		PreviewURL:      track.PreviewURL(),
		DurationMs:      track.DurationMs(),
		Popularity:      track.Popularity(),
		Note:            log.Note(),
		CreatedAt:       log.CreatedAt().UTC().Format(time.RFC3339Nano),
		EloRating:       log.EloRating(),
		ComparisonCount: log.ComparisonCount(),
		Version:         log.Version(),
	}
	if last := log.LastComparedAt(); last != nil {
		item.LastComparedAt = last.UTC().Format(time.RFC3339Nano)
	}
	return item
}

// toEntity reconstructs the domain entity from an item
func (item songLogItem) toEntity() (*entities.SongLog, error) {
	id, err := valueobjects.NewLogIDFromString(item.LogID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored log ID: %w", err)
	}
	date, err := valueobjects.NewLogDateFromString(item.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid stored log date: %w", err)
	}

	track := valueobjects.ReconstructTrackRef(
		item.Title, item.Artist, item.Album,
		item.SpotifyID, item.AlbumArtURL, item.PreviewURL,
		item.DurationMs, item.Popularity,
	)

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid stored timestamp: %w", err)
	}

	var lastComparedAt *time.Time
	if item.LastComparedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, item.LastComparedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid stored comparison timestamp: %w", err)
		}
		lastComparedAt = &t
	}

	return entities.ReconstructSongLog(
		id, item.UserID, date, track, item.Note,
		createdAt, item.EloRating, item.ComparisonCount, lastComparedAt, item.Version,
	)
}

// Create persists a new log. The conditional write is the authoritative
// one-log-per-day guard: a same-day race loses here, not in the gate check.
func (r *SongLogRepository) Create(ctx context.Context, log *entities.SongLog) error {
	av, err := attributevalue.MarshalMap(newSongLogItem(log))
	if err != nil {
		return fmt.Errorf("failed to marshal song log: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}

	putErr := r.tracer.TraceFunction(ctx, "songlog.create", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, input)
		return err
	})
	if putErr != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(putErr, &conditionalCheckFailed) {
			return apperrors.NewConflictError("a song log already exists for this day")
		}
		r.logger.Error("failed to save song log",
			zap.String("logID", log.ID().String()),
			zap.Error(putErr),
		)
		return apperrors.NewDatabaseError("create song log", putErr)
	}

	return nil
}

// GetByID retrieves a log through the LogID index
func (r *SongLogRepository) GetByID(ctx context.Context, id valueobjects.LogID) (*entities.SongLog, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("LOGID#%s", id.String()))).
		And(expression.Key("GSI1SK").Equal(expression.Value("METADATA")))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var result *dynamodb.QueryOutput
	err = r.tracer.TraceFunction(ctx, "songlog.get_by_id", func(ctx context.Context) error {
		var qerr error
		result, qerr = r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Limit:                     aws.Int32(1),
		})
		return qerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get song log", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	var item songLogItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song log: %w", err)
	}
	return item.toEntity()
}

// GetByOwnerAndDate retrieves the owner's log for a day, nil when absent
func (r *SongLogRepository) GetByOwnerAndDate(ctx context.Context, userID string, date valueobjects.LogDate) (*entities.SongLog, error) {
	var result *dynamodb.GetItemOutput
	err := r.tracer.TraceFunction(ctx, "songlog.get_by_date", func(ctx context.Context) error {
		var gerr error
		result, gerr = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
				"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("LOG#%s", date.String())},
			},
		})
		return gerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get song log by date", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item songLogItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song log: %w", err)
	}
	return item.toEntity()
}

// GetByUserID retrieves all of a user's logs, newest date first
func (r *SongLogRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.SongLog, error) {
	return r.queryLogs(ctx, userID, 0)
}

// GetRecentByUserID retrieves the user's most recent logs, up to limit
func (r *SongLogRepository) GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*entities.SongLog, error) {
	return r.queryLogs(ctx, userID, limit)
}

// queryLogs pages through the owner's LOG# range in descending date order.
// A limit of 0 means all logs.
func (r *SongLogRepository) queryLogs(ctx context.Context, userID string, limit int) ([]*entities.SongLog, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("LOG#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	logs := []*entities.SongLog{}
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		}
		if limit > 0 {
			input.Limit = aws.Int32(int32(limit - len(logs)))
		}

		var result *dynamodb.QueryOutput
		err := r.tracer.TraceFunction(ctx, "songlog.query", func(ctx context.Context) error {
			var qerr error
			result, qerr = r.client.Query(ctx, input)
			return qerr
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query song logs", err)
		}

		for _, raw := range result.Items {
			var item songLogItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal song log: %w", err)
			}
			log, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			logs = append(logs, log)
			if limit > 0 && len(logs) >= limit {
				return logs, nil
			}
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			return logs, nil
		}
	}
}

// CountByUserID counts a user's logs without fetching them
func (r *SongLogRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("LOG#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	count := 0
	var lastKey map[string]types.AttributeValue
	for {
		var result *dynamodb.QueryOutput
		err := r.tracer.TraceFunction(ctx, "songlog.count", func(ctx context.Context) error {
			var qerr error
			result, qerr = r.client.Query(ctx, &dynamodb.QueryInput{
				TableName:                 aws.String(r.tableName),
				KeyConditionExpression:    expr.KeyCondition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				Select:                    types.SelectCount,
				ExclusiveStartKey:         lastKey,
			})
			return qerr
		})
		if err != nil {
			return 0, apperrors.NewDatabaseError("count song logs", err)
		}
		count += int(result.Count)

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			return count, nil
		}
	}
}

// userPK builds the partition key for a user's items
func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}
