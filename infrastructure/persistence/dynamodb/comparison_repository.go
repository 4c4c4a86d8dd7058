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

// ComparisonRepository implements the ComparisonRepository port using
// DynamoDB. The rating-update transaction lives here: both logs and the
// audit record commit together or not at all.
type ComparisonRepository struct {
	client    *dynamodb.Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewComparisonRepository creates a new ComparisonRepository
func NewComparisonRepository(client *dynamodb.Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) ports.ComparisonRepository {
	return &ComparisonRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

// comparisonItem represents the DynamoDB item structure for a comparison
type comparisonItem struct {
	PK           string  `dynamodbav:"PK"` // USER#<userID>
	SK           string  `dynamodbav:"SK"` // COMPARISON#<createdAt>#<id>
	EntityType   string  `dynamodbav:"EntityType"`
	ComparisonID string  `dynamodbav:"ComparisonID"`
	UserID       string  `dynamodbav:"UserID"`
	WinnerLogID  string  `dynamodbav:"WinnerLogID"`
	LoserLogID   string  `dynamodbav:"LoserLogID"`
	WinnerRating float64 `dynamodbav:"WinnerRating"`
	LoserRating  float64 `dynamodbav:"LoserRating"`
	CreatedAt    string  `dynamodbav:"CreatedAt"`
}

func newComparisonItem(event *entities.ComparisonEvent) comparisonItem {
	createdAt := event.CreatedAt().UTC().Format(time.RFC3339Nano)
	return comparisonItem{
		PK:           userPK(event.UserID()),
		SK:           fmt.Sprintf("COMPARISON#%s#%s", createdAt, event.ID().String()),
		EntityType:   "COMPARISON",
		ComparisonID: event.ID().String(),
		UserID:       event.UserID(),
		WinnerLogID:  event.WinnerLogID().String(),
		LoserLogID:   event.LoserLogID().String(),
		WinnerRating: event.WinnerRating(),
		LoserRating:  event.LoserRating(),
		CreatedAt:    createdAt,
	}
}

func (item comparisonItem) toEntity() (*entities.ComparisonEvent, error) {
	id, err := valueobjects.NewLogIDFromString(item.ComparisonID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored comparison ID: %w", err)
	}
	winnerID, err := valueobjects.NewLogIDFromString(item.WinnerLogID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored winner ID: %w", err)
	}
	loserID, err := valueobjects.NewLogIDFromString(item.LoserLogID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored loser ID: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid stored timestamp: %w", err)
	}

	return entities.ReconstructComparisonEvent(
		id, item.UserID, winnerID, loserID,
		item.WinnerRating, item.LoserRating, createdAt,
	), nil
}

// ApplyComparison commits both updated logs and the audit record in one
// TransactWriteItems call. Each log write is guarded by its pre-update
// version so a concurrent writer cancels the whole transaction.
func (r *ComparisonRepository) ApplyComparison(ctx context.Context, winner, loser *entities.SongLog, event *entities.ComparisonEvent) error {
	winnerPut, err := r.versionedLogPut(winner)
	if err != nil {
		return err
	}
	loserPut, err := r.versionedLogPut(loser)
	if err != nil {
		return err
	}

	eventAV, err := attributevalue.MarshalMap(newComparisonItem(event))
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	err = r.tracer.TraceFunction(ctx, "comparison.apply", func(ctx context.Context) error {
		_, terr := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{Put: winnerPut},
				{Put: loserPut},
				{Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(SK)"),
				}},
			},
		})
		return terr
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			r.logger.Warn("comparison transaction canceled",
				zap.String("userID", event.UserID()),
				zap.Error(err),
			)
			return apperrors.NewConflictError("song log changed concurrently, retry the comparison").WithRetryable(true)
		}
		return apperrors.NewDatabaseError("apply comparison", err)
	}

	return nil
}

// versionedLogPut builds a put of the updated log conditioned on its
// pre-update version still being in place
func (r *ComparisonRepository) versionedLogPut(log *entities.SongLog) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(newSongLogItem(log))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal song log: %w", err)
	}

	return &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("Version = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", log.Version()-1)},
		},
	}, nil
}

// GetByUserID retrieves a user's comparison history, newest first
func (r *ComparisonRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.ComparisonEvent, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("COMPARISON#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	var result *dynamodb.QueryOutput
	err = r.tracer.TraceFunction(ctx, "comparison.query", func(ctx context.Context) error {
		var qerr error
		result, qerr = r.client.Query(ctx, input)
		return qerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query comparisons", err)
	}

	comparisons := make([]*entities.ComparisonEvent, 0, len(result.Items))
	for _, raw := range result.Items {
		var item comparisonItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comparison: %w", err)
		}
		event, err := item.toEntity()
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, event)
	}

	return comparisons, nil
}

// CountByUserID counts a user's recorded comparisons
func (r *ComparisonRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("COMPARISON#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	count := 0
	var lastKey map[string]types.AttributeValue
	for {
		var result *dynamodb.QueryOutput
		err := r.tracer.TraceFunction(ctx, "comparison.count", func(ctx context.Context) error {
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
			return 0, apperrors.NewDatabaseError("count comparisons", err)
		}
		count += int(result.Count)

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			return count, nil
		}
	}
}
