package dynamodb

import (
	"context"
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

// preferencesGSI2PK is the sparse partition that collects every profile so
// the similarity engine can scan them in one query
const preferencesGSI2PK = "ENTITY#PREFERENCES"

// PreferenceRepository implements the PreferenceRepository port using DynamoDB
type PreferenceRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(client *dynamodb.Client, tableName, gsi2IndexName string, tracer *observability.Tracer, logger *zap.Logger) ports.PreferenceRepository {
	return &PreferenceRepository{
		client:    client,
		tableName: tableName,
		indexName: gsi2IndexName,
		tracer:    tracer,
		logger:    logger,
	}
}

// preferenceItem represents the DynamoDB item structure for a taste profile
type preferenceItem struct {
	PK         string                   `dynamodbav:"PK"`     // USER#<userID>
	SK         string                   `dynamodbav:"SK"`     // PREFERENCES
	GSI2PK     string                   `dynamodbav:"GSI2PK"` // ENTITY#PREFERENCES
	GSI2SK     string                   `dynamodbav:"GSI2SK"` // USER#<userID>
	EntityType string                   `dynamodbav:"EntityType"`
	UserID     string                   `dynamodbav:"UserID"`
	Username   string                   `dynamodbav:"Username,omitempty"`
	Genres     []string                 `dynamodbav:"Genres,omitempty"`
	Artists    []valueobjects.ArtistRef `dynamodbav:"Artists,omitempty"`
	Moods      []string                 `dynamodbav:"Moods,omitempty"`
	UpdatedAt  string                   `dynamodbav:"UpdatedAt"`
	Version    int                      `dynamodbav:"Version"`
}

func newPreferenceItem(prefs *entities.UserPreferences) preferenceItem {
	return preferenceItem{
		PK:         userPK(prefs.UserID()),
		SK:         "PREFERENCES",
		GSI2PK:     preferencesGSI2PK,
		GSI2SK:     userPK(prefs.UserID()),
		EntityType: "PREFERENCES",
		UserID:     prefs.UserID(),
		Username:   prefs.Username(),
		Genres:     prefs.Genres(),
		Artists:    prefs.Artists(),
		Moods:      prefs.Moods(),
		UpdatedAt:  prefs.UpdatedAt().UTC().Format(time.RFC3339Nano),
		Version:    prefs.Version(),
	}
}

func (item preferenceItem) toEntity() (*entities.UserPreferences, error) {
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid stored timestamp: %w", err)
	}
	return entities.ReconstructUserPreferences(
		item.UserID, item.Username,
		item.Genres, item.Artists, item.Moods,
		updatedAt, item.Version,
	)
}

// Save persists a profile, last writer wins
func (r *PreferenceRepository) Save(ctx context.Context, prefs *entities.UserPreferences) error {
	av, err := attributevalue.MarshalMap(newPreferenceItem(prefs))
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	putErr := r.tracer.TraceFunction(ctx, "preferences.save", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		return err
	})
	if putErr != nil {
		r.logger.Error("failed to save preferences",
			zap.String("userID", prefs.UserID()),
			zap.Error(putErr),
		)
		return apperrors.NewDatabaseError("save preferences", putErr)
	}

	return nil
}

// GetByUserID retrieves a user's profile, nil when none exists
func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserPreferences, error) {
	var result *dynamodb.GetItemOutput
	err := r.tracer.TraceFunction(ctx, "preferences.get", func(ctx context.Context) error {
		var gerr error
		result, gerr = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
				"SK": &types.AttributeValueMemberS{Value: "PREFERENCES"},
			},
		})
		return gerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get preferences", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item preferenceItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return item.toEntity()
}

// GetAll retrieves every stored profile through the sparse entity index
func (r *PreferenceRepository) GetAll(ctx context.Context) ([]*entities.UserPreferences, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(preferencesGSI2PK))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profiles := []*entities.UserPreferences{}
	var lastKey map[string]types.AttributeValue
	for {
		var result *dynamodb.QueryOutput
		err := r.tracer.TraceFunction(ctx, "preferences.get_all", func(ctx context.Context) error {
			var qerr error
			result, qerr = r.client.Query(ctx, &dynamodb.QueryInput{
				TableName:                 aws.String(r.tableName),
				IndexName:                 aws.String(r.indexName),
				KeyConditionExpression:    expr.KeyCondition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				ExclusiveStartKey:         lastKey,
			})
			return qerr
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query preferences", err)
		}

		for _, raw := range result.Items {
			var item preferenceItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
			}
			prefs, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, prefs)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			return profiles, nil
		}
	}
}
