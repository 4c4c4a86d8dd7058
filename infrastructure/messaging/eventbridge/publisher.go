package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"tastebud/application/ports"
	"tastebud/domain/events"
)

// eventSource identifies this service on the bus
const eventSource = "tastebud.api"

// maxEntriesPerPut is the EventBridge PutEvents batch limit
const maxEntriesPerPut = 10

// EventBridgePublisher publishes domain events to an EventBridge bus
type EventBridgePublisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewEventBridgePublisher creates a new publisher for the given bus
func NewEventBridgePublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &EventBridgePublisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single event
func (p *EventBridgePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends events in PutEvents-sized batches. Partial failures
// are reported as an error so callers can decide whether to retry.
func (p *EventBridgePublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	entries := make([]types.PutEventsRequestEntry, 0, len(domainEvents))
	for _, event := range domainEvents {
		detail, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
		}
		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.busName),
			Source:       aws.String(eventSource),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(event.GetTimestamp()),
		})
	}

	for start := 0; start < len(entries); start += maxEntriesPerPut {
		end := start + maxEntriesPerPut
		if end > len(entries) {
			end = len(entries)
		}

		result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: entries[start:end],
		})
		if err != nil {
			return fmt.Errorf("failed to publish events: %w", err)
		}
		if result.FailedEntryCount > 0 {
			for _, entry := range result.Entries {
				if entry.ErrorCode != nil {
					p.logger.Warn("event entry rejected",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
					)
				}
			}
			return fmt.Errorf("%d event entries failed to publish", result.FailedEntryCount)
		}
	}

	return nil
}
