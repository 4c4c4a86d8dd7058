package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const maxDatumsPerCall = 20

// Metrics buffers metric datums and publishes them to CloudWatch in batches.
// Publishing is best-effort; a metrics outage never fails a request.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu     sync.Mutex
	buffer []cwtypes.MetricDatum
}

// NewMetrics creates a metrics publisher for the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// IncrementCounter records a count metric
func (m *Metrics) IncrementCounter(name string, value float64, dimensions map[string]string) {
	m.record(name, value, cwtypes.StandardUnitCount, dimensions)
}

// RecordDuration records a latency metric in milliseconds
func (m *Metrics) RecordDuration(name string, d time.Duration, dimensions map[string]string) {
	m.record(name, float64(d.Milliseconds()), cwtypes.StandardUnitMilliseconds, dimensions)
}

// RecordValue records an arbitrary gauge-style value
func (m *Metrics) RecordValue(name string, value float64, dimensions map[string]string) {
	m.record(name, value, cwtypes.StandardUnitNone, dimensions)
}

func (m *Metrics) record(name string, value float64, unit cwtypes.StandardUnit, dimensions map[string]string) {
	datum := cwtypes.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
	for k, v := range dimensions {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	shouldFlush := len(m.buffer) >= maxDatumsPerCall
	m.mu.Unlock()

	if shouldFlush {
		m.Flush(context.Background())
	}
}

// Flush publishes all buffered datums. Errors are swallowed after the buffer
// is drained so callers on the request path are never blocked.
func (m *Metrics) Flush(ctx context.Context) {
	if m.client == nil {
		return
	}

	m.mu.Lock()
	pending := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	for len(pending) > 0 {
		batch := pending
		if len(batch) > maxDatumsPerCall {
			batch = batch[:maxDatumsPerCall]
		}
		pending = pending[len(batch):]

		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch,
		})
	}
}
