package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricEventsProcessedTotal     = "push_events_processed_total"
	MetricMessagesEnqueuedTotal    = "push_messages_enqueued_total"
	MetricMessagesDeliveredTotal   = "push_messages_delivered_total"
	MetricMessagesFailedTotal      = "push_messages_failed_total"
	MetricDeliveryAttempts         = "push_delivery_attempts"
	MetricPriceRangesEmittedTotal  = "push_price_ranges_emitted_total"
	MetricSubscriptionsMatchedTotal = "push_subscriptions_matched_total"
	MetricQueueDepth               = "push_queue_depth"
)

// MetricsHolder holds the instruments for the processor and sender
// binaries. No code in this repository records to them or calls
// SetQueueDepth; QueueDepth is an observable gauge that reports whatever
// value SetQueueDepth last stored.
type MetricsHolder struct {
	EventsProcessedTotal      metric.Int64Counter
	MessagesEnqueuedTotal     metric.Int64Counter
	MessagesDeliveredTotal    metric.Int64Counter
	MessagesFailedTotal       metric.Int64Counter
	DeliveryAttempts          metric.Int64Histogram
	PriceRangesEmittedTotal   metric.Int64Counter
	SubscriptionsMatchedTotal metric.Int64Counter
	QueueDepth                metric.Int64ObservableGauge

	mu         sync.RWMutex
	queueDepth int64
}

var (
	globalMetrics *MetricsHolder
	initOnce      sync.Once
)

// GetGlobalMetrics returns the singleton metrics holder.
func GetGlobalMetrics() *MetricsHolder {
	initOnce.Do(func() {
		globalMetrics = &MetricsHolder{}
	})
	return globalMetrics
}

// InitMetrics registers every instrument against meter. The Prometheus
// exporter wired in pkg/telemetry/otel.go scrapes this registry; no HTTP
// /metrics endpoint is stood up here.
func (m *MetricsHolder) InitMetrics(meter metric.Meter) error {
	var err error

	m.EventsProcessedTotal, err = meter.Int64Counter(MetricEventsProcessedTotal, metric.WithDescription("Blockchain and order-stream events processed, by kind"))
	if err != nil {
		return err
	}

	m.MessagesEnqueuedTotal, err = meter.Int64Counter(MetricMessagesEnqueuedTotal, metric.WithDescription("Prepared messages written to the delivery queue"))
	if err != nil {
		return err
	}

	m.MessagesDeliveredTotal, err = meter.Int64Counter(MetricMessagesDeliveredTotal, metric.WithDescription("Messages acknowledged as delivered by the push gateway"))
	if err != nil {
		return err
	}

	m.MessagesFailedTotal, err = meter.Int64Counter(MetricMessagesFailedTotal, metric.WithDescription("Messages that exhausted their delivery attempts"))
	if err != nil {
		return err
	}

	m.DeliveryAttempts, err = meter.Int64Histogram(MetricDeliveryAttempts, metric.WithDescription("Attempts taken before a message was delivered or exhausted"))
	if err != nil {
		return err
	}

	m.PriceRangesEmittedTotal, err = meter.Int64Counter(MetricPriceRangesEmittedTotal, metric.WithDescription("Non-empty price ranges emitted by the aggregator, per asset pair"))
	if err != nil {
		return err
	}

	m.SubscriptionsMatchedTotal, err = meter.Int64Counter(MetricSubscriptionsMatchedTotal, metric.WithDescription("Subscriptions matched against an event"))
	if err != nil {
		return err
	}

	m.QueueDepth, err = meter.Int64ObservableGauge(MetricQueueDepth, metric.WithDescription("Pending rows in the message delivery queue"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			m.mu.RLock()
			defer m.mu.RUnlock()
			obs.Observe(m.queueDepth)
			return nil
		}))
	if err != nil {
		return err
	}

	return nil
}

// SetQueueDepth records the last-observed queue depth for the gauge
// callback to report.
func (m *MetricsHolder) SetQueueDepth(depth int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueDepth = depth
}

// TopicAttribute builds the attribute used to break down event/subscription
// counters by topic kind ("orders" or "price_threshold").
func TopicAttribute(kind string) attribute.KeyValue {
	return attribute.String("topic_kind", kind)
}
