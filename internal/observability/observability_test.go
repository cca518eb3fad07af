package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
)

func TestEventRecorderCountsEventsAndDecisions(t *testing.T) {
	metrics := NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewEventRecorder(metrics, zap.NewNop()).Register(dispatcher)

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventJobCreated}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventJobCreated}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type: events.EventApplicationStatusChanged,
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: domain.ApplicationStatusPending,
			NewStatus: domain.ApplicationStatusRejected,
		},
	}))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.domainEvents.WithLabelValues(string(events.EventJobCreated))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.decisions.WithLabelValues("rejected")))
}

func TestRecordRequestAndNilMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordRequest("GET", "/api/jobs", 200, 10*time.Millisecond)
	metrics.RecordError("GET", "/api/jobs/:id", "NOT_FOUND")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpRequests.WithLabelValues("GET", "/api/jobs", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpErrors.WithLabelValues("GET", "/api/jobs/:id", "NOT_FOUND")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		done := nilMetrics.RequestStarted()
		nilMetrics.RecordRequest("GET", "/", 200, time.Millisecond)
		nilMetrics.RecordEvent("job_created")
		done()
	})
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "verbose"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
