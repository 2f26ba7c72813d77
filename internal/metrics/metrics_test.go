package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectors_RegisterTogether(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	assignments := NewCourierAssignmentsTotal()
	deliveries := NewRoomBroadcastDeliveriesTotal()
	conns := NewWSConnections()

	require.NoError(t, reg.Register(NewRateLimitExceededTotal()))
	require.NoError(t, reg.Register(NewEventPublishRetriesTotal()))
	require.NoError(t, reg.Register(assignments))
	require.NoError(t, reg.Register(deliveries))
	require.NoError(t, reg.Register(conns))

	assignments.WithLabelValues("assigned").Inc()
	deliveries.WithLabelValues("dropped").Add(2)
	conns.Inc()
	conns.Inc()
	conns.Dec()

	require.InDelta(t, 1, testutil.ToFloat64(assignments.WithLabelValues("assigned")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(deliveries.WithLabelValues("dropped")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(conns), 0)
}
