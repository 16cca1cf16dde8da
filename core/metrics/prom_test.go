package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/liftcore/liftcore/core/model"
)

func TestPromSinkRecordsAssignments(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	recs := []AssignmentRecord{
		{Tick: 3, VehicleID: 1, PassengerID: 7, Origin: 0, Destination: 4, Direction: model.DirectionUp, Source: "call", Time: time.Now()},
		{Tick: 3, VehicleID: 1, PassengerID: 8, Origin: 2, Destination: 0, Direction: model.DirectionDown, Source: "backlog", WaitedTicks: 6, Time: time.Now()},
	}
	require.NoError(t, sink.RecordAssignments(recs))

	n := testutil.ToFloat64(sink.events.WithLabelValues("1", "call"))
	require.Equal(t, 1.0, n)
	n = testutil.ToFloat64(sink.events.WithLabelValues("1", "backlog"))
	require.Equal(t, 1.0, n)
}

func TestPromSinkBacklogDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordBacklogDepth(10, 4))
	require.Equal(t, 4.0, testutil.ToFloat64(sink.depth))
}

func TestNewSinkNop(t *testing.T) {
	s, err := NewSink(Config{}, prometheus.NewRegistry())
	require.NoError(t, err)
	_, ok := s.(NopSink)
	require.True(t, ok)
}

func TestConfigValidate(t *testing.T) {
	require.Error(t, Config{Backends: []string{"statsd"}}.Validate())
	require.Error(t, Config{Backends: []string{"influx"}}.Validate())
	require.NoError(t, Config{Backends: []string{"prometheus"}}.Validate())
}
