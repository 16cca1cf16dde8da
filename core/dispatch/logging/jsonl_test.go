package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJSONLStoreAppendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.log")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	now := time.Now().UTC()
	recs := []Record{
		{ID: uuid.NewString(), Tick: 1, Timestamp: now, VehicleID: 0, PassengerID: 10, Origin: 0, Destination: 4, Direction: "up", Source: "call", Queue: []int{4}},
		{ID: uuid.NewString(), Tick: 2, Timestamp: now.Add(time.Second), VehicleID: 1, PassengerID: 11, Origin: 5, Destination: 1, Direction: "down", Source: "backlog", WaitedTicks: 4, Queue: []int{5, 1}},
	}
	for _, r := range recs {
		require.NoError(t, store.Append(context.Background(), r))
	}

	all, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, recs[0].ID, all[0].ID)
	require.Equal(t, []int{5, 1}, all[1].Queue)

	vid := 1
	got, err := store.Query(context.Background(), Query{VehicleID: &vid})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 11, got[0].PassengerID)

	got, err = store.Query(context.Background(), Query{Source: "call"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = store.Query(context.Background(), Query{Start: now.Add(time.Millisecond)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "backlog", got[0].Source)
}

func TestJSONLStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.log")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{ID: "a", VehicleID: 2}))

	// Inject a corrupt line by appending raw bytes.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	vid := 2
	got, err := store.Query(context.Background(), Query{VehicleID: &vid})
	require.NoError(t, err)
	require.Len(t, got, 1)
}
