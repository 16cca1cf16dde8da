package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticSpreadSingleVehicle(t *testing.T) {
	s := StaticSpread{}
	assert.Equal(t, 5, s.StrategicFloor(0, 1, 10, nil))
}

func TestStaticSpreadEvenCoverage(t *testing.T) {
	s := StaticSpread{}
	// Three vehicles over floors 0..10: 0, 5, 10.
	assert.Equal(t, 0, s.StrategicFloor(0, 3, 10, nil))
	assert.Equal(t, 5, s.StrategicFloor(1, 3, 10, nil))
	assert.Equal(t, 10, s.StrategicFloor(2, 3, 10, nil))
}

func TestStaticSpreadRounds(t *testing.T) {
	s := StaticSpread{}
	// 1*9/2 = 4.5 rounds to 5.
	assert.Equal(t, 5, s.StrategicFloor(1, 3, 9, nil))
}

func TestDemandSpreadFallsBackWithoutSamples(t *testing.T) {
	d := DemandSpread{MinSamples: 4}
	assert.Equal(t, StaticSpread{}.StrategicFloor(1, 3, 10, nil),
		d.StrategicFloor(1, 3, 10, []float64{2, 2}))
}

func TestDemandSpreadTracksCallOrigins(t *testing.T) {
	d := DemandSpread{MinSamples: 4}
	// All recent calls come from the lobby; both cabs park low.
	origins := []float64{0, 0, 0, 1, 1, 2}
	f0 := d.StrategicFloor(0, 2, 10, origins)
	f1 := d.StrategicFloor(1, 2, 10, origins)
	assert.LessOrEqual(t, f0, 1)
	assert.LessOrEqual(t, f1, 2)
	assert.LessOrEqual(t, f0, f1)
}

func TestDemandSpreadClamps(t *testing.T) {
	d := DemandSpread{MinSamples: 1}
	assert.Equal(t, 3, d.StrategicFloor(0, 1, 3, []float64{9, 9, 9}))
}

func TestNewRepositioner(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "static", NewRepositioner(cfg).Name())
	cfg.Reposition = "demand"
	assert.Equal(t, "demand", NewRepositioner(cfg).Name())
}

func TestCallHistoryRing(t *testing.T) {
	h := newCallHistory(3)
	h.Record(1)
	h.Record(2)
	assert.Equal(t, []float64{1, 2}, h.Samples())
	h.Record(3)
	h.Record(4) // overwrites the oldest slot
	samples := h.Samples()
	assert.Len(t, samples, 3)
	assert.Contains(t, samples, 4.0)
	assert.NotContains(t, samples, 0.0)
}
