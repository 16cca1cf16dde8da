package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Config defines settings for metrics sinks.
type Config struct {
	// Backends lists the sinks to build: "prometheus" and/or "influx".
	// Empty means no recording.
	Backends     []string `json:"backends"`
	InfluxURL    string   `json:"influx_url"`
	InfluxToken  string   `json:"influx_token"`
	InfluxOrg    string   `json:"influx_org"`
	InfluxBucket string   `json:"influx_bucket"`
}

// Validate checks backend names and required Influx fields.
func (c Config) Validate() error {
	for _, b := range c.Backends {
		switch b {
		case "prometheus":
		case "influx":
			if c.InfluxURL == "" {
				return fmt.Errorf("influx_url is required for the influx backend")
			}
		default:
			return fmt.Errorf("unknown metrics backend %s", b)
		}
	}
	return nil
}

// NewSink creates a Sink from the configuration. With no backends a
// NopSink is returned; with several, a MultiSink.
func NewSink(cfg Config, reg prometheus.Registerer) (Sink, error) {
	var sinks []Sink
	for _, b := range cfg.Backends {
		switch b {
		case "prometheus":
			s, err := NewPromSink(reg)
			if err != nil {
				return nil, fmt.Errorf("prom sink: %w", err)
			}
			sinks = append(sinks, s)
		case "influx":
			sinks = append(sinks, NewInfluxSinkWithFallback(cfg))
		default:
			return nil, fmt.Errorf("unknown metrics backend %s", b)
		}
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
