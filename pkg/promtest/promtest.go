// Package promtest reads metric values out of a prometheus registry
// so tests can assert on instrumentation.
package promtest

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

// CounterValue returns the value of the counter name with exactly the
// given labels, or zero if the counter has never been incremented.
func CounterValue(t *testing.T, g prometheus.Gatherer, name string, labels prometheus.Labels) float64 {
	if m := find(t, g, name, labels); m != nil {
		return m.GetCounter().GetValue()
	}
	return 0
}

// GaugeValue returns the value of the gauge name, or zero if the gauge
// has never been set.
func GaugeValue(t *testing.T, g prometheus.Gatherer, name string, labels prometheus.Labels) float64 {
	if m := find(t, g, name, labels); m != nil {
		return m.GetGauge().GetValue()
	}
	return 0
}

func find(t *testing.T, g prometheus.Gatherer, name string, labels prometheus.Labels) *dto.Metric {
	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for k, v := range labels {
				if !hasLabel(m, k, v) {
					continue metric
				}
			}
			return m
		}
	}
	return nil
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, p := range m.GetLabel() {
		if p.GetName() == name && p.GetValue() == value {
			return true
		}
	}
	return false
}
