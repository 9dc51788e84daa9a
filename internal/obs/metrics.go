package obs

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// NewRegistry registers collectors on a fresh registry, prefixing every metric
// name with namespace. An empty namespace registers names unchanged.
func NewRegistry(namespace string, collectors ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	var registerer prometheus.Registerer = reg
	if ns := strings.Trim(strings.TrimSpace(namespace), "_"); ns != "" {
		registerer = prometheus.WrapRegistererWithPrefix(ns+"_", reg)
	}
	registerer.MustRegister(collectors...)
	return reg
}

// WriteMetrics gathers g and writes it in Prometheus text format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
