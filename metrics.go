package reactor

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "reactor"

// metrics is nil when the reactor was built without WithMetrics;
// every method is a no-op in that case.
type metrics struct {
	cells          *prometheus.GaugeVec
	propagations   prometheus.Counter
	recomputations prometheus.Counter
	callbacks      prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &metrics{
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cells",
			Help:      "Number of cells, by kind.",
		}, []string{"kind"}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "propagations_total",
			Help:      "Number of propagation passes that settled.",
		}),
		recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recomputations_total",
			Help:      "Number of compute cell evaluations during propagation.",
		}),
		callbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "callbacks_fired_total",
			Help:      "Number of change callbacks invoked.",
		}),
	}

	// collectors this call registered, dropped again if a later one fails
	added := make([]prometheus.Collector, 0, 4)

	fail := func(err error) (*metrics, error) {
		for _, c := range added {
			reg.Unregister(c)
		}
		return nil, err
	}

	var err error
	if m.cells, err = register(reg, m.cells, &added); err != nil {
		return fail(err)
	}
	if m.propagations, err = register(reg, m.propagations, &added); err != nil {
		return fail(err)
	}
	if m.recomputations, err = register(reg, m.recomputations, &added); err != nil {
		return fail(err)
	}
	if m.callbacks, err = register(reg, m.callbacks, &added); err != nil {
		return fail(err)
	}

	return m, nil
}

// register registers c, or returns the collector already registered under the same descriptor.
// Collectors it registers itself are appended to added.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, added *[]prometheus.Collector) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	*added = append(*added, c)
	return c, nil
}

func (m *metrics) cellAdded(kind string) {
	if m == nil {
		return
	}
	m.cells.WithLabelValues(kind).Inc()
}

func (m *metrics) settled(recomputed int) {
	if m == nil {
		return
	}
	m.propagations.Inc()
	m.recomputations.Add(float64(recomputed))
}

func (m *metrics) fired(n int) {
	if m == nil || n == 0 {
		return
	}
	m.callbacks.Add(float64(n))
}
