package reactor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("counts cells, passes and callbacks", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		r := New[int](WithMetrics(reg))
		require.NotNil(t, r.metrics)

		in := r.CreateInput(1)
		a, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] + 1 })
		b, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] * 0 })
		r.AddCallback(a, func(int) {})
		r.AddCallback(a, func(int) {})
		r.AddCallback(b, func(int) {})

		r.SetValue(in, 2)
		r.SetValue(in, 3)

		assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.cells.WithLabelValues("input")))
		assert.Equal(t, float64(2), testutil.ToFloat64(r.metrics.cells.WithLabelValues("compute")))
		assert.Equal(t, float64(2), testutil.ToFloat64(r.metrics.propagations))
		assert.Equal(t, float64(4), testutil.ToFloat64(r.metrics.recomputations))
		assert.Equal(t, float64(4), testutil.ToFloat64(r.metrics.callbacks))
	})

	t.Run("reactors share a registry", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		r1 := New[int](WithMetrics(reg))
		r2 := New[string](WithMetrics(reg))
		require.NotNil(t, r1.metrics)
		require.NotNil(t, r2.metrics)

		r1.CreateInput(1)
		r2.CreateInput("a")

		n, err := testutil.GatherAndCount(reg, "reactor_cells")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, float64(2), testutil.ToFloat64(r1.metrics.cells.WithLabelValues("input")))
	})

	t.Run("leaves the registry untouched when registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		require.NoError(t, reg.Register(prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reactor",
			Name:      "callbacks_fired_total",
			Help:      "Something else entirely.",
		})))

		r := New[int](WithMetrics(reg))
		assert.Nil(t, r.metrics)

		// would fail with AlreadyRegisteredError had the first collectors stayed behind
		assert.NoError(t, reg.Register(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reactor",
			Name:      "propagations_total",
			Help:      "Number of propagation passes that settled.",
		})))

		in := r.CreateInput(1)
		assert.True(t, r.SetValue(in, 2))
	})

	t.Run("disabled by default", func(t *testing.T) {
		r := New[int]()
		assert.Nil(t, r.metrics)

		in := r.CreateInput(1)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] })
		r.AddCallback(out, func(int) {})

		assert.True(t, r.SetValue(in, 2))
	})
}
