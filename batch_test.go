package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBatch(t *testing.T) {
	t.Run("batches multiple writes", func(t *testing.T) {
		log := []string{}

		r := New[int]()
		in := r.CreateInput(0)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] * 2 })
		r.AddCallback(out, func(v int) { log = append(log, fmt.Sprintf("changed %d", v)) })

		r.Batch(func() {
			r.SetValue(in, 10)
			r.SetValue(in, 20)
			log = append(log, "updated")
		})

		assert.Equal(t, []string{
			"updated",
			"changed 40",
		}, log)
	})

	t.Run("batches multiple inputs", func(t *testing.T) {
		log := []string{}

		r := New[int]()
		a := r.CreateInput(1)
		b := r.CreateInput(2)
		sum, _ := r.CreateCompute([]CellID{a, b}, func(v []int) int {
			log = append(log, "computing")
			return v[0] + v[1]
		})
		r.AddCallback(sum, func(v int) { log = append(log, fmt.Sprintf("changed %d", v)) })

		r.Batch(func() {
			r.SetValue(a, 10)
			r.SetValue(b, 20)
		})

		assert.Equal(t, []string{
			"computing",
			"computing",
			"changed 30",
		}, log)
	})

	t.Run("does not fire when reverted within the batch", func(t *testing.T) {
		got := []int{}

		r := New[int]()
		in := r.CreateInput(1)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] })
		r.AddCallback(out, func(v int) { got = append(got, v) })

		r.Batch(func() {
			r.SetValue(in, 2)
			r.SetValue(in, 1)
		})

		assert.Empty(t, got)
	})

	t.Run("compute cells keep their value until the batch ends", func(t *testing.T) {
		r := New[int]()
		in := r.CreateInput(1)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] + 1 })

		r.Batch(func() {
			r.SetValue(in, 5)

			v, _ := r.Value(in)
			assert.Equal(t, 5, v)

			v, _ = r.Value(out)
			assert.Equal(t, 2, v)
		})

		v, _ := r.Value(out)
		assert.Equal(t, 6, v)
	})

	t.Run("nested batches", func(t *testing.T) {
		log := []string{}

		r := New[int]()
		in := r.CreateInput(0)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] })
		r.AddCallback(out, func(v int) { log = append(log, fmt.Sprintf("changed %d", v)) })

		r.Batch(func() {
			r.SetValue(in, 10)
			r.Batch(func() {
				r.SetValue(in, 20)
			})
			log = append(log, "updated")
		})

		assert.Equal(t, []string{
			"updated",
			"changed 20",
		}, log)
	})

	t.Run("empty batch", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)

		r := New[int](WithLogger(zap.New(core)))
		r.Batch(func() {})

		assert.Equal(t, 0, logs.FilterMessage("propagation settled").Len())
	})

	t.Run("does not propagate when fn panics", func(t *testing.T) {
		got := []int{}

		r := New[int]()
		in := r.CreateInput(1)
		out, _ := r.CreateCompute([]CellID{in}, func(v []int) int { return v[0] * 2 })
		r.AddCallback(out, func(v int) { got = append(got, v) })

		assert.Panics(t, func() {
			r.Batch(func() {
				r.SetValue(in, 5)
				panic("boom")
			})
		})
		assert.Empty(t, got)

		v, _ := r.Value(out)
		assert.Equal(t, 2, v)

		r.SetValue(in, 6)
		assert.Equal(t, []int{12}, got)
	})
}
