package reactor

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Reactor.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	registry prometheus.Registerer
}

// WithLogger sets the logger the reactor writes debug entries to.
// By default nothing is logged.
//
// Example:
//
//	logger, _ := zap.NewDevelopment()
//	r := reactor.New[int](reactor.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers the reactor's collectors on reg.
// Reactors sharing a registry share their collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return o
}
