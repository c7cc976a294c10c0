package equaler

import "github.com/weiliddat/mgq/domain"

// WithComparer sets the comparer used for scalar equality.
func WithComparer(c domain.Comparer) Option {
	return func(e *Equaler) {
		e.comparer = c
	}
}

// Option configures equaler behavior through the functional options pattern.
type Option func(*Equaler)
