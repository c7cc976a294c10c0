package matcher

import (
	"go.uber.org/zap"

	"github.com/weiliddat/mgq/domain"
)

// WithComparer sets the comparer implementation for value ordering during
// matching.
func WithComparer(c domain.Comparer) Option {
	return func(m *Matcher) {
		m.comparer = c
	}
}

// WithEqualer sets the deep-equality implementation used by $eq, $in and
// $all.
func WithEqualer(e domain.Equaler) Option {
	return func(m *Matcher) {
		m.equaler = e
	}
}

// WithFieldNavigator sets the field navigator for accessing document fields
// during matching.
func WithFieldNavigator(f domain.FieldNavigator) Option {
	return func(m *Matcher) {
		m.fieldNavigator = f
	}
}

// WithWhereCompiler sets the compiler for textual $where bodies. Without
// one, string bodies evaluate false.
func WithWhereCompiler(c domain.WhereCompiler) Option {
	return func(m *Matcher) {
		m.whereCompiler = c
	}
}

// WithLogger sets the logger for debug-level match diagnostics. Defaults to
// a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Matcher) {
		m.log = log
	}
}

// WithRegexCacheSize sets the capacity of the compiled $regex cache.
func WithRegexCacheSize(size int) Option {
	return func(m *Matcher) {
		if size > 0 {
			m.regexCacheSize = size
		}
	}
}

// Option configures matcher behavior through the functional options pattern.
type Option func(*Matcher)
