package mgq

import (
	"go.uber.org/zap"

	"github.com/weiliddat/mgq/domain"
)

type settings struct {
	matcher        domain.Matcher
	validator      domain.Validator
	whereCompiler  domain.WhereCompiler
	log            *zap.Logger
	maxDepth       int
	regexCacheSize int
}

// WithMatcher sets the matching engine for the predicate.
func WithMatcher(m domain.Matcher) Option {
	return func(s *settings) {
		s.matcher = m
	}
}

// WithValidator sets the structural validator for the predicate.
func WithValidator(v domain.Validator) Option {
	return func(s *settings) {
		s.validator = v
	}
}

// WithWhereCompiler accepts textual $where bodies, compiled by the given
// compiler. Without one, string bodies fail validation and evaluate false.
func WithWhereCompiler(c domain.WhereCompiler) Option {
	return func(s *settings) {
		s.whereCompiler = c
	}
}

// WithLogger enables debug-level diagnostics. Defaults to a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxDepth bounds path traversal recursion. Branches deeper than the
// limit contribute no values.
func WithMaxDepth(d int) Option {
	return func(s *settings) {
		if d > 0 {
			s.maxDepth = d
		}
	}
}

// WithRegexCacheSize sizes the cache of compiled $regex operands.
func WithRegexCacheSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.regexCacheSize = size
		}
	}
}

// Option configures predicate construction through the functional options
// pattern.
type Option func(*settings)
