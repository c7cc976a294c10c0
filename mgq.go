// Package mgq provides a document predicate engine for the MongoDB
// find-filter dialect.
//
// A query is bound to a reusable [Predicate] with [New]. The predicate
// answers whether a document matches the query with semantics faithful to
// MongoDB's server-side matcher: dotted paths, array fan-out, implicit
// equality, and the condition operators $eq $ne $gt $gte $lt $lte $in $nin
// $not $regex $options $mod $all $elemMatch $size combined with $and $or
// $nor.
//
// The basic usage starts with creating a new [Predicate]:
//
//	pred, err := mgq.New(mgq.M{"qty": mgq.M{"$gt": 25}}).Validate()
//	if err != nil {
//		// the query is structurally malformed
//	}
//	pred.Test(mgq.M{"qty": 42}) // true
//
// Documents and queries may be maps, structs (tag "mgq"), ordered [D]
// documents or anything implementing [domain.Document]. A predicate is
// immutable after construction and safe for concurrent Test calls.
package mgq

import (
	"go.uber.org/zap"

	"github.com/weiliddat/mgq/adapter/data"
	"github.com/weiliddat/mgq/adapter/fieldnavigator"
	"github.com/weiliddat/mgq/adapter/matcher"
	"github.com/weiliddat/mgq/adapter/validator"
	"github.com/weiliddat/mgq/domain"
)

var (
	// ErrQueryType is returned by [Predicate.Validate] when the query is
	// not a document.
	ErrQueryType = domain.ErrQueryType
)

// ErrCompArgType is returned by [Predicate.Validate] when an operator is
// given an argument of invalid shape, such as a non-list $in or a $mod
// that is not a 2-number list.
type ErrCompArgType = domain.ErrCompArgType

// ErrCannotCompare is returned by [domain.Comparer.Compare] when called
// with two values from different type families.
type ErrCannotCompare = domain.ErrCannotCompare

// M is a hashed document, the convenient literal form for queries.
type M = data.M

// D is an insertion-ordered document. Document-vs-document ordering
// follows the key insertion order, so ordered inputs should use D.
type D = data.D

// E is a single key/value entry of a [D] document.
type E = data.E

// A is an ordered list of values.
type A = data.A

// Predicate binds a query to a reusable per-document predicate. It is
// immutable after construction and may be shared between goroutines.
type Predicate struct {
	query     any
	matcher   domain.Matcher
	validator domain.Validator
	log       *zap.Logger
}

// New returns a new [Predicate] bound to the given query, configured with
// the provided options:
//
//   - [WithMatcher]: replaces the matching engine.
//   - [WithValidator]: replaces the structural validator.
//   - [WithWhereCompiler]: accepts textual $where bodies, compiled by the
//     injected compiler (see adapter/script for a goja-backed one).
//   - [WithMaxDepth]: bounds path traversal recursion.
//   - [WithRegexCacheSize]: sizes the compiled $regex cache.
//   - [WithLogger]: enables debug-level diagnostics.
func New(query any, options ...Option) *Predicate {
	s := settings{
		log:            zap.NewNop(),
		maxDepth:       fieldnavigator.DefaultMaxDepth,
		regexCacheSize: matcher.DefaultRegexCacheSize,
	}
	for _, option := range options {
		option(&s)
	}

	if s.matcher == nil {
		s.matcher = matcher.NewMatcher(
			matcher.WithFieldNavigator(fieldnavigator.NewFieldNavigator(
				fieldnavigator.WithMaxDepth(s.maxDepth),
			)),
			matcher.WithWhereCompiler(s.whereCompiler),
			matcher.WithRegexCacheSize(s.regexCacheSize),
			matcher.WithLogger(s.log),
		)
	}
	if s.validator == nil {
		s.validator = validator.NewValidator(
			validator.WithStringWhere(s.whereCompiler != nil),
		)
	}

	return &Predicate{
		query:     query,
		matcher:   s.matcher,
		validator: s.validator,
		log:       s.log,
	}
}

// Test reports whether the document matches the bound query. Test is total:
// type mismatches encountered during evaluation make the affected clause
// false, and a failing $where evaluator counts as no match.
func (p *Predicate) Test(doc any) bool {
	matches, err := p.matcher.Match(p.query, doc)
	if err != nil {
		p.log.Debug("match aborted", zap.Error(err))
		return false
	}
	return matches
}

// Validate runs the structural check once. On success it returns the
// predicate itself so construction can be chained; on failure it surfaces a
// typed error naming the offending operator.
func (p *Predicate) Validate() (*Predicate, error) {
	if err := p.validator.Validate(p.query); err != nil {
		p.log.Debug("query failed validation", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Query returns the bound query.
func (p *Predicate) Query() any {
	return p.query
}

// Match evaluates a query against a single document without building a
// reusable predicate.
func Match(query any, doc any) (bool, error) {
	return matcher.NewMatcher().Match(query, doc)
}
