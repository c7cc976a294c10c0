// Package domain contains domain-specific interfaces and error types for mgq.
//
// This package defines the core interfaces that must be implemented by
// adapters: value comparison, deep equality, path navigation, structural
// validation, and query matching. Every behavior of the engine is controlled
// by one of these interfaces and can be replaced or mocked by the host.
package domain

import "iter"

// Comparer provides ordering operations over document values. Ordering is
// defined within a type family only: numbers numerically, strings by code
// units, booleans with false before true, arrays element-wise and documents
// over their insertion-ordered key/value pairs. Values from different
// families do not compare.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	// Returns [ErrCannotCompare] when the values belong to different type
	// families.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be compared.
	Comparable(any, any) bool
}

// Equaler provides structural deep equality over document values. Document
// equality ignores key order; array equality is element-wise and ordered;
// regular expressions are equal when pattern and flags are equal.
type Equaler interface {
	// Equal returns true if both values are structurally equal.
	Equal(any, any) bool
}

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator interface {
	// GetAddress extracts the nested path from the string address using
	// the expected notation.
	GetAddress(field string) ([]string, error)
	// Leaves returns every value reachable in obj by following the path
	// parts, fanning out through intermediate arrays. An empty result
	// means the path is absent from the document.
	Leaves(obj any, parts ...string) []any
}

// Validator performs a one-pass structural check of a query tree.
type Validator interface {
	// Validate returns nil if the query is structurally sound, or a typed
	// error naming the offending operator.
	Validate(query any) error
}

// Matcher evaluates whether documents match query criteria.
type Matcher interface {
	// Match returns true if the document matches the query. Type
	// mismatches discovered during matching make the affected clause
	// false rather than raising an error.
	Match(query any, doc any) (bool, error)
}

// WhereFunc is a host-supplied predicate bound to a $where clause. It
// receives the whole document under evaluation.
type WhereFunc func(doc any) (bool, error)

// WhereCompiler turns a textual $where body into a callable predicate. The
// engine never embeds a language runtime; hosts inject a compiler (for
// example the goja-backed one in adapter/script) when textual bodies should
// be accepted.
type WhereCompiler func(src string) (WhereFunc, error)

// Document represents a queryable object. Implementations may preserve key
// insertion order, which document-vs-document ordering relies on. Document
// is read by one goroutine at a time and doesn't need to be concurrency
// safe.
type Document interface {
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Iter returns a sequence of key-value pairs in the document.
	Iter() iter.Seq2[string, any]
	// Keys returns a sequence of keys in the document.
	Keys() iter.Seq[string]
	// Values returns a sequence of values in the document.
	Values() iter.Seq[any]
	// Len returns the number of set fields in the document.
	Len() int
}
