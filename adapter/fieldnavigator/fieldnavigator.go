// Package fieldnavigator contains the default implementation of
// [domain.FieldNavigator]: dotted-path traversal through nested documents
// with array fan-out.
package fieldnavigator

import (
	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/dialect"
	"github.com/weiliddat/mgq/pkg/structure"
)

// DefaultMaxDepth bounds traversal recursion so pathological nesting cannot
// exhaust the host stack.
const DefaultMaxDepth = 128

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct {
	maxDepth int
}

// NewFieldNavigator returns a new implementation of [domain.FieldNavigator].
func NewFieldNavigator(options ...Option) domain.FieldNavigator {
	fn := &FieldNavigator{
		maxDepth: DefaultMaxDepth,
	}
	for _, option := range options {
		option(fn)
	}
	return fn
}

// GetAddress implements [domain.FieldNavigator]. Empty segments are kept
// literally.
func (fn *FieldNavigator) GetAddress(field string) ([]string, error) {
	return dialect.SplitPath(field), nil
}

// Leaves implements [domain.FieldNavigator]. Every value reachable through
// the path is collected:
//
//   - objects are entered through the matching key, which is preferred over
//     array-index interpretation when the object has a textual numeric key;
//   - arrays consume a numeric segment as an index when it is in range, and
//     fan out over their elements with the full remaining path otherwise
//     (and in addition to the index interpretation);
//   - anything else ends the branch, contributing no leaf.
//
// An empty result means the path is absent from the document.
func (fn *FieldNavigator) Leaves(obj any, parts ...string) []any {
	return fn.leaves(obj, parts, 0, nil)
}

func (fn *FieldNavigator) leaves(v any, parts []string, depth int, out []any) []any {
	if depth > fn.maxDepth {
		return out
	}
	if len(parts) == 0 {
		return append(out, v)
	}

	key, rest := parts[0], parts[1:]

	if field, ok := structure.Field(v, key); ok {
		return fn.leaves(field, rest, depth+1, out)
	}
	if _, _, err := structure.Seq2(v); err == nil {
		// an object without the key ends the branch even when the
		// value also looks indexable
		return out
	}

	if arr, ok := structure.List(v); ok {
		if i, ok := dialect.IndexCandidate(key); ok && i < len(arr) {
			out = fn.leaves(arr[i], rest, depth+1, out)
		}
		for _, elem := range arr {
			out = fn.leaves(elem, parts, depth+1, out)
		}
	}

	return out
}
