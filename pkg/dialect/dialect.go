// Package dialect describes the literal query dialect: operator names,
// combinators and the classification of query values into expressions and
// operands.
package dialect

import (
	"strconv"
	"strings"

	"github.com/weiliddat/mgq/pkg/structure"
)

// Condition operators.
const (
	OpEq        = "$eq"
	OpNe        = "$ne"
	OpGt        = "$gt"
	OpGte       = "$gte"
	OpLt        = "$lt"
	OpLte       = "$lte"
	OpIn        = "$in"
	OpNin       = "$nin"
	OpNot       = "$not"
	OpRegex     = "$regex"
	OpOptions   = "$options"
	OpMod       = "$mod"
	OpAll       = "$all"
	OpElemMatch = "$elemMatch"
	OpSize      = "$size"
)

// Query combinators, and the top-level $where clause (not a combinator).
const (
	OpAnd   = "$and"
	OpOr    = "$or"
	OpNor   = "$nor"
	OpWhere = "$where"
)

var condOps = map[string]struct{}{
	OpEq:        {},
	OpNe:        {},
	OpGt:        {},
	OpGte:       {},
	OpLt:        {},
	OpLte:       {},
	OpIn:        {},
	OpNin:       {},
	OpNot:       {},
	OpRegex:     {},
	OpOptions:   {},
	OpMod:       {},
	OpAll:       {},
	OpElemMatch: {},
	OpSize:      {},
}

// IsCondOperator reports whether key names a condition operator.
func IsCondOperator(key string) bool {
	_, ok := condOps[key]
	return ok
}

// IsCombinator reports whether key names a query combinator.
func IsCombinator(key string) bool {
	return key == OpAnd || key == OpOr || key == OpNor
}

// Pair is a single operator and its operand inside an expression.
type Pair struct {
	Op  string
	Val any
}

// Expression returns the operator pairs of v when v is an expression: a
// non-empty object whose every key is a known condition operator. Any other
// value, including an empty object, is an operand.
func Expression(v any) ([]Pair, bool) {
	i, l, err := structure.Seq2(v)
	if err != nil || l == 0 {
		return nil, false
	}
	pairs := make([]Pair, 0, l)
	for k, val := range i {
		if !IsCondOperator(k) {
			return nil, false
		}
		pairs = append(pairs, Pair{Op: k, Val: val})
	}
	return pairs, true
}

// SplitPath decomposes a dotted path into segments. Empty segments are kept
// literally.
func SplitPath(field string) []string {
	return strings.Split(field, ".")
}

// IndexCandidate reports whether a path segment may address an array
// position, and the position it addresses.
func IndexCandidate(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for i := range len(segment) {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return i, true
}
