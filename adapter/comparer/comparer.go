// Package comparer contains the default implementation of [domain.Comparer].
//
// Ordering is defined within a type family only: numbers numerically,
// strings by code units, booleans with false before true, times
// chronologically, arrays element-wise lexicographic and documents
// lexicographic over their insertion-ordered key/value pairs. Values from
// different families report [domain.ErrCannotCompare].
package comparer

import (
	"cmp"
	"math"
	"math/big"
	"time"

	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/structure"
)

// Comparer implements [domain.Comparer].
type Comparer struct{}

// NewComparer returns a new implementation of [domain.Comparer].
func NewComparer() domain.Comparer {
	return &Comparer{}
}

type kind uint8

const (
	kindNil kind = iota
	kindNumber
	kindString
	kindBool
	kindTime
	kindList
	kindObject
	kindOther
)

// Comparable implements [domain.Comparer].
func (c *Comparer) Comparable(a, b any) bool {
	ka, kb := c.kindOf(a), c.kindOf(b)
	return ka == kb && ka != kindOther
}

// Compare implements [domain.Comparer].
func (c *Comparer) Compare(a any, b any) (int, error) {
	ka, kb := c.kindOf(a), c.kindOf(b)
	if ka != kb || ka == kindOther {
		return 0, domain.ErrCannotCompare{A: a, B: b}
	}

	switch ka {
	case kindNil:
		return 0, nil
	case kindNumber:
		na, _ := c.asNumber(a)
		nb, _ := c.asNumber(b)
		return na.Cmp(nb), nil
	case kindString:
		return cmp.Compare(a.(string), b.(string)), nil
	case kindBool:
		return c.compareBool(a.(bool), b.(bool)), nil
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time)), nil
	case kindList:
		la, _ := structure.List(a)
		lb, _ := structure.List(b)
		return c.compareList(la, lb)
	default:
		return c.compareObject(a, b)
	}
}

func (c *Comparer) kindOf(v any) kind {
	if v == nil {
		return kindNil
	}
	if _, ok := c.asNumber(v); ok {
		return kindNumber
	}
	switch v.(type) {
	case string:
		return kindString
	case bool:
		return kindBool
	case time.Time:
		return kindTime
	}
	if _, ok := structure.List(v); ok {
		return kindList
	}
	if _, _, err := structure.Seq2(v); err == nil {
		return kindObject
	}
	return kindOther
}

func (c *Comparer) compareList(a, b []any) (int, error) {
	minLength := min(len(a), len(b))

	var comp int
	var err error
	for i := range minLength {
		comp, err = c.Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}

		if comp != 0 {
			return comp, nil
		}
	}

	// Common section was identical, longest one wins
	return cmp.Compare(len(a), len(b)), nil
}

func (c *Comparer) compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return 1
	}
	return -1
}

// compareObject walks both documents' key/value pairs in parallel, in
// insertion order. The first differing key name decides, then the value at
// that position; a document that runs out of pairs first is less.
func (c *Comparer) compareObject(a, b any) (int, error) {
	aPairs, err := c.pairs(a)
	if err != nil {
		return 0, err
	}
	bPairs, err := c.pairs(b)
	if err != nil {
		return 0, err
	}

	var comp int
	for i := range min(len(aPairs), len(bPairs)) {
		if comp = cmp.Compare(aPairs[i].key, bPairs[i].key); comp != 0 {
			return comp, nil
		}
		comp, err = c.Compare(aPairs[i].value, bPairs[i].value)
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}

	return cmp.Compare(len(aPairs), len(bPairs)), nil
}

type pair struct {
	key   string
	value any
}

func (c *Comparer) pairs(obj any) ([]pair, error) {
	i, l, err := structure.Seq2(obj)
	if err != nil {
		return nil, domain.ErrCannotCompare{A: obj, B: obj}
	}
	res := make([]pair, 0, l)
	for k, v := range i {
		res = append(res, pair{key: k, value: v})
	}
	return res, nil
}

// asNumber widens any built-in number into a big.Float so int64 and
// float64 compare without precision loss. The zero big.Float picks up
// 64-bit precision from SetInt64, unlike big.NewFloat.
func (c *Comparer) asNumber(v any) (*big.Float, bool) {
	r := new(big.Float)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		if math.IsNaN(float64(n)) {
			return nil, false
		}
		r.SetFloat64(float64(n))
	case float64:
		if math.IsNaN(n) {
			return nil, false
		}
		r.SetFloat64(n)
	default:
		return nil, false
	}
	return r, true
}
