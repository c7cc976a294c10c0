// Package equaler contains the default implementation of [domain.Equaler]:
// structural deep equality over document values. Document equality ignores
// key order, array equality is element-wise in order, and regular
// expressions are equal when their patterns are equal.
package equaler

import (
	"regexp"

	"github.com/weiliddat/mgq/adapter/comparer"
	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/structure"
)

// Equaler implements [domain.Equaler].
type Equaler struct {
	comparer domain.Comparer
}

// NewEqualer returns a new implementation of [domain.Equaler].
func NewEqualer(options ...Option) domain.Equaler {
	e := &Equaler{
		comparer: comparer.NewComparer(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Equal implements [domain.Equaler].
func (e *Equaler) Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ra, ok := a.(*regexp.Regexp); ok {
		rb, ok := b.(*regexp.Regexp)
		return ok && (ra == rb || ra.String() == rb.String())
	}
	if _, ok := b.(*regexp.Regexp); ok {
		return false
	}

	if la, ok := structure.List(a); ok {
		lb, ok := structure.List(b)
		if !ok || len(la) != len(lb) {
			return false
		}
		for n := range la {
			if !e.Equal(la[n], lb[n]) {
				return false
			}
		}
		return true
	}
	if _, ok := structure.List(b); ok {
		return false
	}

	if ia, la, err := structure.Seq2(a); err == nil {
		if _, lb, err := structure.Seq2(b); err != nil || la != lb {
			return false
		}
		for k, va := range ia {
			vb, has := structure.Field(b, k)
			if !has || !e.Equal(va, vb) {
				return false
			}
		}
		return true
	}
	if _, _, err := structure.Seq2(b); err == nil {
		return false
	}

	if !e.comparer.Comparable(a, b) {
		return false
	}
	c, err := e.comparer.Compare(a, b)
	return err == nil && c == 0
}
