// Package matcher contains the default implementation of [domain.Matcher]
// using the basic mongo-like find-filter API.
//
// Matching never raises on ill-typed operator arguments: a type mismatch
// discovered during evaluation makes the affected clause false, so the
// matcher is total over any input. Structural problems are surfaced ahead
// of time by the validator adapter instead.
package matcher

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/weiliddat/mgq/adapter/comparer"
	"github.com/weiliddat/mgq/adapter/equaler"
	"github.com/weiliddat/mgq/adapter/fieldnavigator"
	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/dialect"
	"github.com/weiliddat/mgq/pkg/structure"
)

// DefaultRegexCacheSize bounds the shared cache of compiled $regex
// operands. Patterns are compiled once and reused across calls.
const DefaultRegexCacheSize = 512

// Matcher implements [domain.Matcher].
type Matcher struct {
	comparer       domain.Comparer
	equaler        domain.Equaler
	fieldNavigator domain.FieldNavigator
	whereCompiler  domain.WhereCompiler
	log            *zap.Logger

	regexCacheSize int
	regexes        *lru.Cache[string, *compiledRegex]
	wheres         *lru.Cache[string, domain.WhereFunc]
}

// NewMatcher returns a new implementation of [domain.Matcher].
func NewMatcher(options ...Option) domain.Matcher {
	m := &Matcher{
		comparer:       comparer.NewComparer(),
		equaler:        equaler.NewEqualer(),
		fieldNavigator: fieldnavigator.NewFieldNavigator(),
		log:            zap.NewNop(),
		regexCacheSize: DefaultRegexCacheSize,
	}

	for _, option := range options {
		option(m)
	}

	m.regexes, _ = lru.New[string, *compiledRegex](m.regexCacheSize)
	m.wheres, _ = lru.New[string, domain.WhereFunc](m.regexCacheSize)

	return m
}

// Match implements [domain.Matcher]. All top-level clauses are conjoined;
// an empty or nil query matches every document.
func (m *Matcher) Match(query any, doc any) (bool, error) {
	if query == nil {
		return true, nil
	}
	i, _, err := structure.Seq2(query)
	if err != nil {
		m.log.Debug("query is not a document", zap.Error(err))
		return false, nil
	}

	var matches bool
	for key, value := range i {
		matches, err = m.matchClause(key, value, doc)
		if err != nil || !matches {
			return matches, err
		}
	}
	return true, nil
}

func (m *Matcher) matchClause(key string, value any, doc any) (bool, error) {
	switch key {
	case dialect.OpAnd:
		return m.matchAnd(value, doc)
	case dialect.OpOr:
		return m.matchOr(value, doc)
	case dialect.OpNor:
		return m.matchNor(value, doc)
	case dialect.OpWhere:
		return m.matchWhere(value, doc)
	}

	parts, err := m.fieldNavigator.GetAddress(key)
	if err != nil {
		return false, err
	}
	if pairs, ok := dialect.Expression(value); ok {
		return m.matchPairs(doc, parts, pairs)
	}
	return m.evalEq(doc, parts, value)
}

func (m *Matcher) matchAnd(value any, doc any) (bool, error) {
	items, _, err := structure.Seq(value)
	if err != nil {
		return false, nil
	}
	var matches bool
	for item := range items {
		matches, err = m.Match(item, doc)
		if err != nil || !matches {
			return matches, err
		}
	}
	return true, nil
}

func (m *Matcher) matchOr(value any, doc any) (bool, error) {
	items, _, err := structure.Seq(value)
	if err != nil {
		return false, nil
	}
	var matches bool
	for item := range items {
		matches, err = m.Match(item, doc)
		if err != nil || matches {
			return matches, err
		}
	}
	return false, nil
}

func (m *Matcher) matchNor(value any, doc any) (bool, error) {
	items, _, err := structure.Seq(value)
	if err != nil {
		return false, nil
	}
	var matches bool
	for item := range items {
		matches, err = m.Match(item, doc)
		if err != nil {
			return false, err
		}
		if matches {
			return false, nil
		}
	}
	return true, nil
}

func (m *Matcher) matchWhere(value any, doc any) (bool, error) {
	switch fn := value.(type) {
	case domain.WhereFunc:
		return fn(doc)
	case func(any) (bool, error):
		return fn(doc)
	case string:
		if m.whereCompiler == nil {
			return false, nil
		}
		compiled, ok := m.whereFor(fn)
		if !ok {
			return false, nil
		}
		return compiled(doc)
	default:
		return false, nil
	}
}

func (m *Matcher) whereFor(src string) (domain.WhereFunc, bool) {
	if fn, ok := m.wheres.Get(src); ok {
		return fn, fn != nil
	}
	fn, err := m.whereCompiler(src)
	if err != nil {
		m.log.Debug("cannot compile $where body", zap.Error(err))
		m.wheres.Add(src, nil)
		return nil, false
	}
	m.wheres.Add(src, fn)
	return fn, true
}

// matchPairs conjoins every condition operator of one expression at the
// same path.
func (m *Matcher) matchPairs(doc any, parts []string, pairs []dialect.Pair) (bool, error) {
	var options string
	for _, pair := range pairs {
		if pair.Op == dialect.OpOptions {
			options, _ = pair.Val.(string)
		}
	}

	var matches bool
	var err error
	for _, pair := range pairs {
		switch pair.Op {
		case dialect.OpOptions:
			// modifier for $regex, never evaluated standalone
			continue
		case dialect.OpEq:
			matches, err = m.evalEq(doc, parts, pair.Val)
		case dialect.OpNe:
			matches, err = m.evalEq(doc, parts, pair.Val)
			matches = !matches
		case dialect.OpGt, dialect.OpGte, dialect.OpLt, dialect.OpLte:
			matches, err = m.evalCompare(pair.Op, doc, parts, pair.Val)
		case dialect.OpIn:
			matches, err = m.evalIn(doc, parts, pair.Val)
		case dialect.OpNin:
			if _, ok := structure.List(pair.Val); !ok {
				matches, err = false, nil
				break
			}
			matches, err = m.evalIn(doc, parts, pair.Val)
			matches = !matches
		case dialect.OpNot:
			matches, err = m.evalNot(doc, parts, pair.Val)
		case dialect.OpRegex:
			matches, err = m.evalRegex(doc, parts, pair.Val, options)
		case dialect.OpMod:
			matches, err = m.evalMod(doc, parts, pair.Val)
		case dialect.OpSize:
			matches, err = m.evalSize(doc, parts, pair.Val)
		case dialect.OpElemMatch:
			matches, err = m.evalElemMatch(doc, parts, pair.Val)
		case dialect.OpAll:
			matches, err = m.evalAll(doc, parts, pair.Val)
		default:
			matches, err = false, nil
		}
		if err != nil || !matches {
			return matches, err
		}
	}
	return true, nil
}

// evalLeaves applies terminal to every leaf reachable at parts. Array
// leaves additionally fan out over their elements, elements first. An
// absent path yields the operator's absence policy.
func (m *Matcher) evalLeaves(
	doc any,
	parts []string,
	fanout bool,
	absent bool,
	terminal func(leaf any) (bool, error),
) (bool, error) {
	leaves := m.fieldNavigator.Leaves(doc, parts...)
	if len(leaves) == 0 {
		return absent, nil
	}

	var matches bool
	var err error
	for _, leaf := range leaves {
		if fanout {
			if arr, ok := structure.List(leaf); ok {
				for _, elem := range arr {
					matches, err = terminal(elem)
					if err != nil || matches {
						return matches, err
					}
				}
			}
		}
		matches, err = terminal(leaf)
		if err != nil || matches {
			return matches, err
		}
	}
	return false, nil
}
