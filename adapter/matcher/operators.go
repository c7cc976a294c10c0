package matcher

import (
	"math"
	"regexp"

	"github.com/weiliddat/mgq/pkg/dialect"
	"github.com/weiliddat/mgq/pkg/structure"
)

// evalEq covers explicit and implicit $eq. A regex operand against a string
// leaf counts as equality; everything else is structural deep equality. The
// path being absent matches a null operand.
func (m *Matcher) evalEq(doc any, parts []string, ov any) (bool, error) {
	return m.evalLeaves(doc, parts, true, ov == nil, func(leaf any) (bool, error) {
		return m.eqTerminal(leaf, ov), nil
	})
}

func (m *Matcher) eqTerminal(leaf, ov any) bool {
	if re, ok := ov.(*regexp.Regexp); ok {
		if str, ok := leaf.(string); ok {
			return re.MatchString(str)
		}
	}
	return m.equaler.Equal(leaf, ov)
}

func (m *Matcher) evalCompare(op string, doc any, parts []string, ov any) (bool, error) {
	absent := ov == nil && (op == dialect.OpGte || op == dialect.OpLte)
	return m.evalLeaves(doc, parts, true, absent, func(leaf any) (bool, error) {
		return m.cmpTerminal(op, leaf, ov), nil
	})
}

func (m *Matcher) cmpTerminal(op string, leaf, ov any) bool {
	if leaf == nil || ov == nil {
		// null orders against null only, and only as an equality
		if leaf == nil && ov == nil {
			return op == dialect.OpGte || op == dialect.OpLte
		}
		return false
	}
	if !m.comparer.Comparable(leaf, ov) {
		return false
	}
	c, err := m.comparer.Compare(leaf, ov)
	if err != nil {
		return false
	}
	switch op {
	case dialect.OpGt:
		return c > 0
	case dialect.OpGte:
		return c >= 0
	case dialect.OpLt:
		return c < 0
	case dialect.OpLte:
		return c <= 0
	default:
		return false
	}
}

// evalIn matches when any operand list element equals the leaf, with full
// $eq semantics: a regex element tests string leaves and still equals a
// literal regex leaf. The path being absent matches a list that contains
// null.
func (m *Matcher) evalIn(doc any, parts []string, ov any) (bool, error) {
	arr, ok := structure.List(ov)
	if !ok {
		return false, nil
	}
	absent := false
	for _, item := range arr {
		if item == nil {
			absent = true
			break
		}
	}
	return m.evalLeaves(doc, parts, true, absent, func(leaf any) (bool, error) {
		for _, item := range arr {
			if m.eqTerminal(leaf, item) {
				return true, nil
			}
		}
		return false, nil
	})
}

// evalNot negates a sub-expression at the same path. Multiple operator keys
// inside $not are conjoined first and then negated; a precompiled regex
// negates $regex. Any other operand shape makes the clause false.
func (m *Matcher) evalNot(doc any, parts []string, ov any) (bool, error) {
	if re, ok := ov.(*regexp.Regexp); ok {
		matches, err := m.evalLeaves(doc, parts, true, false, func(leaf any) (bool, error) {
			return m.regexTerminal(leaf, re), nil
		})
		return !matches, err
	}
	pairs, ok := dialect.Expression(ov)
	if !ok {
		return false, nil
	}
	matches, err := m.matchPairs(doc, parts, pairs)
	if err != nil {
		return false, err
	}
	return !matches, nil
}

func (m *Matcher) evalRegex(doc any, parts []string, ov any, options string) (bool, error) {
	re := m.resolveRegex(ov, options)
	if re == nil {
		return false, nil
	}
	return m.evalLeaves(doc, parts, true, false, func(leaf any) (bool, error) {
		return m.regexTerminal(leaf, re), nil
	})
}

func (m *Matcher) regexTerminal(leaf any, re *regexp.Regexp) bool {
	str, ok := leaf.(string)
	return ok && re.MatchString(str)
}

// evalMod computes floor(leaf) mod floor(divisor) and compares against
// floor(remainder). Non-number leaves and malformed operands are false.
func (m *Matcher) evalMod(doc any, parts []string, ov any) (bool, error) {
	arr, ok := structure.List(ov)
	if !ok || len(arr) != 2 {
		return false, nil
	}
	divisor, ok := structure.AsFloat(arr[0])
	if !ok {
		return false, nil
	}
	remainder, ok := structure.AsFloat(arr[1])
	if !ok {
		return false, nil
	}
	divisor, remainder = math.Floor(divisor), math.Floor(remainder)
	if divisor == 0 {
		return false, nil
	}
	return m.evalLeaves(doc, parts, true, false, func(leaf any) (bool, error) {
		f, ok := structure.AsFloat(leaf)
		if !ok {
			return false, nil
		}
		return math.Mod(math.Floor(f), divisor) == remainder, nil
	})
}

// evalSize matches arrays whose length equals the operand truncated to an
// integer. The required leaf is the array itself, so there is no element
// fan-out.
func (m *Matcher) evalSize(doc any, parts []string, ov any) (bool, error) {
	f, ok := structure.AsFloat(ov)
	if !ok {
		return false, nil
	}
	size := int(math.Trunc(f))
	return m.evalLeaves(doc, parts, false, false, func(leaf any) (bool, error) {
		arr, ok := structure.List(leaf)
		return ok && len(arr) == size, nil
	})
}

// evalElemMatch matches arrays with at least one element that satisfies the
// whole sub-query. The sub-query is evaluated with an empty path context:
// bare condition operators apply to the element itself, anything else is
// matched as a document query.
func (m *Matcher) evalElemMatch(doc any, parts []string, ov any) (bool, error) {
	return m.evalLeaves(doc, parts, true, false, func(leaf any) (bool, error) {
		arr, ok := structure.List(leaf)
		if !ok {
			return false, nil
		}
		var matches bool
		var err error
		for _, elem := range arr {
			matches, err = m.matchElem(ov, elem)
			if err != nil || matches {
				return matches, err
			}
		}
		return false, nil
	})
}

func (m *Matcher) matchElem(sub any, elem any) (bool, error) {
	if pairs, ok := dialect.Expression(sub); ok {
		return m.matchPairs(elem, nil, pairs)
	}
	return m.Match(sub, elem)
}

// evalAll requires every operand element to be present. In the
// elemMatch-form (every element carries $elemMatch) each sub-query must
// independently find a matching array member; in the scalar form every
// element must deep-equal a member of the leaf array or the leaf itself.
func (m *Matcher) evalAll(doc any, parts []string, ov any) (bool, error) {
	arr, ok := structure.List(ov)
	if !ok || len(arr) == 0 {
		return false, nil
	}

	if subs, ok := elemMatchForm(arr); ok {
		var matches bool
		var err error
		for _, sub := range subs {
			matches, err = m.evalElemMatch(doc, parts, sub)
			if err != nil || !matches {
				return matches, err
			}
		}
		return true, nil
	}

	return m.evalLeaves(doc, parts, true, false, func(leaf any) (bool, error) {
		leafArr, ok := structure.List(leaf)
		if !ok {
			return false, nil
		}
		for _, item := range arr {
			if structure.Contains(leafArr, item, m.equaler.Equal) {
				continue
			}
			if m.equaler.Equal(leaf, item) {
				continue
			}
			return false, nil
		}
		return true, nil
	})
}

func elemMatchForm(arr []any) ([]any, bool) {
	subs := make([]any, 0, len(arr))
	for _, item := range arr {
		sub, ok := structure.Field(item, dialect.OpElemMatch)
		if !ok {
			return nil, false
		}
		subs = append(subs, sub)
	}
	return subs, true
}
