// Package validator contains the default implementation of
// [domain.Validator]: a one-pass structural check of a query tree.
//
// Validation is structural only. Operator semantics errors discovered at
// evaluation time make the affected clause false instead of raising, so a
// query that validates can still match nothing.
package validator

import (
	"strings"

	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/dialect"
	"github.com/weiliddat/mgq/pkg/structure"
)

// Validator implements [domain.Validator].
type Validator struct {
	stringWhere bool
}

// NewValidator returns a new implementation of [domain.Validator].
func NewValidator(options ...Option) domain.Validator {
	v := &Validator{}
	for _, option := range options {
		option(v)
	}
	return v
}

// Validate implements [domain.Validator].
func (v *Validator) Validate(query any) error {
	if query == nil {
		return nil
	}
	i, _, err := structure.Seq2(query)
	if err != nil {
		return domain.ErrQueryType
	}

	for key, value := range i {
		if err := v.validateClause(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateClause(key string, value any) error {
	switch {
	case dialect.IsCombinator(key):
		return v.validateCombinator(key, value)
	case key == dialect.OpWhere:
		return v.validateWhere(value)
	default:
		pairs, ok := dialect.Expression(value)
		if !ok {
			// operand position, implicit $eq: no structural check
			return nil
		}
		for _, pair := range pairs {
			if err := v.validateCond(pair.Op, pair.Val); err != nil {
				return err
			}
		}
		return nil
	}
}

func (v *Validator) validateCombinator(key string, value any) error {
	items, _, err := structure.Seq(value)
	if err != nil {
		return domain.ErrCompArgType{Comp: key, Want: "list", Actual: value}
	}
	for item := range items {
		if err := v.Validate(item); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateWhere(value any) error {
	switch value.(type) {
	case domain.WhereFunc, func(any) (bool, error):
		return nil
	case string:
		if v.stringWhere {
			return nil
		}
	}
	return domain.ErrCompArgType{
		Comp:   dialect.OpWhere,
		Want:   "func(any) (bool, error)",
		Actual: value,
	}
}

func (v *Validator) validateCond(op string, val any) error {
	switch op {
	case dialect.OpIn, dialect.OpNin:
		if _, _, err := structure.Seq(val); err != nil {
			return domain.ErrCompArgType{Comp: op, Want: "list", Actual: val}
		}
		return nil
	case dialect.OpAll:
		return v.validateAll(val)
	case dialect.OpMod:
		return v.validateMod(val)
	case dialect.OpSize:
		if _, ok := structure.AsFloat(val); !ok {
			return domain.ErrCompArgType{Comp: op, Want: "number", Actual: val}
		}
		return nil
	case dialect.OpElemMatch:
		return v.validateElemMatch(val)
	default:
		return nil
	}
}

func (v *Validator) validateMod(val any) error {
	arr, ok := structure.List(val)
	if !ok || len(arr) != 2 {
		return domain.ErrCompArgType{Comp: dialect.OpMod, Want: "2-number list", Actual: val}
	}
	for _, item := range arr {
		if _, ok := structure.AsFloat(item); !ok {
			return domain.ErrCompArgType{Comp: dialect.OpMod, Want: "2-number list", Actual: val}
		}
	}
	return nil
}

// validateAll checks the list shape of $all and, when every element is an
// object with dollar-prefixed keys, that each element carries exactly the
// $elemMatch key (the elemMatch-form of $all).
func (v *Validator) validateAll(val any) error {
	arr, ok := structure.List(val)
	if !ok {
		return domain.ErrCompArgType{Comp: dialect.OpAll, Want: "list", Actual: val}
	}

	for _, item := range arr {
		i, _, err := structure.Seq2(item)
		if err != nil {
			return nil
		}
		dollar := false
		for k := range i {
			if strings.HasPrefix(k, "$") {
				dollar = true
				break
			}
		}
		if !dollar {
			return nil
		}
	}

	for _, item := range arr {
		_, l, _ := structure.Seq2(item)
		if l != 1 {
			return domain.ErrCompArgType{
				Comp:   dialect.OpAll,
				Want:   "$elemMatch expression",
				Actual: item,
			}
		}
		sub, has := structure.Field(item, dialect.OpElemMatch)
		if !has {
			return domain.ErrCompArgType{
				Comp:   dialect.OpAll,
				Want:   "$elemMatch expression",
				Actual: item,
			}
		}
		if err := v.validateElemMatch(sub); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateElemMatch(val any) error {
	if pairs, ok := dialect.Expression(val); ok {
		for _, pair := range pairs {
			if err := v.validateCond(pair.Op, pair.Val); err != nil {
				return err
			}
		}
		return nil
	}
	if _, _, err := structure.Seq2(val); err == nil {
		return v.Validate(val)
	}
	return nil
}
