// Package data contains the default [domain.Document] implementations: an
// insertion-ordered document for order-sensitive comparisons and a plain
// hashed map for convenience.
package data

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"regexp"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"

	"github.com/weiliddat/mgq/domain"
)

// TagName is the struct tag read when converting structs into documents.
const TagName = "mgq"

var timeTyp = goreflect.TypeOf(*new(time.Time))

// M implements [domain.Document] using a hashed map. Iteration order is
// whatever the Go runtime yields, so document-vs-document ordering is only
// well-defined for [D] documents.
type M map[string]any

// A is an ordered list of values.
type A = []any

// E is a single key/value entry in a [D] document.
type E struct {
	Key   string
	Value any
}

// D implements [domain.Document] with insertion-ordered keys. The zero
// value is an empty document; literals read as
//
//	data.D{{"baz", "qux"}, {"bla", 1}}
type D []E

// NewDocument converts a map, struct or [domain.Document] into a
// [domain.Document]. Structs become insertion-ordered [D] documents in
// field declaration order; maps become hashed [M] documents.
func NewDocument(in any) (domain.Document, error) {
	if in == nil {
		return M{}, nil
	}
	if doc, ok := in.(domain.Document); ok {
		return doc, nil
	}
	if m, ok := in.(map[string]any); ok {
		return parseMap(m)
	}

	r := goreflect.ValueNoEscapeOf(in)
	k := r.Kind()
	for k == goreflect.Interface || k == reflect.Pointer {
		if r.IsNil() {
			return M{}, nil
		}
		r = r.Elem()
		k = r.Kind()
	}
	switch k {
	case goreflect.Struct:
		return parseStruct(r)
	case goreflect.Map:
		if r.Type().Key().Kind() != goreflect.String {
			return nil, fmt.Errorf("expected string-keyed map, got %s", r.Type().String())
		}
		return parseMapReflect(r)
	default:
		return nil, fmt.Errorf("expected map or struct, got %s", r.Type().String())
	}
}

func parseMap(v map[string]any) (domain.Document, error) {
	res := make(M, len(v))
	for k, item := range v {
		parsed, err := parseValue(item)
		if err != nil {
			return nil, err
		}
		res[k] = parsed
	}
	return res, nil
}

func parseMapReflect(v goreflect.Value) (domain.Document, error) {
	res := make(M, v.Len())
	for _, k := range v.MapKeys() {
		parsed, err := parseValue(v.MapIndex(k).Interface())
		if err != nil {
			return nil, err
		}
		res[k.String()] = parsed
	}
	return res, nil
}

func parseStruct(r goreflect.Value) (domain.Document, error) {
	typ := r.Type()
	if typ == timeTyp {
		return nil, fmt.Errorf("expected map or struct, got %s", typ.String())
	}
	numField := r.NumField()
	res := make(D, 0, numField)

	for n := range numField {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}

		name, keep := fieldName(r.Field(n), field)
		if !keep {
			continue
		}
		value, err := parseValue(r.Field(n).Interface())
		if err != nil {
			return nil, err
		}
		res = append(res, E{Key: name, Value: value})
	}
	return res, nil
}

func fieldName(r goreflect.Value, typ goreflect.StructField) (string, bool) {
	name := typ.Name
	tag, ok := typ.Tag.Lookup(TagName)
	if !ok {
		return name, true
	}
	if tag == "-" {
		return "", false
	}
	segments := strings.Split(tag, ",")
	if segments[0] != "" {
		name = segments[0]
	}
	for _, seg := range segments[1:] {
		switch seg {
		case "omitempty":
			if isNullable(typ.Type) && r.IsNil() {
				return "", false
			}
		case "omitzero":
			if r.IsZero() {
				return "", false
			}
		}
	}
	return name, true
}

func parseValue(in any) (any, error) {
	switch t := in.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp, []byte, domain.Document:
		return t, nil
	case []any:
		out := make(A, len(t))
		for n, v := range t {
			parsed, err := parseValue(v)
			if err != nil {
				return nil, err
			}
			out[n] = parsed
		}
		return out, nil
	case map[string]any:
		return parseMap(t)
	}

	r := goreflect.ValueNoEscapeOf(in)
	return parseReflect(r)
}

func parseReflect(r goreflect.Value) (any, error) {
	for r.Kind() == reflect.Pointer || r.Kind() == goreflect.Interface {
		if r.IsNil() {
			return nil, nil
		}
		r = r.Elem()
	}
	switch r.Kind() {
	case goreflect.Invalid:
		return nil, nil
	case goreflect.Slice:
		if r.IsNil() {
			return nil, nil
		}
		fallthrough
	case goreflect.Array:
		if r.Type().Elem().Kind() == goreflect.Uint8 {
			return r.Interface(), nil
		}
		out := make(A, r.Len())
		for i := range r.Len() {
			parsed, err := parseValue(r.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil
	case goreflect.Struct:
		if r.Type() == timeTyp {
			return r.Interface(), nil
		}
		return parseStruct(r)
	case goreflect.Map:
		if r.Type().Key().Kind() != goreflect.String {
			return nil, fmt.Errorf("expected string-keyed map, got %s", r.Type().String())
		}
		return parseMapReflect(r)
	default:
		return r.Interface(), nil
	}
}

func isNullable(t goreflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map,
		reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// Get implements [domain.Document].
func (d M) Get(key string) any {
	return d[key]
}

// Has implements [domain.Document].
func (d M) Has(key string) bool {
	_, has := d[key]
	return has
}

// Iter implements [domain.Document].
func (d M) Iter() iter.Seq2[string, any] {
	return maps.All(d)
}

// Keys implements [domain.Document].
func (d M) Keys() iter.Seq[string] {
	return maps.Keys(d)
}

// Values implements [domain.Document].
func (d M) Values() iter.Seq[any] {
	return maps.Values(d)
}

// Len implements [domain.Document].
func (d M) Len() int {
	return len(d)
}

// Get implements [domain.Document]. The last entry wins when a key is
// duplicated.
func (d D) Get(key string) any {
	for n := len(d) - 1; n >= 0; n-- {
		if d[n].Key == key {
			return d[n].Value
		}
	}
	return nil
}

// Has implements [domain.Document].
func (d D) Has(key string) bool {
	for n := range d {
		if d[n].Key == key {
			return true
		}
	}
	return false
}

// Iter implements [domain.Document]. Pairs are yielded in insertion order.
func (d D) Iter() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, e := range d {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys implements [domain.Document].
func (d D) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range d {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values implements [domain.Document].
func (d D) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range d {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Len implements [domain.Document].
func (d D) Len() int {
	return len(d)
}

// Map converts the document and its nested documents into plain maps.
func (d D) Map() map[string]any {
	out := make(map[string]any, len(d))
	for _, e := range d {
		out[e.Key] = plainValue(e.Value)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case D:
		return t.Map()
	case M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainValue(item)
		}
		return out
	case A:
		out := make(A, len(t))
		for n, item := range t {
			out[n] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
