// Package structure contains type-related operations, such as iterating over
// a value of type any, looking up keys in arbitrary objects and converting
// numbers.
package structure

import (
	"errors"
	"iter"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/weiliddat/mgq/domain"
)

// TagName is the struct tag read when iterating struct fields.
const TagName = "mgq"

var (
	// ErrNilObj may be returned by [Seq] or [Seq2] when a nil value is
	// passed as argument.
	ErrNilObj = errors.New("nil object")
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// ErrorNonObject is returned by [Seq2] when a value that is neither a
// struct, map nor a [domain.Document] is passed as argument.
type ErrorNonObject struct {
	Type reflect.Type
}

func (e ErrorNonObject) Error() string {
	return "not an object: " + e.Type.String()
}

// ErrorNonList is returned by [Seq] when a value that is neither a slice nor
// an array is passed as argument.
type ErrorNonList struct {
	Type reflect.Type
}

func (e ErrorNonList) Error() string {
	return "not a list: " + e.Type.String()
}

// Seq2 returns an ordered iterator over the passed object. This works for
// implementations of [domain.Document] (which control their own order),
// maps, and structs (field declaration order).
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	if err := checkPrimitive(obj); err != nil {
		return nil, 0, err
	}
	switch t := obj.(type) {
	case domain.Document:
		return t.Iter(), t.Len(), nil
	case map[string]any:
		return iterMap(t), len(t), nil
	case map[string]string:
		return iterMap(t), len(t), nil
	case map[string]bool:
		return iterMap(t), len(t), nil
	case map[string]int:
		return iterMap(t), len(t), nil
	case map[string]int64:
		return iterMap(t), len(t), nil
	case map[string]float64:
		return iterMap(t), len(t), nil
	case map[string]time.Time:
		return iterMap(t), len(t), nil
	}
	return iterReflect(obj)
}

func checkPrimitive(obj any) error {
	switch obj.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp, []byte:
		return ErrorNonObject{Type: reflect.TypeOf(obj)}
	default:
		return nil
	}
}

func iterReflect(obj any) (iter.Seq2[string, any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}

	if v.Type().Implements(docReflectType) {
		doc := v.Interface().(domain.Document)
		return doc.Iter(), doc.Len(), nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, 0, ErrorNonObject{Type: v.Type()}
		}
		return iterReflectMap(v)
	case reflect.Struct:
		i, l := iterReflectStruct(v)
		return i, l, nil
	}
	return nil, 0, ErrorNonObject{Type: v.Type()}
}

func iterReflectMap(v reflect.Value) (iter.Seq2[string, any], int, error) {
	keys := v.MapKeys()
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k.String(), v.MapIndex(k).Interface()) {
				return
			}
		}
	}, len(keys), nil
}

func iterReflectStruct(v reflect.Value) (iter.Seq2[string, any], int) {
	type pair struct {
		Key   string
		Value any
	}
	fields := make([]pair, 0, v.NumField())
	for k, fv := range listStructFields(v) {
		fields = append(fields, pair{Key: k, Value: fv})
	}
	return func(yield func(string, any) bool) {
		for _, field := range fields {
			if !yield(field.Key, field.Value) {
				return
			}
		}
	}, len(fields)
}

func listStructFields(v reflect.Value) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		typ := v.Type()
		for n := range typ.NumField() {
			field := typ.Field(n)
			if field.PkgPath != "" {
				continue
			}

			name := field.Name
			var omitEmpty, omitZero bool
			if tag, ok := field.Tag.Lookup(TagName); ok {
				if tag == "-" {
					continue
				}
				segments := strings.Split(tag, ",")
				if segments[0] != "" {
					name = segments[0]
				}
				for _, sub := range segments[1:] {
					switch sub {
					case "omitempty":
						omitEmpty = true
					case "omitzero":
						omitZero = true
					}
				}
			}
			switch {
			case omitZero:
				if v.Field(n).IsZero() {
					continue
				}
			case omitEmpty:
				switch field.Type.Kind() {
				case reflect.Chan, reflect.Func, reflect.Map,
					reflect.Ptr, reflect.UnsafePointer,
					reflect.Interface, reflect.Slice:
					if v.Field(n).IsNil() {
						continue
					}
				}
			}
			if !yield(name, v.Field(n).Interface()) {
				return
			}
		}
	}
}

func iterMap[T any](m map[string]T) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Seq returns an iterator over a slice or array of any type. Strings and
// byte slices are not lists.
func Seq(obj any) (iter.Seq[any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	// ordered documents are slices underneath, but never lists
	if _, ok := obj.(domain.Document); ok {
		return nil, 0, ErrorNonList{Type: reflect.TypeOf(obj)}
	}
	if err := checkPrimitive(obj); err != nil {
		return nil, 0, ErrorNonList{Type: reflect.TypeOf(obj)}
	}
	switch t := obj.(type) {
	case []any:
		return iterSlice(t), len(t), nil
	case []string:
		return iterSlice(t), len(t), nil
	case []bool:
		return iterSlice(t), len(t), nil
	case []int:
		return iterSlice(t), len(t), nil
	case []int64:
		return iterSlice(t), len(t), nil
	case []float64:
		return iterSlice(t), len(t), nil
	case []time.Time:
		return iterSlice(t), len(t), nil
	case []*regexp.Regexp:
		return iterSlice(t), len(t), nil
	}
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return iterReflectSlice(v), v.Len(), nil
	}
	return nil, 0, ErrorNonList{Type: v.Type()}
}

func iterSlice[T any](m []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

func iterReflectSlice(v reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range v.Len() {
			if !yield(v.Index(i).Interface()) {
				return
			}
		}
	}
}

// List materializes obj into a []any if it is a list, reusing the backing
// slice when obj already is one.
func List(obj any) ([]any, bool) {
	if arr, ok := obj.([]any); ok {
		return arr, true
	}
	seq, l, err := Seq(obj)
	if err != nil {
		return nil, false
	}
	arr := make([]any, 0, l)
	for v := range seq {
		arr = append(arr, v)
	}
	return arr, true
}

// Field looks up a key in an object. Reports false when obj is not an object
// or the key is unset.
func Field(obj any, key string) (any, bool) {
	switch t := obj.(type) {
	case nil:
		return nil, false
	case domain.Document:
		if !t.Has(key) {
			return nil, false
		}
		return t.Get(key), true
	case map[string]any:
		v, ok := t[key]
		return v, ok
	}
	i, _, err := Seq2(obj)
	if err != nil {
		return nil, false
	}
	for k, v := range i {
		if k == key {
			return v, true
		}
	}
	return nil, false
}

// AsInteger converts any built-in number to int, truncating floats toward
// zero, and returns a flag that informs if the argument is a number.
func AsInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		return int(math.Trunc(float64(t))), true
	case float64:
		return int(math.Trunc(t)), true
	default:
		return 0, false
	}
}

// AsFloat converts any built-in number to float64.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// Contains checks if the given value is present in the slice.
func Contains[T any, S ~[]T](s S, t T, fn func(a T, b T) bool) bool {
	for _, i := range s {
		if fn(i, t) {
			return true
		}
	}
	return false
}
