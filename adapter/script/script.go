// Package script compiles textual $where bodies into [domain.WhereFunc]
// predicates using the goja JavaScript engine. The engine core never embeds
// a language runtime; hosts that want textual $where inject this compiler
// through the matcher's WithWhereCompiler option.
package script

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/weiliddat/mgq/domain"
	"github.com/weiliddat/mgq/pkg/structure"
)

// Compile implements [domain.WhereCompiler]. The source may be a full
// function expression or a bare boolean expression; either way the document
// under evaluation is bound to `this`.
//
// The returned predicate serializes its callers: goja runtimes are not
// concurrency safe, so concurrent Test calls on a predicate with a textual
// $where are coordinated here.
func Compile(src string) (domain.WhereFunc, error) {
	expr := strings.TrimSpace(src)
	if strings.HasPrefix(expr, "function") {
		expr = "(" + expr + ")"
	} else {
		expr = "(function() { return (" + expr + "); })"
	}

	prog, err := goja.Compile("$where", expr, true)
	if err != nil {
		return nil, fmt.Errorf("cannot compile $where body: %w", err)
	}

	vm := goja.New()
	v, err := vm.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate $where body: %w", err)
	}
	callable, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("$where body is not a function")
	}

	var mu sync.Mutex
	return func(doc any) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		res, err := callable(vm.ToValue(jsValue(doc)))
		if err != nil {
			return false, fmt.Errorf("$where: %w", err)
		}
		return res.ToBoolean(), nil
	}, nil
}

// jsValue flattens documents into the plain maps and slices goja knows how
// to expose.
func jsValue(v any) any {
	if doc, ok := v.(domain.Document); ok {
		out := make(map[string]any, doc.Len())
		for k, item := range doc.Iter() {
			out[k] = jsValue(item)
		}
		return out
	}
	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for n, item := range arr {
			out[n] = jsValue(item)
		}
		return out
	}
	if i, _, err := structure.Seq2(v); err == nil {
		out := map[string]any{}
		for k, item := range i {
			out[k] = jsValue(item)
		}
		return out
	}
	return v
}
