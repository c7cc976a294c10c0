package data

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FromJSON parses a JSON object into an insertion-ordered [D] document.
// Object keys keep their document order, so document-vs-document ordering
// behaves the same as in the source text. Numbers become float64, null
// becomes nil.
func FromJSON(raw []byte) (D, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid json document")
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return nil, fmt.Errorf("expected json object, got %s", res.Type)
	}
	return jsonObject(res), nil
}

func jsonObject(res gjson.Result) D {
	doc := make(D, 0, 8)
	res.ForEach(func(key, value gjson.Result) bool {
		doc = append(doc, E{Key: key.String(), Value: jsonValue(value)})
		return true
	})
	return doc
}

func jsonValue(res gjson.Result) any {
	switch {
	case res.IsObject():
		return jsonObject(res)
	case res.IsArray():
		items := res.Array()
		arr := make(A, len(items))
		for n, item := range items {
			arr[n] = jsonValue(item)
		}
		return arr
	case res.Type == gjson.Number:
		return res.Num
	case res.Type == gjson.String:
		return res.Str
	case res.Type == gjson.True:
		return true
	case res.Type == gjson.False:
		return false
	default:
		return nil
	}
}
