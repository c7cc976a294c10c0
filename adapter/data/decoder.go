package data

import (
	"github.com/mitchellh/mapstructure"

	"github.com/weiliddat/mgq/domain"
)

// Decode converts a matched document into a caller-defined struct or map,
// honoring the "mgq" struct tag. Ordered [D] documents are flattened to
// plain maps first.
func Decode(src any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(decodeSource(src))
}

func decodeSource(src any) any {
	switch t := src.(type) {
	case D:
		return t.Map()
	case M:
		return plainValue(t)
	case domain.Document:
		out := make(map[string]any, t.Len())
		for k, v := range t.Iter() {
			out[k] = plainValue(v)
		}
		return out
	default:
		return src
	}
}
