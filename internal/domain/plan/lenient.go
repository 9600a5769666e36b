package plan

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// decodeLenient fills dst from data one field at a time. A value whose JSON
// shape does not fit its Go type keeps the zero value, a list element that
// does not fit is skipped, and the rest of the document still decodes. It
// reports false only when data does not fit dst at all.
func decodeLenient(data []byte, dst reflect.Value) bool {
	if reflect.PointerTo(dst.Type()).Implements(unmarshalerType) {
		return decodeStrict(data, dst)
	}
	switch dst.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return false
		}
		t := dst.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			raw, ok := fields[jsonName(f)]
			if !ok {
				continue
			}
			decodeLenient(raw, dst.Field(i))
		}
		return true
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return false
		}
		if items == nil {
			return true
		}
		out := reflect.MakeSlice(dst.Type(), 0, len(items))
		for _, item := range items {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if decodeLenient(item, elem) {
				out = reflect.Append(out, elem)
			}
		}
		dst.Set(out)
		return true
	case reflect.String:
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return false
		}
		switch raw.(type) {
		case string, float64, bool:
			dst.SetString(cast.ToString(raw))
			return true
		case nil:
			return true
		}
		return false
	case reflect.Bool:
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return false
		}
		if s, ok := raw.(string); ok {
			raw = strings.TrimSpace(s)
		}
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return false
		}
		dst.SetBool(b)
		return true
	}
	return decodeStrict(data, dst)
}

func decodeStrict(data []byte, dst reflect.Value) bool {
	v := reflect.New(dst.Type())
	if err := json.Unmarshal(data, v.Interface()); err != nil {
		return false
	}
	dst.Set(v.Elem())
	return true
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}
