package qbank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a parsed JSON value. Unlike map[string]any, object fields keep
// the order they appear in the document; the flattener and the
// learning-objectives reader both depend on that order.
type Value struct {
	kind Kind

	str  string
	num  json.Number
	b    bool
	arr  []*Value
	keys []string
	obj  map[string]*Value
}

// ParseValue decodes one JSON value from data. Trailing non-whitespace
// content after the value is an error.
func ParseValue(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := &Value{kind: KindObject, obj: map[string]*Value{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				field, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if _, dup := v.obj[key]; !dup {
					v.keys = append(v.keys, key)
				}
				v.obj[key] = field
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return v, nil
		case '[':
			v := &Value{kind: KindArray}
			for dec.More() {
				el, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				v.arr = append(v.arr, el)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return v, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &Value{kind: KindString, str: t}, nil
	case json.Number:
		return &Value{kind: KindNumber, num: t}, nil
	case bool:
		return &Value{kind: KindBool, b: t}, nil
	case nil:
		return &Value{kind: KindNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (v *Value) Kind() Kind { return v.kind }

// Keys returns the object's field names in document order. Nil for
// non-objects.
func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.keys
}

// Field looks up an object field by name.
func (v *Value) Field(name string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	f, ok := v.obj[name]
	return f, ok
}

// Items returns the array's elements. Nil for non-arrays.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Interface converts to a plain Go value: nil, bool, json.Number, string,
// []any, or map[string]any (field order lost).
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, el := range v.arr {
			out[i] = el.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.obj[k].Interface()
		}
		return out
	}
	return nil
}

// Text renders a scalar as a display string. Empty for null; arrays and
// objects fall back to their JSON-ish Go representation.
func (v *Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	}
	return fmt.Sprintf("%v", v.Interface())
}
