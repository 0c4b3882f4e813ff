package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ValueKind identifies the JSON shape a Value holds.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a decoded JSON value: null, bool, number, string, array, or
// object. Objects keep their member order from the source document and
// numbers keep their source text, so a value parsed from compact JSON
// re-encodes byte for byte. Values are treated as immutable once built.
type Value struct {
	kind ValueKind
	b    bool
	num  string
	str  string
	arr  []Value
	obj  *orderedmap.OrderedMap[string, Value]
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null Value. The zero Value is also null.
func Null() Value {
	return Value{kind: KindNull}
}

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// NumberValue returns a number Value carrying the given source text.
func NumberValue(text string) Value {
	return Value{kind: KindNumber, num: text}
}

// IntValue returns a number Value for n.
func IntValue(n int) Value {
	return Value{kind: KindNumber, num: strconv.Itoa(n)}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ArrayValue returns an array Value of the given items.
func ArrayValue(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue returns an object Value with members in the given order.
// A later duplicate key keeps the first key's position and the last value.
func ObjectValue(members ...Member) Value {
	obj := orderedmap.New[string, Value]()
	for _, m := range members {
		obj.Set(m.Key, m.Value)
	}
	return Value{kind: KindObject, obj: obj}
}

// ParseValue decodes data as a single JSON value. Trailing non-whitespace
// data after the value is an error.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := orderedmap.New[string, Value]()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string")
				}
				member, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, member)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, obj: obj}, nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: items}, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// Kind returns the JSON shape of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the payload of a string Value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Len returns the number of array items or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Items returns the items of an array Value.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Keys returns the member keys of an object Value in document order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Field returns the named member of an object Value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// StringField returns the named member as a string.
func (v Value) StringField(key string) (string, bool) {
	member, ok := v.Field(key)
	if !ok {
		return "", false
	}
	return member.Str()
}

// IntField returns the named member as an int. Fractional numbers are
// truncated.
func (v Value) IntField(key string) (int, bool) {
	member, ok := v.Field(key)
	if !ok || member.kind != KindNumber {
		return 0, false
	}
	if n, err := strconv.ParseInt(member.num, 10, 64); err == nil {
		return int(n), true
	}
	if f, err := strconv.ParseFloat(member.num, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// BoolField returns the named member as a bool.
func (v Value) BoolField(key string) (bool, bool) {
	member, ok := v.Field(key)
	if !ok || member.kind != KindBool {
		return false, false
	}
	return member.b, true
}

// Equal reports deep equality. Object member order does not affect
// equality; numbers compare by source text, so a reissued identical call
// compares equal while 1 and 1.0 do not.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			member, ok := o.obj.Get(pair.Key)
			if !ok || !pair.Value.Equal(member) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the value compactly, preserving object member order
// and number source text.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes data via ParseValue.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders the value as compact JSON.
func (v Value) String() string {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.String()
}

func (v Value) encode(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.num)
	case KindString:
		encodeString(buf, v.str)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.encode(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		first := true
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			encodeString(buf, pair.Key)
			buf.WriteByte(':')
			pair.Value.encode(buf)
		}
		buf.WriteByte('}')
	}
}

// encodeString writes s as a JSON string without HTML escaping, so encoded
// calls match the text models actually emit.
func encodeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline.
}

// EncodeCall renders a call as its canonical compact JSON object, the same
// shape the text matcher recognizes.
func EncodeCall(name string, arguments Value) string {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	encodeString(&buf, name)
	buf.WriteString(`,"arguments":`)
	arguments.encode(&buf)
	buf.WriteByte('}')
	return buf.String()
}
