package model

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ValueType represents the type of an attribute or KPI value
type ValueType uint8

const (
	TypeNull ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTimestamp
)

// String returns the canonical name of a value type, matching the
// type tags used by mapping configurations ("string", "integer", ...).
func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "boolean"
	case TypeTimestamp:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value represents a typed attribute value
type Value struct {
	Type ValueType
	Data []byte
}

// Helper functions to create typed values

func NullValue() Value {
	return Value{Type: TypeNull}
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Data: []byte(s)}
}

func IntValue(i int64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(i))
	return Value{Type: TypeInt, Data: data}
}

func FloatValue(f float64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(f))
	return Value{Type: TypeFloat, Data: data}
}

func BoolValue(b bool) Value {
	data := []byte{0}
	if b {
		data[0] = 1
	}
	return Value{Type: TypeBool, Data: data}
}

func TimestampValue(t time.Time) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(t.Unix()))
	return Value{Type: TypeTimestamp, Data: data}
}

// FromAny converts a dynamically typed value (e.g. decoded JSON) into
// a Value. Unknown types fall back to their string representation.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case float64:
		return FloatValue(x)
	case time.Time:
		return TimestampValue(x)
	case Value:
		return x
	default:
		return StringValue(fmt.Sprintf("%v", x))
	}
}

// Decode methods

func (v Value) AsString() (string, error) {
	if v.Type != TypeString {
		return "", fmt.Errorf("value is not a string")
	}
	return string(v.Data), nil
}

func (v Value) AsInt() (int64, error) {
	if v.Type != TypeInt {
		return 0, fmt.Errorf("value is not an int")
	}
	return int64(binary.LittleEndian.Uint64(v.Data)), nil
}

func (v Value) AsFloat() (float64, error) {
	if v.Type != TypeFloat {
		return 0, fmt.Errorf("value is not a float")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.Data)), nil
}

func (v Value) AsBool() (bool, error) {
	if v.Type != TypeBool {
		return false, fmt.Errorf("value is not a bool")
	}
	return v.Data[0] == 1, nil
}

func (v Value) AsTimestamp() (time.Time, error) {
	if v.Type != TypeTimestamp {
		return time.Time{}, fmt.Errorf("value is not a timestamp")
	}
	return time.Unix(int64(binary.LittleEndian.Uint64(v.Data)), 0).UTC(), nil
}

// IsNull reports whether the value is null
func (v Value) IsNull() bool {
	return v.Type == TypeNull
}

// Text returns the display form of the value. Null values render as
// the empty string; timestamps render as RFC 3339.
func (v Value) Text() string {
	switch v.Type {
	case TypeNull:
		return ""
	case TypeString:
		return string(v.Data)
	case TypeInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case TypeFloat:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case TypeBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case TypeTimestamp:
		t, _ := v.AsTimestamp()
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Numeric returns the value as a float64 when it carries (or parses
// as) a number.
func (v Value) Numeric() (float64, bool) {
	switch v.Type {
	case TypeInt:
		i, _ := v.AsInt()
		return float64(i), true
	case TypeFloat:
		f, _ := v.AsFloat()
		return f, true
	case TypeString:
		f, err := strconv.ParseFloat(string(v.Data), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether two values carry the same type and data
func (v Value) Equal(other Value) bool {
	return v.Type == other.Type && string(v.Data) == string(other.Data)
}

// Matches is the looser equality used by query filters: values of the
// same type compare byte-wise, numeric values of different types
// compare as floats, and everything else falls back to text form.
func (v Value) Matches(other Value) bool {
	if v.Equal(other) {
		return true
	}
	if a, ok := v.Numeric(); ok {
		if b, ok := other.Numeric(); ok {
			return a == b
		}
	}
	return v.Text() == other.Text()
}

// MarshalJSON renders the value as its native JSON form
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case TypeNull:
		return []byte("null"), nil
	case TypeString:
		return json.Marshal(string(v.Data))
	case TypeInt:
		i, _ := v.AsInt()
		return json.Marshal(i)
	case TypeFloat:
		f, _ := v.AsFloat()
		return json.Marshal(f)
	case TypeBool:
		b, _ := v.AsBool()
		return json.Marshal(b)
	case TypeTimestamp:
		t, _ := v.AsTimestamp()
		return json.Marshal(t.Format(time.RFC3339))
	default:
		return nil, fmt.Errorf("unknown value type %d", v.Type)
	}
}

// UnmarshalJSON decodes a native JSON value into a tagged Value
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
