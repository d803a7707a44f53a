package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/netgraph/netgraph/pkg/model"
)

// ConvertValue converts a single value to the given type tag. Null
// values pass through unchanged. This is the one shared conversion
// implementation used by the validator, the mapper and the
// transformer.
func ConvertValue(v model.Value, tag TypeTag) (model.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	text := v.Text()

	switch tag {
	case TypeString:
		return model.StringValue(text), nil

	case TypeInteger:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return v, fmt.Errorf("cannot convert %q to integer", text)
		}
		return model.IntValue(int64(f)), nil

	case TypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return v, fmt.Errorf("cannot convert %q to float", text)
		}
		return model.FloatValue(f), nil

	case TypeBoolean:
		b, ok := booleanTokens[strings.ToLower(text)]
		if !ok {
			return v, fmt.Errorf("cannot convert %q to boolean", text)
		}
		return model.BoolValue(b), nil

	case TypeDate, TypeDatetime:
		if ts, ok := parseDate(text); ok {
			return model.TimestampValue(ts), nil
		}
		layouts := append(append([]string(nil), datetimeDefaultLayouts...), datetimeUTCLayouts...)
		if ts, ok := parseAny(text, layouts); ok {
			return model.TimestampValue(ts), nil
		}
		return v, fmt.Errorf("cannot convert %q to %s", text, tag)

	default:
		return v, fmt.Errorf("unknown data type %q", tag)
	}
}

// ConvertColumn converts every value of a column, stopping at the
// first failure. On error the original column is returned untouched.
func ConvertColumn(values []model.Value, tag TypeTag) ([]model.Value, error) {
	converted := make([]model.Value, len(values))
	for i, v := range values {
		cv, err := ConvertValue(v, tag)
		if err != nil {
			return values, err
		}
		converted[i] = cv
	}
	return converted, nil
}
