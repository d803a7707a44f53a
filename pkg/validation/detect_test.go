package validation

import (
	"testing"

	"github.com/netgraph/netgraph/pkg/model"
)

func textColumn(texts ...string) []model.Value {
	values := make([]model.Value, len(texts))
	for i, t := range texts {
		if t == "<null>" {
			values[i] = model.NullValue()
		} else {
			values[i] = model.StringValue(t)
		}
	}
	return values
}

func TestDetectType(t *testing.T) {
	cases := []struct {
		name   string
		values []model.Value
		want   TypeTag
	}{
		{"integers", textColumn("1", "42", "-7"), TypeInteger},
		{"floats", textColumn("1.5", "2.0", "3"), TypeFloat},
		{"strings", textColumn("alice", "bob"), TypeString},
		{"mixed numeric and text", textColumn("1", "two"), TypeString},
		{"booleans words", textColumn("true", "False", "yes", "NO"), TypeBoolean},
		{"booleans single letters", textColumn("t", "f", "y", "n"), TypeBoolean},
		{"dates iso", textColumn("2024-01-15", "2024-2-3"), TypeDate},
		{"dates us", textColumn("01/15/2024", "2/3/2024"), TypeDate},
		{"datetimes", textColumn("2024-01-15 10:30:00", "2024-01-16 11:00:00"), TypeDatetime},
		{"datetimes iso utc", textColumn("2024-01-15T10:30:00Z"), TypeDatetime},
		{"nulls ignored", textColumn("<null>", "5", "<null>", "6"), TypeInteger},
		{"all null", textColumn("<null>", "<null>"), TypeString},
		{"empty column", nil, TypeString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectType(tc.values); got != tc.want {
				t.Errorf("DetectType = %v, want %v", got, tc.want)
			}
		})
	}
}

// "1"/"0" columns are booleans, never integers: the boolean check
// runs before the numeric one.
func TestDetectType_BinaryDigitsAreBoolean(t *testing.T) {
	if got := DetectType(textColumn("1", "0", "0", "1")); got != TypeBoolean {
		t.Errorf("DetectType(1/0) = %v, want boolean", got)
	}
	// a single non-binary digit breaks the boolean reading
	if got := DetectType(textColumn("1", "0", "2")); got != TypeInteger {
		t.Errorf("DetectType(1/0/2) = %v, want integer", got)
	}
}

// Date-like strings never fall through to numeric even though the
// date check has higher precedence than number parsing would suggest.
func TestDetectType_DateBeatsNumeric(t *testing.T) {
	if got := DetectType(textColumn("2024-01-15")); got != TypeDate {
		t.Errorf("DetectType(date) = %v, want date", got)
	}
	if got := DetectType(textColumn("2024-01-15 10:30:00")); got != TypeDatetime {
		t.Errorf("DetectType(datetime) = %v, want datetime", got)
	}
}

func TestDetectType_WholeFloatsAreIntegers(t *testing.T) {
	if got := DetectType(textColumn("1.0", "2.0")); got != TypeInteger {
		t.Errorf("DetectType(1.0/2.0) = %v, want integer (no fractional part)", got)
	}
}

func TestSupportedTypeTags(t *testing.T) {
	tags := SupportedTypeTags()
	if len(tags) != len(SupportedTypes) {
		t.Fatalf("tag list has %d entries, map has %d", len(tags), len(SupportedTypes))
	}
	for _, tag := range tags {
		if _, ok := SupportedTypes[tag]; !ok {
			t.Errorf("tag %s missing from SupportedTypes", tag)
		}
	}
}
