package validation

import (
	"testing"

	"github.com/netgraph/netgraph/pkg/model"
)

func TestConvertValue(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		tag      TypeTag
		wantType model.ValueType
		wantText string
	}{
		{"to string", "abc", TypeString, model.TypeString, "abc"},
		{"to integer", "42", TypeInteger, model.TypeInt, "42"},
		{"float text to integer truncates", "7.9", TypeInteger, model.TypeInt, "7"},
		{"to float", "2.5", TypeFloat, model.TypeFloat, "2.5"},
		{"to boolean", "yes", TypeBoolean, model.TypeBool, "true"},
		{"zero to boolean", "0", TypeBoolean, model.TypeBool, "false"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertValue(model.StringValue(tc.in), tc.tag)
			if err != nil {
				t.Fatalf("ConvertValue: %v", err)
			}
			if got.Type != tc.wantType || got.Text() != tc.wantText {
				t.Errorf("= %v %q, want %v %q", got.Type, got.Text(), tc.wantType, tc.wantText)
			}
		})
	}
}

func TestConvertValue_Temporal(t *testing.T) {
	got, err := ConvertValue(model.StringValue("2024-01-15"), TypeDate)
	if err != nil {
		t.Fatalf("ConvertValue(date): %v", err)
	}
	ts, err := got.AsTimestamp()
	if err != nil {
		t.Fatalf("AsTimestamp: %v", err)
	}
	if ts.Year() != 2024 || int(ts.Month()) != 1 || ts.Day() != 15 {
		t.Errorf("timestamp = %v", ts)
	}

	if _, err := ConvertValue(model.StringValue("2024-01-15 10:30:00"), TypeDatetime); err != nil {
		t.Errorf("ConvertValue(datetime): %v", err)
	}
}

func TestConvertValue_NullPassesThrough(t *testing.T) {
	got, err := ConvertValue(model.NullValue(), TypeInteger)
	if err != nil {
		t.Fatalf("ConvertValue(null): %v", err)
	}
	if !got.IsNull() {
		t.Error("null should pass through unconverted")
	}
}

func TestConvertValue_Errors(t *testing.T) {
	if _, err := ConvertValue(model.StringValue("abc"), TypeInteger); err == nil {
		t.Error("abc to integer should fail")
	}
	if _, err := ConvertValue(model.StringValue("maybe"), TypeBoolean); err == nil {
		t.Error("maybe to boolean should fail")
	}
	if _, err := ConvertValue(model.StringValue("not a date"), TypeDate); err == nil {
		t.Error("bad date should fail")
	}
	if _, err := ConvertValue(model.StringValue("x"), TypeTag("bytes")); err == nil {
		t.Error("unknown tag should fail")
	}
}

func TestConvertColumn(t *testing.T) {
	col := []model.Value{
		model.StringValue("1"), model.NullValue(), model.StringValue("3"),
	}
	converted, err := ConvertColumn(col, TypeInteger)
	if err != nil {
		t.Fatalf("ConvertColumn: %v", err)
	}
	if converted[0].Type != model.TypeInt {
		t.Error("first value not converted")
	}
	if !converted[1].IsNull() {
		t.Error("null cell should stay null")
	}
}

func TestConvertColumn_FailureReturnsOriginal(t *testing.T) {
	col := []model.Value{model.StringValue("1"), model.StringValue("oops")}
	got, err := ConvertColumn(col, TypeInteger)
	if err == nil {
		t.Fatal("expected conversion error")
	}
	if got[0].Type != model.TypeString {
		t.Error("failed conversion should return the column untouched")
	}
}
