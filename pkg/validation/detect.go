// Package validation implements type detection and the validation
// surfaces used by the import pipeline and the graph engine CRUD
// boundary.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/netgraph/netgraph/pkg/model"
)

// TypeTag is a semantic column type inferred from data
type TypeTag string

const (
	TypeString   TypeTag = "string"
	TypeInteger  TypeTag = "integer"
	TypeFloat    TypeTag = "float"
	TypeBoolean  TypeTag = "boolean"
	TypeDate     TypeTag = "date"
	TypeDatetime TypeTag = "datetime"
)

// SupportedTypes maps every valid type tag to its description, in the
// order shown by mapping UIs.
var SupportedTypes = map[TypeTag]string{
	TypeString:   "Text data",
	TypeInteger:  "Whole numbers",
	TypeFloat:    "Decimal numbers",
	TypeBoolean:  "True/False values",
	TypeDate:     "Date values (YYYY-MM-DD)",
	TypeDatetime: "Date and time values",
}

// SupportedTypeTags returns the type tags in stable display order
func SupportedTypeTags() []TypeTag {
	return []TypeTag{TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDate, TypeDatetime}
}

// booleanTokens is the closed set of strings recognized as boolean,
// compared case-insensitively.
var booleanTokens = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"1": true, "0": false,
	"t": true, "f": false,
	"y": true, "n": false,
	"": false,
}

// Datetime layouts tried per parse strategy. Every layout here has a
// time component; date-only strings fall through to the date tier so
// the date/datetime precedence stays meaningful.
var (
	datetimeDefaultLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
	}
	datetimeUTCLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05.999999999Z",
	}
)

// Date patterns and their parse layouts, tried in order:
// YYYY-MM-DD, MM/DD/YYYY, YYYY/MM/DD.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`), "2006-1-2"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), "1/2/2006"},
	{regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`), "2006/1/2"},
}

// DetectType infers the semantic type of a column from its non-null
// values. Precedence is fixed: boolean, datetime, date, numeric,
// string — boolean and temporal checks run before numeric ones so
// tokens like "1"/"0" and date-like strings are not misread as
// numbers. A pure function of the values.
func DetectType(values []model.Value) TypeTag {
	texts := nonNullTexts(values)
	if len(texts) == 0 {
		return TypeString
	}
	if isBooleanColumn(texts) {
		return TypeBoolean
	}
	if isDatetimeColumn(texts) {
		return TypeDatetime
	}
	if isDateColumn(texts) {
		return TypeDate
	}
	if isNumericColumn(texts) {
		if isIntegerColumn(texts) {
			return TypeInteger
		}
		return TypeFloat
	}
	return TypeString
}

func nonNullTexts(values []model.Value) []string {
	texts := make([]string, 0, len(values))
	for _, v := range values {
		if !v.IsNull() {
			texts = append(texts, v.Text())
		}
	}
	return texts
}

func isBooleanColumn(texts []string) bool {
	for _, t := range texts {
		if _, ok := booleanTokens[strings.ToLower(t)]; !ok {
			return false
		}
	}
	return true
}

// isDatetimeColumn tries three parse strategies against the whole
// column: default layouts, ISO-8601 with UTC, then mixed (any known
// layout per value).
func isDatetimeColumn(texts []string) bool {
	if allParse(texts, datetimeDefaultLayouts) {
		return true
	}
	if allParse(texts, datetimeUTCLayouts) {
		return true
	}
	mixed := append(append([]string(nil), datetimeDefaultLayouts...), datetimeUTCLayouts...)
	return allParse(texts, mixed)
}

func allParse(texts, layouts []string) bool {
	for _, t := range texts {
		if _, ok := parseAny(t, layouts); !ok {
			return false
		}
	}
	return true
}

func parseAny(text string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDateColumn(texts []string) bool {
	for _, t := range texts {
		if _, ok := parseDate(t); !ok {
			return false
		}
	}
	return true
}

func parseDate(text string) (time.Time, bool) {
	for _, p := range datePatterns {
		if p.re.MatchString(text) {
			if ts, err := time.Parse(p.layout, text); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func isNumericColumn(texts []string) bool {
	for _, t := range texts {
		if _, err := strconv.ParseFloat(t, 64); err != nil {
			return false
		}
	}
	return true
}

func isIntegerColumn(texts []string) bool {
	for _, t := range texts {
		f, err := strconv.ParseFloat(t, 64)
		if err != nil || f != float64(int64(f)) {
			return false
		}
	}
	return true
}
