// Package validator checks inbound query strings and JSON payloads against
// per-resource allow-lists. Each key maps to a Rule; anything outside the
// allow-list, or any value failing its rule, is rejected with a 400 naming
// what would have been accepted.
package validator

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rbeckert/forum/internal/httperr"
	"github.com/rbeckert/forum/internal/utils/functional"
)

type ruleKind int

const (
	anyValue ruleKind = iota
	oneOf
	numeric
	positiveNumeric
	notBlankString
)

type Rule struct {
	kind    ruleKind
	allowed []string
}

// Any accepts every value; the key itself is still allow-listed.
func Any() Rule {
	return Rule{kind: anyValue}
}

// OneOf accepts only the enumerated values.
func OneOf(values ...string) Rule {
	return Rule{kind: oneOf, allowed: values}
}

// Numeric accepts anything that reads as a number, including numeric
// strings, since query values always arrive as strings.
func Numeric() Rule {
	return Rule{kind: numeric}
}

// PositiveNumeric accepts integers greater than zero.
func PositiveNumeric() Rule {
	return Rule{kind: positiveNumeric}
}

// NotBlankString accepts strings with at least one non-space character.
func NotBlankString() Rule {
	return Rule{kind: notBlankString}
}

// Spec is the allow-list for one resource: permitted key -> rule for its value.
type Spec map[string]Rule

// CheckProperties verifies that obj only holds allow-listed keys and that
// every present value satisfies its rule. The label names the thing being
// checked in messages, e.g. "query" or "JSON passed in request". Absent
// keys are not an error; see CheckExactKeys for required keys.
func CheckProperties(obj map[string]any, spec Spec, label string) error {
	allowedKeys := make([]string, 0, len(spec))
	for key := range spec {
		allowedKeys = append(allowedKeys, key)
	}
	sort.Strings(allowedKeys)

	for key := range obj {
		if _, ok := spec[key]; !ok {
			return httperr.BadRequestf("Bad request. %s can only include the following keys: %s",
				capitalise(label), strings.Join(allowedKeys, ", "))
		}
	}

	for key, rule := range spec {
		value, present := obj[key]
		if !present {
			continue
		}

		switch rule.kind {
		case anyValue:

		case oneOf:
			str, ok := asString(value)
			if !ok || !contains(rule.allowed, str) {
				quoted := functional.Map(rule.allowed, func(v string) string { return "'" + v + "'" })
				return httperr.BadRequestf("Bad request - %s must be one of: %s", key, strings.Join(quoted, ", "))
			}

		case numeric:
			if _, ok := asNumber(value); !ok {
				return httperr.BadRequestf("Bad request. The value of %s must be a number.", key)
			}

		case positiveNumeric:
			number, ok := asInteger(value)
			if !ok || number <= 0 {
				return httperr.BadRequestf("Bad request. Unexpected value for %s in %s.", key, label)
			}

		case notBlankString:
			str, ok := asString(value)
			if !ok || strings.TrimSpace(str) == "" {
				return httperr.BadRequestf("Bad request. The value of %s must be a non-empty string.", key)
			}
		}
	}

	return nil
}

// CheckExactKeys enforces that obj holds exactly the given keys, then runs
// the spec's value rules. Used for JSON write payloads where missing and
// superfluous keys are equally invalid.
func CheckExactKeys(obj map[string]any, spec Spec, keys ...string) error {
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return exactKeysError(keys)
		}
	}
	for key := range obj {
		if !contains(keys, key) {
			return exactKeysError(keys)
		}
	}

	return CheckProperties(obj, spec, "JSON passed in request")
}

func exactKeysError(keys []string) error {
	return httperr.BadRequestf("Missing or superfluous keys. The JSON object you send must have keys for %s and no others",
		strings.Join(keys, ", "))
}

type AliasPair struct {
	From string
	To   string
}

// RenameKeys returns a copy of obj with every present From key renamed to
// its To key. Absent keys are untouched and obj is never mutated. This lets
// clients use the short query aliases (s, o, a, t, l, p).
func RenameKeys(obj map[string]any, pairs ...AliasPair) map[string]any {
	renamed := make(map[string]any, len(obj))
	for key, value := range obj {
		renamed[key] = value
	}

	for _, pair := range pairs {
		if value, ok := renamed[pair.From]; ok {
			renamed[pair.To] = value
			delete(renamed, pair.From)
		}
	}

	return renamed
}

// CheckID verifies that a path parameter reads as an integer. Purely
// syntactic; it never touches the store.
func CheckID(id string, label string) error {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return httperr.BadRequestf("Bad request. %q is not a valid %s ID. Expected a number.", id, label)
	}
	return nil
}

func asString(value any) (string, bool) {
	str, ok := value.(string)
	return str, ok
}

// asNumber reads query values (strings) and decoded JSON values (float64)
// as one numeric type.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		number, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

func asInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		number, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func capitalise(label string) string {
	if label == "" {
		return label
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
