// Package validation implements the declarative request-validation pipeline:
// rule-based field checks for query parameters, path parameters, and JSON
// bodies, evaluated by a fixed interpreter in schema-declaration order.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FieldError is a single failed rule check, reported back to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeEmail   FieldType = "email"
	TypeBoolean FieldType = "boolean"
)

// Rule is the immutable validation rule for one field. Checks apply in a
// fixed order: required/empty handling, then the type check with its bounds
// and pattern, then Custom.
type Rule struct {
	Required bool
	Type     FieldType
	// Min and Max bound the trimmed length for strings and the coerced
	// value (inclusive) for numbers. Nil means unbounded.
	Min     *float64
	Max     *float64
	Pattern *regexp.Regexp
	// Custom runs last, on the raw (untrimmed) value. A non-empty return is
	// appended as an extra error for the field, in addition to any built-in
	// error.
	Custom func(value any) string
}

type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered set of per-field rules for one endpoint operation.
// Schemas are defined once at startup and never mutated.
type Schema []Field

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks data against schema and returns every collected error.
// One field's failure never short-circuits the others: all applicable errors
// are gathered before the caller responds. The function is pure; validating
// the same input twice yields identical results.
func Validate(data map[string]any, schema Schema) []FieldError {
	var errs []FieldError
	for _, f := range schema {
		errs = append(errs, checkField(f.Name, data[f.Name], f.Rule)...)
	}
	return errs
}

// checkField yields at most one built-in error plus at most one custom error.
func checkField(name string, value any, rule Rule) []FieldError {
	if isEmpty(value) {
		if rule.Required {
			return []FieldError{{Field: name, Message: name + " is required"}}
		}
		return nil
	}

	var errs []FieldError
	if err := checkType(name, value, rule); err != nil {
		errs = append(errs, *err)
	}
	if rule.Custom != nil {
		if msg := rule.Custom(value); msg != "" {
			errs = append(errs, FieldError{Field: name, Message: msg})
		}
	}
	return errs
}

func checkType(name string, value any, rule Rule) *FieldError {
	switch rule.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return &FieldError{Field: name, Message: name + " must be a string"}
		}
		trimmed := strings.TrimSpace(s)
		if rule.Min != nil && len(trimmed) < int(*rule.Min) {
			return &FieldError{Field: name, Message: fmt.Sprintf("%s must be at least %s characters", name, formatBound(*rule.Min))}
		}
		if rule.Max != nil && len(trimmed) > int(*rule.Max) {
			return &FieldError{Field: name, Message: fmt.Sprintf("%s must be at most %s characters", name, formatBound(*rule.Max))}
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(trimmed) {
			return &FieldError{Field: name, Message: name + " format is invalid"}
		}

	case TypeNumber:
		n, ok := toNumber(value)
		if !ok {
			return &FieldError{Field: name, Message: name + " must be a valid number"}
		}
		if rule.Min != nil && n < *rule.Min {
			return &FieldError{Field: name, Message: fmt.Sprintf("%s must be at least %s", name, formatBound(*rule.Min))}
		}
		if rule.Max != nil && n > *rule.Max {
			return &FieldError{Field: name, Message: fmt.Sprintf("%s must be at most %s", name, formatBound(*rule.Max))}
		}

	case TypeEmail:
		s, ok := value.(string)
		if !ok || !emailRe.MatchString(s) {
			return &FieldError{Field: name, Message: name + " must be a valid email"}
		}

	case TypeBoolean:
		// Declared for completeness; no check beyond required/empty handling.
	}

	return nil
}

// isEmpty treats absent values, nulls, and empty strings alike.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// toNumber coerces value to a finite float64. Numeric strings are accepted,
// matching how query and path parameters arrive.
func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// formatBound renders a bound without trailing zeros (1, not 1.000000).
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
