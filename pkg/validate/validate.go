// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	gt=N                number > N
//	date                parseable date (common layouts tried)
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email  string  `json:"email"  validate:"required,email"`
//	    Status string  `json:"status" validate:"required,in=pending,inprogress,done,canceled"`
//	    Amount float64 `json:"amount" validate:"required,gt=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of field name to error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// Rebuild `in=` rules split apart by the comma separator.
		rules = mergeParamLists(rules)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var dateLayouts = []string{
	time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "02-01-2006", "01/02/2006",
}

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRe.MatchString(raw) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "min":
		if !compareNumOrLen(v, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		if !compareNumOrLen(v, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gte":
		if !compareNum(raw, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lte":
		if !compareNum(raw, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gt":
		if !compareNum(raw, param, func(a, b float64) bool { return a > b }) {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "date":
		if !parseableDate(raw) {
			return fmt.Sprintf("The %s field must be a valid date.", field)
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

func compareNum(raw, param string, cmp func(a, b float64) bool) bool {
	a, err1 := strconv.ParseFloat(raw, 64)
	b, err2 := strconv.ParseFloat(param, 64)
	if err1 != nil || err2 != nil {
		return false
	}
	return cmp(a, b)
}

// compareNumOrLen compares numerically for numbers and by rune length for
// strings, matching the min/max rule semantics.
func compareNumOrLen(v reflect.Value, param string, cmp func(a, b float64) bool) bool {
	b, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}

	switch v.Kind() {
	case reflect.String:
		return cmp(float64(len([]rune(v.String()))), b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp(float64(v.Int()), b)
	case reflect.Float32, reflect.Float64:
		return cmp(v.Float(), b)
	}
	return false
}

func parseableDate(raw string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

// mergeParamLists re-joins list-valued rules ("in=a,b,c") that the top-level
// comma split broke into separate tokens.
func mergeParamLists(rules []string) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if len(out) > 0 && !strings.Contains(r, "=") && strings.HasPrefix(out[len(out)-1], "in=") {
			out[len(out)-1] += "," + r
			continue
		}
		out = append(out, r)
	}
	return out
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
