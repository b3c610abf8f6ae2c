package utils

import (
	"strconv"
	"strings"
)

// ParseBool parses a RouterOS boolean. The API answers "true"/"false";
// older releases and exports use "yes"/"no". ok is false for anything else.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}

// BoolPtr parses s with ParseBool and returns nil when s is not a boolean.
func BoolPtr(s string) *bool {
	v, ok := ParseBool(s)
	if !ok {
		return nil
	}
	return &v
}

// StringPtr returns nil for the empty string, a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr parses s as an integer and returns nil when it is not one.
func IntPtr(s string) *int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &i
}

// Deref returns *p, or fallback when p is nil or empty.
func Deref(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
