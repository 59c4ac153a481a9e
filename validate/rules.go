package validate

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// first returns the first submitted value, or "".
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Required fails when the value is blank after trimming.
func Required(msg string) Rule {
	return func(values []string) string {
		if strings.TrimSpace(first(values)) == "" {
			return msg
		}
		return ""
	}
}

// Email fails unless the value looks like local@domain.tld.
// The value is matched as submitted; surrounding spaces make it invalid.
func Email(msg string) Rule {
	return func(values []string) string {
		if !emailPattern.MatchString(first(values)) {
			return msg
		}
		return ""
	}
}

// Digits fails unless the value is between min and max ASCII digits.
func Digits(min, max int, msg string) Rule {
	pattern := regexp.MustCompile(`^\d{` + strconv.Itoa(min) + `,` + strconv.Itoa(max) + `}$`)
	return func(values []string) string {
		if !pattern.MatchString(first(values)) {
			return msg
		}
		return ""
	}
}

// PositiveInt fails unless the value is an integer greater than zero.
func PositiveInt(msg string) Rule {
	return func(values []string) string {
		n, err := strconv.Atoi(strings.TrimSpace(first(values)))
		if err != nil || n <= 0 {
			return msg
		}
		return ""
	}
}

// Number fails unless the value parses as a finite number.
// Sign, decimal point and exponent are accepted.
func Number(msg string) Rule {
	return func(values []string) string {
		v := strings.TrimSpace(first(values))
		if v == "" {
			return msg
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			return msg
		}
		return ""
	}
}

// HTTPURL fails unless the value is an absolute http or https URL.
func HTTPURL(msg string) Rule {
	return func(values []string) string {
		u, err := url.Parse(strings.TrimSpace(first(values)))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return msg
		}
		return ""
	}
}

// AnyNonBlank fails unless at least one value is non-blank after trimming.
func AnyNonBlank(msg string) Rule {
	return func(values []string) string {
		if len(NonBlank(values)) == 0 {
			return msg
		}
		return ""
	}
}

// NonBlank returns the trimmed non-blank values, preserving order.
func NonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
