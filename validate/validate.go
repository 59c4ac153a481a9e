package validate

import (
	"net/url"
	"sort"
	"strings"
)

// Rule checks the values submitted for one field.
// It returns "" when the values are valid, otherwise a user-facing message.
type Rule func(values []string) string

// Errors maps field names to validation messages.
// An empty Errors means the form is valid.
type Errors map[string]string

// Error implements error, listing messages in field order.
func (e Errors) Error() string {
	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names, sorted.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Ruleset is an ordered set of per-field rules.
type Ruleset struct {
	order []string
	rules map[string][]Rule
}

// New creates an empty Ruleset.
func New() *Ruleset {
	return &Ruleset{rules: make(map[string][]Rule)}
}

// Add appends rules for a field. Rules run in the order added and the first
// failing rule's message wins.
func (r *Ruleset) Add(field string, rules ...Rule) *Ruleset {
	if _, ok := r.rules[field]; !ok {
		r.order = append(r.order, field)
	}
	r.rules[field] = append(r.rules[field], rules...)
	return r
}

// Names returns the fields with rules, in the order they were added.
func (r *Ruleset) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Field validates the values of a single field. Unknown fields are valid.
func (r *Ruleset) Field(name string, values ...string) string {
	for _, rule := range r.rules[name] {
		if msg := rule(values); msg != "" {
			return msg
		}
	}
	return ""
}

// All validates every field with rules against form.
func (r *Ruleset) All(form url.Values) Errors {
	errs := Errors{}
	for _, name := range r.order {
		if msg := r.Field(name, form[name]...); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}
