package parsing

import "strings"

// ConditionSign is the polarity of one ElementCondition term: required
// present (+tag or bare tag) or required absent (-tag) (spec.md §4.3).
type ConditionSign int

const (
	ConditionRequired ConditionSign = iota
	ConditionForbidden
)

// ElementCondition is one parsed term of an iftags-style tag-condition
// list.
type ElementCondition struct {
	Sign ConditionSign
	Tag  string
}

// ParseConditions splits a space-separated condition spec into terms.
// Each term is `+tag` (required), `-tag` (forbidden), or bare `tag`
// (required) — spec.md §4.3, "Semantics of conditions".
func ParseConditions(spec string) []ElementCondition {
	fields := strings.Fields(spec)
	conditions := make([]ElementCondition, 0, len(fields))
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "+"):
			conditions = append(conditions, ElementCondition{Sign: ConditionRequired, Tag: f[1:]})
		case strings.HasPrefix(f, "-"):
			conditions = append(conditions, ElementCondition{Sign: ConditionForbidden, Tag: f[1:]})
		default:
			conditions = append(conditions, ElementCondition{Sign: ConditionRequired, Tag: f})
		}
	}
	return conditions
}

// ConditionsMatch reports whether conditions are satisfied by tags. An
// empty condition list matches unconditionally (spec.md §4.3).
//
// Lifted out of the iftags block itself (the Rust original inlines this
// as a closure in iftags.rs) so it is unit-testable independently of the
// parser. Only iftags calls it; ifexpr evaluates its own expression
// against a `tags` variable instead.
func ConditionsMatch(conditions []ElementCondition, tags []string) bool {
	has := make(map[string]bool, len(tags))
	for _, t := range tags {
		has[t] = true
	}
	for _, c := range conditions {
		switch c.Sign {
		case ConditionRequired:
			if !has[c.Tag] {
				return false
			}
		case ConditionForbidden:
			if has[c.Tag] {
				return false
			}
		}
	}
	return true
}
