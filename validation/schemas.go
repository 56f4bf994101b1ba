package validation

import (
	"math"
	"regexp"
)

var (
	digitRe      = regexp.MustCompile(`\d`)
	whitespaceRe = regexp.MustCompile(`\s`)
	nickNameRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func bound(v float64) *float64 { return &v }

// wholeInteger rejects fractional ids. It runs after the number type check,
// so a non-numeric value collects both errors.
func wholeInteger(field string) func(any) string {
	return func(value any) string {
		n, ok := toNumber(value)
		if !ok || n != math.Trunc(n) {
			return field + " must be an integer"
		}
		return ""
	}
}

// noDigits rejects person names containing numbers.
func noDigits(field string) func(any) string {
	return func(value any) string {
		if s, ok := value.(string); ok && digitRe.MatchString(s) {
			return field + " cannot contain numbers"
		}
		return ""
	}
}

// ListUsersSchema validates the user listing query parameters.
var ListUsersSchema = Schema{
	{Name: "page", Rule: Rule{Type: TypeNumber, Min: bound(1)}},
	{Name: "limit", Rule: Rule{Type: TypeNumber, Min: bound(1), Max: bound(100)}},
	{Name: "search", Rule: Rule{Type: TypeString, Max: bound(100)}},
}

// UserIDSchema validates the numeric id path parameter for fetch, update,
// and delete operations.
var UserIDSchema = Schema{
	{Name: "id", Rule: Rule{
		Required: true,
		Type:     TypeNumber,
		Min:      bound(1),
		Custom:   wholeInteger("id"),
	}},
}

// EntityIDSchema aliases UserIDSchema: post, category, and subcategory ids
// follow the same rule and report the same messages.
var EntityIDSchema = UserIDSchema

// UpdateUserSchema validates the partial-update body. Every field is
// optional here; the middleware separately requires that at least one of
// them is present.
var UpdateUserSchema = Schema{
	{Name: "first_name", Rule: Rule{
		Type:   TypeString,
		Min:    bound(2),
		Max:    bound(50),
		Custom: noDigits("first_name"),
	}},
	{Name: "last_name", Rule: Rule{
		Type:   TypeString,
		Min:    bound(2),
		Max:    bound(50),
		Custom: noDigits("last_name"),
	}},
	{Name: "email", Rule: Rule{
		Type: TypeEmail,
		Max:  bound(100),
	}},
	{Name: "nick_name", Rule: Rule{
		Type:    TypeString,
		Min:     bound(3),
		Max:     bound(30),
		Pattern: nickNameRe,
		Custom: func(value any) string {
			if s, ok := value.(string); ok && whitespaceRe.MatchString(s) {
				return "nick_name cannot contain spaces"
			}
			return ""
		},
	}},
	{Name: "password", Rule: Rule{
		Type: TypeString,
		Min:  bound(6),
		Max:  bound(100),
	}},
}

// updatableUserFields is the body-level presence set behind the
// "at least one field is required to update" check.
var updatableUserFields = []string{"first_name", "last_name", "email", "nick_name", "password"}

// ListPostsSchema validates the post listing query parameters.
var ListPostsSchema = Schema{
	{Name: "page", Rule: Rule{Type: TypeNumber, Min: bound(1)}},
	{Name: "limit", Rule: Rule{Type: TypeNumber, Min: bound(1), Max: bound(100)}},
	{Name: "search", Rule: Rule{Type: TypeString, Max: bound(100)}},
	{Name: "author_id", Rule: Rule{Type: TypeNumber, Min: bound(1), Custom: wholeInteger("author_id")}},
	{Name: "category_id", Rule: Rule{Type: TypeNumber, Min: bound(1), Custom: wholeInteger("category_id")}},
}
