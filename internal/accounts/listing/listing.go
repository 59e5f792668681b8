// Package listing translates pagination, sort and filter request parameters
// into store query options. Parsing is pure; nothing here touches a store.
package listing

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalid marks any malformed or disallowed list parameter. Handlers map
// it to a 400 response carrying the specific message.
var ErrInvalid = errors.New("invalid list parameter")

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Page is the offset/limit window requested by the client.
type Page struct {
	Page int
	Size int
}

// Offset returns the number of records to skip.
func (p Page) Offset() int { return (p.Page - 1) * p.Size }

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a single-key ordering instruction.
type Sort struct {
	Property  string
	Direction Direction
}

type Rule string

const (
	RuleEq        Rule = "eq"
	RuleNeq       Rule = "neq"
	RuleGt        Rule = "gt"
	RuleGte       Rule = "gte"
	RuleLt        Rule = "lt"
	RuleLte       Rule = "lte"
	RuleLike      Rule = "like"
	RuleNlike     Rule = "nlike"
	RuleIn        Rule = "in"
	RuleNin       Rule = "nin"
	RuleIsNull    Rule = "isnull"
	RuleIsNotNull Rule = "isnotnull"
)

// Filter is a single predicate parsed from the property:rule:value grammar.
// The design supports one clause per request, no conjunctions.
type Filter struct {
	Property string
	Rule     Rule
	Value    string
}

// Values splits the raw value for the in/nin rules.
func (f Filter) Values() []string {
	return strings.Split(f.Value, ",")
}

var (
	filterValuePattern = regexp.MustCompile(
		`^[a-zA-Z0-9_]+:(eq|neq|gt|gte|lt|lte|like|nlike|in|nin):[a-zA-Z0-9_,]+$`,
	)
	filterNullPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+:(isnull|isnotnull)$`)
)

// ParsePage reads page/size query parameters, applying defaults and bounds.
func ParsePage(q url.Values) (Page, error) {
	p := Page{Page: DefaultPage, Size: DefaultSize}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, fmt.Errorf("%w: invalid page parameter: %s", ErrInvalid, raw)
		}
		p.Page = n
	}

	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, fmt.Errorf("%w: invalid size parameter: %s", ErrInvalid, raw)
		}
		if n > MaxSize {
			n = MaxSize
		}
		p.Size = n
	}

	return p, nil
}

// ParseSort parses a property:direction pair restricted to the endpoint's
// allow-list. An empty input means natural store order and returns nil.
func ParseSort(raw string, allowed []string) (*Sort, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: invalid sort parameter: %s", ErrInvalid, raw)
	}

	property, direction := parts[0], Direction(parts[1])
	if direction != Asc && direction != Desc {
		return nil, fmt.Errorf("%w: invalid sort direction: %s", ErrInvalid, parts[1])
	}
	if !slices.Contains(allowed, property) {
		return nil, fmt.Errorf("%w: invalid sort property: %s", ErrInvalid, property)
	}

	return &Sort{Property: property, Direction: direction}, nil
}

// ParseFilter parses the strict property:rule:value grammar (or
// property:isnull / property:isnotnull) against the endpoint's allow-list.
// An empty input means no predicate and returns nil.
func ParseFilter(raw string, allowed []string) (*Filter, error) {
	if raw == "" {
		return nil, nil
	}

	if !filterValuePattern.MatchString(raw) && !filterNullPattern.MatchString(raw) {
		return nil, fmt.Errorf("%w: invalid filter parameter: %s", ErrInvalid, raw)
	}

	parts := strings.SplitN(raw, ":", 3)
	property, rule := parts[0], Rule(parts[1])

	if !slices.Contains(allowed, property) {
		return nil, fmt.Errorf("%w: invalid filter property: %s", ErrInvalid, property)
	}
	if !knownRule(rule) {
		return nil, fmt.Errorf("%w: invalid filter rule: %s", ErrInvalid, parts[1])
	}

	f := &Filter{Property: property, Rule: rule}
	if len(parts) == 3 {
		f.Value = parts[2]
	}
	return f, nil
}

func knownRule(r Rule) bool {
	switch r {
	case RuleEq, RuleNeq, RuleGt, RuleGte, RuleLt, RuleLte,
		RuleLike, RuleNlike, RuleIn, RuleNin, RuleIsNull, RuleIsNotNull:
		return true
	}
	return false
}
