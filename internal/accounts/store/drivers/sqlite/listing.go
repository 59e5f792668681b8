package sqlite

import (
	"fmt"
	"strings"

	"github.com/gymloop/accounts/internal/accounts/listing"
	"github.com/gymloop/accounts/internal/accounts/store"
)

// buildListClauses translates the parsed list options into SQL fragments:
// a WHERE clause (possibly empty), an ORDER BY clause (possibly empty) and
// the trailing LIMIT/OFFSET, with bind args in order. Property names have
// already been allow-listed by the translator; cols maps them to columns.
func buildListClauses(opts store.ListOptions, cols map[string]string) (string, []string, error) {
	var (
		clauses []string
		args    []string
	)

	if f := opts.Filter; f != nil {
		col, ok := cols[f.Property]
		if !ok {
			return "", nil, fmt.Errorf("sqlite: unmapped filter property %q", f.Property)
		}

		switch f.Rule {
		case listing.RuleEq:
			clauses = append(clauses, "WHERE "+col+" = ?")
			args = append(args, f.Value)
		case listing.RuleNeq:
			clauses = append(clauses, "WHERE "+col+" != ?")
			args = append(args, f.Value)
		case listing.RuleGt:
			clauses = append(clauses, "WHERE "+col+" > ?")
			args = append(args, f.Value)
		case listing.RuleGte:
			clauses = append(clauses, "WHERE "+col+" >= ?")
			args = append(args, f.Value)
		case listing.RuleLt:
			clauses = append(clauses, "WHERE "+col+" < ?")
			args = append(args, f.Value)
		case listing.RuleLte:
			clauses = append(clauses, "WHERE "+col+" <= ?")
			args = append(args, f.Value)
		case listing.RuleLike:
			clauses = append(clauses, "WHERE "+col+" LIKE ?")
			args = append(args, "%"+f.Value+"%")
		case listing.RuleNlike:
			clauses = append(clauses, "WHERE "+col+" NOT LIKE ?")
			args = append(args, "%"+f.Value+"%")
		case listing.RuleIn, listing.RuleNin:
			values := f.Values()
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
			op := "IN"
			if f.Rule == listing.RuleNin {
				op = "NOT IN"
			}
			clauses = append(clauses, "WHERE "+col+" "+op+" ("+placeholders+")")
			args = append(args, values...)
		case listing.RuleIsNull:
			clauses = append(clauses, "WHERE "+col+" IS NULL")
		case listing.RuleIsNotNull:
			clauses = append(clauses, "WHERE "+col+" IS NOT NULL")
		default:
			return "", nil, fmt.Errorf("sqlite: unmapped filter rule %q", f.Rule)
		}
	}

	if s := opts.Sort; s != nil {
		col, ok := cols[s.Property]
		if !ok {
			return "", nil, fmt.Errorf("sqlite: unmapped sort property %q", s.Property)
		}
		dir := "ASC"
		if s.Direction == listing.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, "ORDER BY "+col+" "+dir)
	}

	clauses = append(clauses,
		fmt.Sprintf("LIMIT %d OFFSET %d", opts.Page.Size, opts.Page.Offset()))

	return strings.Join(clauses, " "), args, nil
}

func toAnySlice(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
