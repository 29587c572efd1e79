// Package query turns filter selections into executable GraphQL query
// strings and holds the fixed query templates for the non-compiled paths.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
)

// DefaultLimit bounds every profile query.
const DefaultLimit = 10000

// resolver is the catalog surface the compiler needs.
type resolver interface {
	Resolve(name string) (filter.Definition, bool)
	RootField() string
}

// Compiler assembles a where clause from an ordered list of selections.
type Compiler struct {
	catalog resolver
	limit   int
	logger  *zap.Logger
}

// NewCompiler creates a compiler over the given catalog.
func NewCompiler(cat resolver, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{catalog: cat, limit: DefaultLimit, logger: logger}
}

// Compile resolves every selection in caller order, groups same-field
// clauses under _and, and assembles the final query. Unknown filter
// names are skipped with a warning; if nothing resolves, it returns
// domain.ErrNoFilters and the caller decides what, if anything, to run.
func (c *Compiler) Compile(selections []filter.Selection) (string, error) {
	clauses := c.resolveClauses(selections)
	if len(clauses) == 0 {
		return "", domain.ErrNoFilters
	}

	where := assembleWhere(clauses)
	return fmt.Sprintf(
		"query queryName { %s (limit: %d, where: %s) { id slug } }",
		c.catalog.RootField(), c.limit, where,
	), nil
}

// resolveClauses maps selections to compiled clauses, preserving order.
func (c *Compiler) resolveClauses(selections []filter.Selection) []filter.CompiledClause {
	clauses := make([]filter.CompiledClause, 0, len(selections))
	for _, sel := range selections {
		def, ok := c.catalog.Resolve(sel.Name)
		if !ok {
			c.logger.Warn("filter not found in catalog, skipping",
				zap.String("filter", sel.Name))
			continue
		}
		fragment := strings.ReplaceAll(def.ClauseTemplate, filter.Placeholder, FormatLiteral(sel.Value))
		clauses = append(clauses, filter.CompiledClause{
			Field:    def.TargetField,
			Fragment: fragment,
		})
	}
	return clauses
}

// assembleWhere joins clauses into one where argument. Fields appear in
// first-seen order; a repeated field gets its clause bodies combined
// under a single _and group so no condition is dropped or overwritten.
func assembleWhere(clauses []filter.CompiledClause) string {
	var fieldOrder []string
	grouped := make(map[string][]filter.CompiledClause)
	for _, cl := range clauses {
		if _, seen := grouped[cl.Field]; !seen {
			fieldOrder = append(fieldOrder, cl.Field)
		}
		grouped[cl.Field] = append(grouped[cl.Field], cl)
	}

	finalClauses := make([]string, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		group := grouped[field]
		if len(group) == 1 {
			finalClauses = append(finalClauses, group[0].Fragment)
			continue
		}
		bodies := make([]string, len(group))
		for i, cl := range group {
			bodies[i] = cl.Body()
		}
		finalClauses = append(finalClauses,
			fmt.Sprintf("%s: { _and: [%s] }", field, strings.Join(bodies, ", ")))
	}

	return "{ " + strings.Join(finalClauses, ", ") + " }"
}

// FormatLiteral renders a raw value for interpolation into a clause
// template. Integer and float literals stay unquoted; everything else
// is wrapped in double quotes WITHOUT escaping embedded quotes, a
// known limitation of the clause-template dialect. Centralized so a
// future fix touches exactly one place.
func FormatLiteral(value string) string {
	if strings.Contains(value, ".") {
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return value
		}
	} else if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return value
	}
	return `"` + value + `"`
}
