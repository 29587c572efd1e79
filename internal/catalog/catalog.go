// Package catalog loads the static filter catalog: clause templates,
// sub-filter menus per category, and option-list queries. The catalog
// is parsed once and immutable afterwards.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/griddigger/griddigger/internal/domain/filter"
)

//go:embed filters.yaml
var catalogYAML []byte

// DefaultRootField is the root collection name used when the catalog
// resource does not override it.
const DefaultRootField = "roots"

type rawSubFilter struct {
	Label string `yaml:"label"`
	Query string `yaml:"query"`
	Type  string `yaml:"type"`
}

type rawCatalog struct {
	RootField      string                    `yaml:"root_field"`
	ProfileFilters map[string]string         `yaml:"profile_filters"`
	SubFilters     map[string][]rawSubFilter `yaml:"sub_filters"`
	FilterQueries  map[string]string         `yaml:"filters_queries"`
}

// Catalog is the read-only lookup from filter names to definitions and
// from categories to sub-filter menus.
type Catalog struct {
	rootField     string
	filters       map[string]filter.Definition
	subFilters    map[filter.Category][]filter.SubFilter
	optionQueries map[string]string
}

// Load parses the embedded catalog resource. A malformed resource is a
// programming error and fails loudly; unknown names at runtime are not.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustLoad loads the embedded catalog or panics.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse filter catalog: %w", err)
	}

	c := &Catalog{
		rootField:     raw.RootField,
		filters:       make(map[string]filter.Definition, len(raw.ProfileFilters)),
		subFilters:    make(map[filter.Category][]filter.SubFilter, len(raw.SubFilters)),
		optionQueries: raw.FilterQueries,
	}
	if c.rootField == "" {
		c.rootField = DefaultRootField
	}
	if c.optionQueries == nil {
		c.optionQueries = map[string]string{}
	}

	for name, template := range raw.ProfileFilters {
		def, err := filter.NewDefinition(name, template)
		if err != nil {
			return nil, fmt.Errorf("filter catalog: %w", err)
		}
		c.filters[name] = def
	}

	for category, subs := range raw.SubFilters {
		list := make([]filter.SubFilter, 0, len(subs))
		for _, s := range subs {
			kind := filter.Kind(s.Type)
			switch kind {
			case filter.Searchable, filter.Multiple:
			default:
				return nil, fmt.Errorf("filter catalog: sub-filter %q has unknown type %q", s.Query, s.Type)
			}
			if _, ok := c.filters[s.Query]; !ok {
				return nil, fmt.Errorf("filter catalog: sub-filter %q has no clause template", s.Query)
			}
			list = append(list, filter.SubFilter{Label: s.Label, QueryKey: s.Query, Kind: kind})
		}
		c.subFilters[filter.Category(category)] = list
	}

	return c, nil
}

// RootField returns the root collection name queries select from.
func (c *Catalog) RootField() string { return c.rootField }

// Resolve looks up a filter definition by name. Absent is a valid
// outcome; callers skip the selection and log a warning.
func (c *Catalog) Resolve(name string) (filter.Definition, bool) {
	def, ok := c.filters[name]
	return def, ok
}

// SubFiltersFor returns the ordered sub-filter menu for a category.
// Unknown categories yield an empty list.
func (c *Catalog) SubFiltersFor(category filter.Category) []filter.SubFilter {
	return c.subFilters[category]
}

// OptionsQuery returns the query fragment that fetches the selectable
// options of a Multiple sub-filter.
func (c *Catalog) OptionsQuery(name string) (string, bool) {
	q, ok := c.optionQueries[name]
	return q, ok
}

// KindOf returns how the named sub-filter collects its value.
func (c *Catalog) KindOf(queryKey string) (filter.Kind, bool) {
	for _, subs := range c.subFilters {
		for _, s := range subs {
			if s.QueryKey == queryKey {
				return s.Kind, true
			}
		}
	}
	return "", false
}
