// Package filter defines the filter vocabulary: catalog definitions,
// sub-filter descriptors, and the runtime selections users build up.
package filter

import (
	"fmt"
	"strings"
)

// Placeholder is the literal token inside a clause template that gets
// replaced with the formatted filter value.
const Placeholder = "value"

// Definition is one catalog entry: a filter name bound to a GraphQL
// where-clause template. TargetField is the template text before its
// first colon and decides which clauses merge into one group.
type Definition struct {
	Name           string
	ClauseTemplate string
	TargetField    string
}

// NewDefinition validates a catalog entry and derives its target field.
func NewDefinition(name, template string) (Definition, error) {
	if name == "" {
		return Definition{}, fmt.Errorf("filter name is required")
	}
	if !strings.Contains(template, Placeholder) {
		return Definition{}, fmt.Errorf("filter %q: template has no %q placeholder", name, Placeholder)
	}
	field, _, ok := strings.Cut(template, ":")
	if !ok {
		return Definition{}, fmt.Errorf("filter %q: template has no field prefix", name)
	}
	return Definition{
		Name:           name,
		ClauseTemplate: template,
		TargetField:    strings.TrimSpace(field),
	}, nil
}

// Kind says how a sub-filter collects its value.
type Kind string

const (
	// Searchable sub-filters collect free-text input.
	Searchable Kind = "searchable"
	// Multiple sub-filters present a finite option list fetched from the backend.
	Multiple Kind = "multiple"
)

// SubFilter describes one concrete criterion within a filter category.
type SubFilter struct {
	Label    string
	QueryKey string
	Kind     Kind
}

// Category groups sub-filters by the part of a profile they narrow.
type Category string

const (
	CategoryProfile Category = "profile"
	CategoryProduct Category = "product"
	CategoryAsset   Category = "asset"
	CategoryEntity  Category = "entity"
)

// Option is one selectable value of a Multiple sub-filter.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Selection pairs a filter name with the raw value a user supplied.
// It lives for one compile-and-execute cycle and is never persisted.
type Selection struct {
	Name  string
	Value string
}

// NewSelection creates a selection from a string value.
func NewSelection(name, value string) Selection {
	return Selection{Name: name, Value: value}
}

// NewIntSelection creates a selection from a numeric id.
func NewIntSelection(name string, value int) Selection {
	return Selection{Name: name, Value: fmt.Sprintf("%d", value)}
}

// CompiledClause is one selection resolved against its definition.
type CompiledClause struct {
	Field    string
	Fragment string
}

// Body returns the fragment text after the field's first colon,
// the part that joins into an _and group when fields repeat.
func (c CompiledClause) Body() string {
	_, body, _ := strings.Cut(c.Fragment, ":")
	return strings.TrimSpace(body)
}
