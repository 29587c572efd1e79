package format

import "fmt"

// Registry maps format names to formatters. Custom formatters can be
// registered; the three built-in formats are always present.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a registry with the built-in formats.
func NewRegistry() *Registry {
	return &Registry{formatters: map[string]Formatter{
		"card":     Card{},
		"expanded": Expanded{},
		"compact":  Compact{},
	}}
}

// Register adds or replaces a named formatter.
func (r *Registry) Register(name string, f Formatter) {
	r.formatters[name] = f
}

// Get returns the formatter for a format name.
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return f, nil
}

// Available lists the registered format names.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}
