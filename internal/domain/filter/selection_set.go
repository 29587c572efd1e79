package filter

import "strings"

// Reserved filter names for the primary name search and its deep variant.
const (
	NameSearchFilter = "profileNameSearch"
	DeepSearchFilter = "profileDeepSearch"
)

// SelectionSet is an ordered list of selections plus the quick/deep
// search toggle.
type SelectionSet struct {
	selections []Selection
	deepSearch bool
}

// NewSelectionSet creates a selection set preserving the given order.
func NewSelectionSet(selections ...Selection) *SelectionSet {
	return &SelectionSet{selections: selections}
}

// Add appends a selection, keeping caller order.
func (s *SelectionSet) Add(sel Selection) *SelectionSet {
	s.selections = append(s.selections, sel)
	return s
}

// SetDeepSearch flips the quick/deep search toggle.
func (s *SelectionSet) SetDeepSearch(deep bool) *SelectionSet {
	s.deepSearch = deep
	return s
}

// DeepSearch reports the toggle state.
func (s *SelectionSet) DeepSearch() bool { return s.deepSearch }

// Len returns the number of selections.
func (s *SelectionSet) Len() int { return len(s.selections) }

// Resolved returns the selections with the quick/deep toggle applied:
// a name search becomes a deep search when the toggle is on, and a deep
// search collapses back to a name search when it is off. Order is kept.
func (s *SelectionSet) Resolved() []Selection {
	out := make([]Selection, len(s.selections))
	for i, sel := range s.selections {
		switch {
		case sel.Name == NameSearchFilter && s.deepSearch:
			sel.Name = DeepSearchFilter
		case sel.Name == DeepSearchFilter && !s.deepSearch:
			sel.Name = NameSearchFilter
		}
		out[i] = sel
	}
	return out
}

// SingleNameSearch reports whether the resolved set is exactly one
// selection on the primary name-search filter, returning its term.
func (s *SelectionSet) SingleNameSearch() (term string, ok bool) {
	resolved := s.Resolved()
	if len(resolved) != 1 || resolved[0].Name != NameSearchFilter {
		return "", false
	}
	return resolved[0].Value, true
}

// IsBlank reports whether a search term is empty or whitespace only.
func IsBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}
