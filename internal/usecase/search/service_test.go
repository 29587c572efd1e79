package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
	"github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/repository/stats"
)

type fakeSearcher struct {
	refs  []profile.Ref
	total int
}

func (f *fakeSearcher) GetProfiles(_ context.Context, _ *filter.SelectionSet) []profile.Ref {
	return f.refs
}

func (f *fakeSearcher) TotalProfileCount(_ context.Context) int { return f.total }

type fakeUsage struct {
	increments []stats.Stat
	err        error
}

func (f *fakeUsage) Increment(_ context.Context, _ int64, stat stats.Stat) error {
	f.increments = append(f.increments, stat)
	return f.err
}

func TestSearchProfiles_RecordsStat(t *testing.T) {
	usage := &fakeUsage{}
	svc := New(&fakeSearcher{refs: []profile.Ref{{ID: "1", Slug: "grid"}}}, usage, nil)

	refs := svc.SearchProfiles(context.Background(), 7, filter.NewSelectionSet())
	if len(refs) != 1 {
		t.Fatalf("refs = %v", refs)
	}
	if len(usage.increments) != 1 || usage.increments[0] != stats.StatSearch {
		t.Errorf("increments = %v", usage.increments)
	}
}

func TestSearchProfiles_AnonymousUserSkipsStat(t *testing.T) {
	usage := &fakeUsage{}
	svc := New(&fakeSearcher{}, usage, nil)

	svc.SearchProfiles(context.Background(), 0, filter.NewSelectionSet())
	if len(usage.increments) != 0 {
		t.Errorf("anonymous search must not record stats: %v", usage.increments)
	}
}

func TestSearchProfiles_NilUsage(t *testing.T) {
	svc := New(&fakeSearcher{refs: []profile.Ref{{ID: "1"}}}, nil, nil)

	// Must not panic with stats disabled.
	refs := svc.SearchProfiles(context.Background(), 7, filter.NewSelectionSet())
	if len(refs) != 1 {
		t.Fatalf("refs = %v", refs)
	}
}

func TestSearchProfiles_StatFailureDoesNotFailSearch(t *testing.T) {
	usage := &fakeUsage{err: errors.New("redis down")}
	svc := New(&fakeSearcher{refs: []profile.Ref{{ID: "1"}}}, usage, nil)

	refs := svc.SearchProfiles(context.Background(), 7, filter.NewSelectionSet())
	if len(refs) != 1 {
		t.Fatalf("stat failure leaked into search result: %v", refs)
	}
}

func TestValidateSearchTerm(t *testing.T) {
	cases := []struct {
		name string
		term string
		ok   bool
	}{
		{"valid", "grid", true},
		{"minimum length", "ab", true},
		{"trimmed to valid", "  ab  ", true},
		{"too short", "a", false},
		{"blank", "   ", false},
		{"empty", "", false},
		{"maximum length", strings.Repeat("a", 100), true},
		{"too long", strings.Repeat("a", 101), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSearchTerm(tc.term)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, domain.ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	cases := []struct {
		total     int
		displayed int
		want      string
	}{
		{0, 0, "No profiles found matching your search criteria."},
		{1, 1, "Found 1 profile."},
		{5, 5, "Found 5 profiles."},
		{20, 20, "Found 20 profiles."},
		{150, 20, "Found 150 profiles, showing first 20."},
	}
	for _, tc := range cases {
		if got := Summary(tc.total, tc.displayed); got != tc.want {
			t.Errorf("Summary(%d, %d) = %q, want %q", tc.total, tc.displayed, got, tc.want)
		}
	}
}
