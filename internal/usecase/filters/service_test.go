package filters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
)

type fakeCatalog struct {
	subs  map[filter.Category][]filter.SubFilter
	kinds map[string]filter.Kind
}

func (f *fakeCatalog) SubFiltersFor(category filter.Category) []filter.SubFilter {
	return f.subs[category]
}

func (f *fakeCatalog) KindOf(queryKey string) (filter.Kind, bool) {
	kind, ok := f.kinds[queryKey]
	return kind, ok
}

type fakeOptions struct {
	options map[string][]filter.Option
	calls   []string
}

func (f *fakeOptions) FilterOptions(_ context.Context, filterName string) []filter.Option {
	f.calls = append(f.calls, filterName)
	return f.options[filterName]
}

func newTestService() (*Service, *fakeOptions) {
	cat := &fakeCatalog{
		subs: map[filter.Category][]filter.SubFilter{
			filter.CategoryProfile: {
				{Label: "Profile Name", QueryKey: "profileNameSearch", Kind: filter.Searchable},
				{Label: "Profile Type", QueryKey: "profileType", Kind: filter.Multiple},
			},
		},
		kinds: map[string]filter.Kind{
			"profileNameSearch": filter.Searchable,
			"profileType":       filter.Multiple,
		},
	}
	repo := &fakeOptions{options: map[string][]filter.Option{
		"profileType": {{ID: "1", Name: "Company"}},
	}}
	return New(cat, repo, nil), repo
}

func TestSubFilters(t *testing.T) {
	svc, _ := newTestService()

	subs := svc.SubFilters(filter.CategoryProfile)
	if len(subs) != 2 || subs[0].QueryKey != "profileNameSearch" {
		t.Fatalf("subs = %v", subs)
	}

	if got := svc.SubFilters(filter.CategoryAsset); len(got) != 0 {
		t.Errorf("unknown category returned %v", got)
	}
}

func TestOptions(t *testing.T) {
	svc, repo := newTestService()

	options := svc.Options(context.Background(), "profileType")
	if len(options) != 1 || options[0].Name != "Company" {
		t.Fatalf("options = %v", options)
	}
	if len(repo.calls) != 1 || repo.calls[0] != "profileType" {
		t.Errorf("repo calls = %v", repo.calls)
	}
}

func TestValidateValue(t *testing.T) {
	svc, _ := newTestService()

	t.Run("searchable accepts text", func(t *testing.T) {
		if err := svc.ValidateValue("profileNameSearch", "grid"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("searchable rejects blank", func(t *testing.T) {
		err := svc.ValidateValue("profileNameSearch", "   ")
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("searchable rejects oversized term", func(t *testing.T) {
		err := svc.ValidateValue("profileNameSearch", strings.Repeat("a", 101))
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("searchable accepts term at the bound", func(t *testing.T) {
		if err := svc.ValidateValue("profileNameSearch", strings.Repeat("a", 100)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("multiple accepts option id", func(t *testing.T) {
		if err := svc.ValidateValue("profileType", "3"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("multiple rejects empty id", func(t *testing.T) {
		err := svc.ValidateValue("profileType", "")
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		err := svc.ValidateValue("noSuchFilter", "x")
		if !errors.Is(err, domain.ErrUnknownFilter) {
			t.Errorf("expected ErrUnknownFilter, got %v", err)
		}
	})
}
