package query

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/domain/filter"
)

// fakeCatalog resolves a fixed set of filter definitions.
type fakeCatalog struct {
	defs map[string]string // name -> clause template
}

func (f *fakeCatalog) Resolve(name string) (filter.Definition, bool) {
	template, ok := f.defs[name]
	if !ok {
		return filter.Definition{}, false
	}
	def, err := filter.NewDefinition(name, template)
	if err != nil {
		return filter.Definition{}, false
	}
	return def, true
}

func (f *fakeCatalog) RootField() string { return "roots" }

func newTestCatalog() *fakeCatalog {
	return &fakeCatalog{defs: map[string]string{
		"profileNameSearch": "profileInfos: {name: {_contains: value}}",
		"profileType":       "profileInfos: {profileTypeId: {_eq: value}}",
		"profileSector":     "profileInfos: {profileSector: {name: {_eq: value}}}",
		"assetTicker":       "assets: {ticker: {_eq: value}}",
		"productType":       "products: {productTypeId: {_eq: value}}",
	}}
}

func TestCompile_SingleFilter(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("assetTicker", "ETH"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `query queryName { roots (limit: 10000, where: { assets: {ticker: {_eq: "ETH"}} }) { id slug } }`
	if got != want {
		t.Errorf("query mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestCompile_DistinctFieldsKeepOrder(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("assetTicker", "BTC"),
		filter.NewSelection("profileNameSearch", "grid"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `query queryName { roots (limit: 10000, where: ` +
		`{ assets: {ticker: {_eq: "BTC"}}, profileInfos: {name: {_contains: "grid"}} }) { id slug } }`
	if got != want {
		t.Errorf("query mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestCompile_SameFieldMergesUnderAnd(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("profileType", "3"),
		filter.NewSelection("profileSector", "DeFi"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both selections target profileInfos; neither condition may be dropped.
	want := `query queryName { roots (limit: 10000, where: ` +
		`{ profileInfos: { _and: [{profileTypeId: {_eq: 3}}, {profileSector: {name: {_eq: "DeFi"}}}] } }) { id slug } }`
	if got != want {
		t.Errorf("query mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestCompile_MergedAndDistinctFields(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("profileType", "3"),
		filter.NewSelection("productType", "15"),
		filter.NewSelection("profileSector", "DeFi"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// profileInfos merges, products stays standalone, first-seen order holds.
	if !strings.Contains(got, `profileInfos: { _and: [{profileTypeId: {_eq: 3}}, {profileSector: {name: {_eq: "DeFi"}}}] }`) {
		t.Errorf("missing merged profileInfos group in: %s", got)
	}
	if !strings.Contains(got, `products: {productTypeId: {_eq: 15}}`) {
		t.Errorf("missing products clause in: %s", got)
	}
	if strings.Index(got, "profileInfos") > strings.Index(got, "products") {
		t.Errorf("field order not first-seen: %s", got)
	}
}

func TestCompile_NoSelections(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	_, err := c.Compile(nil)
	if !errors.Is(err, domain.ErrNoFilters) {
		t.Fatalf("expected ErrNoFilters, got %v", err)
	}
}

func TestCompile_UnknownFilterSkippedWithWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := NewCompiler(newTestCatalog(), zap.New(core))

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("noSuchFilter", "x"),
		filter.NewSelection("assetTicker", "ETH"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `assets: {ticker: {_eq: "ETH"}}`) {
		t.Errorf("known filter missing from query: %s", got)
	}
	if strings.Contains(got, "noSuchFilter") {
		t.Errorf("unknown filter leaked into query: %s", got)
	}
	if logs.Len() != 1 {
		t.Errorf("expected exactly one warning, got %d", logs.Len())
	}
}

func TestCompile_OnlyUnknownFilters(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)

	_, err := c.Compile([]filter.Selection{
		filter.NewSelection("noSuchFilter", "x"),
	})
	if !errors.Is(err, domain.ErrNoFilters) {
		t.Fatalf("expected ErrNoFilters, got %v", err)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	c := NewCompiler(newTestCatalog(), nil)
	selections := []filter.Selection{
		filter.NewSelection("profileType", "3"),
		filter.NewSelection("assetTicker", "BTC"),
		filter.NewSelection("profileSector", "DeFi"),
	}

	first, err := c.Compile(selections)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Compile(selections)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("compile not deterministic:\nfirst: %s\nagain: %s", first, again)
		}
	}
}

func TestCompile_MultiPlaceholderTemplate(t *testing.T) {
	cat := &fakeCatalog{defs: map[string]string{
		"deepSearch": "profileInfos: {_or: [{name: {_contains: value}}, {descriptionShort: {_contains: value}}]}",
	}}
	c := NewCompiler(cat, nil)

	got, err := c.Compile([]filter.Selection{
		filter.NewSelection("deepSearch", "dex"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, `"dex"`) != 2 {
		t.Errorf("expected the value in every placeholder position: %s", got)
	}
	if strings.Contains(got, "value") {
		t.Errorf("placeholder token left unreplaced: %s", got)
	}
}

func TestFormatLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15", "15"},
		{"-3", "-3"},
		{"1.5", "1.5"},
		{"-0.25", "-0.25"},
		{"DeFi", `"DeFi"`},
		{"1.2.3", `"1.2.3"`},
		{"12abc", `"12abc"`},
		{"", `""`},
		{"Layer 1", `"Layer 1"`},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := FormatLiteral(tc.in)
			if got != tc.want {
				t.Errorf("FormatLiteral(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}
