package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/griddigger/griddigger/internal/cache"
	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/query"
)

func TestProfileCard(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"profile_card": `{"data": {"profileInfos": [{
			"name": "The Grid",
			"tagLine": "Registry",
			"profileSector": {"id": "1", "name": "Data"},
			"root": {"id": "42", "slug": "the-grid"}
		}]}}`,
	}}
	repo := newTestRepo(exec)

	info, err := repo.ProfileCard(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "The Grid" {
		t.Errorf("name = %q", info.Name)
	}
	if info.SectorName() != "Data" {
		t.Errorf("sector = %q", info.SectorName())
	}
	if exec.calls[0].variables["profileId"] != "42" {
		t.Errorf("variables = %v", exec.calls[0].variables)
	}
}

func TestProfileCard_NotFound(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"profile_card": `{"data": {"profileInfos": []}}`,
	}}
	repo := newTestRepo(exec)

	_, err := repo.ProfileCard(context.Background(), "404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileCard_UpstreamFailure(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"profile_card": `{"errors": [{"message": "boom"}]}`,
	}}
	repo := newTestRepo(exec)

	_, err := repo.ProfileCard(context.Background(), "42")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestFullProfile_UsesFullQuery(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"full_profile": `{"data": {"profileInfos": [{"name": "The Grid"}]}}`,
	}}
	repo := newTestRepo(exec)

	if _, err := repo.FullProfile(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.calls[0].query != query.FullProfile {
		t.Error("full profile must use the drill-down query")
	}
}

func TestProfileCard_CachedPerID(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"profile_card": `{"data": {"profileInfos": [{"name": "The Grid"}]}}`,
	}}
	cat := fakeCatalog{}
	compiler := query.NewCompiler(cat, nil)
	liveCache := cache.NewManager(cache.NewMemory(), time.Minute, true)
	repo := New(exec, compiler, cat, liveCache, nil)

	if _, err := repo.ProfileCard(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.ProfileCard(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("expected one upstream call, got %d", len(exec.calls))
	}

	// A different id misses the cache.
	if _, err := repo.ProfileCard(context.Background(), "43"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 2 {
		t.Errorf("expected two upstream calls, got %d", len(exec.calls))
	}
}

func TestProductDetail(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"product_detail": `{"data": {"products": [{
			"id": "7",
			"name": "Indexer",
			"productType": {"id": "15", "name": "API"}
		}]}}`,
	}}
	repo := newTestRepo(exec)

	product, err := repo.ProductDetail(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Indexer" || product.ProductType.Name != "API" {
		t.Errorf("product = %+v", product)
	}
}

func TestProductDetail_NotFound(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"product_detail": `{"data": {"products": []}}`,
	}}
	repo := newTestRepo(exec)

	_, err := repo.ProductDetail(context.Background(), "404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetDetail(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"asset_detail": `{"data": {"assets": [{
			"id": "9",
			"name": "Grid Token",
			"ticker": "GRID"
		}]}}`,
	}}
	repo := newTestRepo(exec)

	asset, err := repo.AssetDetail(context.Background(), "9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.Ticker != "GRID" {
		t.Errorf("asset = %+v", asset)
	}
}

func TestAssetDetail_UpstreamFailure(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]string{
		"asset_detail": `{"data": null}`,
	}}
	repo := newTestRepo(exec)

	_, err := repo.AssetDetail(context.Background(), "9")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
