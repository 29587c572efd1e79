package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/griddigger/griddigger/internal/cache"
	"github.com/griddigger/griddigger/internal/domain"
	domprofile "github.com/griddigger/griddigger/internal/domain/profile"
	"github.com/griddigger/griddigger/internal/query"
)

// ProfileCard fetches the short card of one profile.
func (r *Repo) ProfileCard(ctx context.Context, profileID string) (*domprofile.Info, error) {
	return r.info(ctx, "profile_card", query.ProfileCard, profileID)
}

// FullProfile fetches the complete drill-down payload of one profile.
func (r *Repo) FullProfile(ctx context.Context, profileID string) (*domprofile.Info, error) {
	return r.info(ctx, "full_profile", query.FullProfile, profileID)
}

// info runs a single-profile query and returns the first profileInfos
// record, read-through cached per profile id.
func (r *Repo) info(ctx context.Context, operation, q, profileID string) (*domprofile.Info, error) {
	key := cache.Key(operation, profileID)
	if data, ok := r.cache.Get(ctx, key); ok {
		var cached domprofile.Info
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	env, err := r.exec.Execute(ctx, operation, q, map[string]any{"profileId": profileID})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", operation, profileID, err)
	}

	raw, ok := r.collection(env, operation, "profileInfos")
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", operation, profileID, domain.ErrUpstream)
	}

	var infos []domprofile.Info
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", operation, profileID, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("profile %s: %w", profileID, domain.ErrNotFound)
	}

	if encoded, err := json.Marshal(infos[0]); err == nil {
		r.cache.Set(ctx, key, encoded)
	}
	return &infos[0], nil
}

// ProductDetail fetches one product with its relationships.
func (r *Repo) ProductDetail(ctx context.Context, productID string) (*domprofile.Product, error) {
	env, err := r.exec.Execute(ctx, "product_detail", query.ProductDetail,
		map[string]any{"productId": productID})
	if err != nil {
		return nil, fmt.Errorf("product detail %s: %w", productID, err)
	}

	raw, ok := r.collection(env, "product_detail", "products")
	if !ok {
		return nil, fmt.Errorf("product detail %s: %w", productID, domain.ErrUpstream)
	}

	var products []domprofile.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode product detail %s: %w", productID, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	return &products[0], nil
}

// AssetDetail fetches one asset.
func (r *Repo) AssetDetail(ctx context.Context, assetID string) (*domprofile.Asset, error) {
	env, err := r.exec.Execute(ctx, "asset_detail", query.AssetDetail,
		map[string]any{"assetId": assetID})
	if err != nil {
		return nil, fmt.Errorf("asset detail %s: %w", assetID, err)
	}

	raw, ok := r.collection(env, "asset_detail", "assets")
	if !ok {
		return nil, fmt.Errorf("asset detail %s: %w", assetID, domain.ErrUpstream)
	}

	var assets []domprofile.Asset
	if err := json.Unmarshal(raw, &assets); err != nil {
		return nil, fmt.Errorf("decode asset detail %s: %w", assetID, err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("asset %s: %w", assetID, domain.ErrNotFound)
	}
	return &assets[0], nil
}
