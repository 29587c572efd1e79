package query

import "fmt"

// Fixed, variable-bound query templates for the non-compiled paths.
// Search terms and ids travel as GraphQL variables, never interpolated
// into the query text.

// SearchByTerm matches profile name OR asset ticker by substring.
func SearchByTerm(rootField string) string {
	return fmt.Sprintf(`query SearchForProfileNameOrAssetTicker($searchTerm: String!) {
  %s(
    limit: %d,
    where: {_or: [{profileInfos: {name: {_contains: $searchTerm}}}, {assets: {ticker: {_contains: $searchTerm}}}]}
  ) {
    id
    slug
  }
}`, rootField, DefaultLimit)
}

// AllProfiles fetches every profile, bounded by the fixed limit.
func AllProfiles(rootField string) string {
	return fmt.Sprintf(`query getAllProfiles {
  %s(limit: %d) {
    id
    slug
  }
}`, rootField, DefaultLimit)
}

// TotalProfileCount fetches ids only, for counting.
func TotalProfileCount(rootField string) string {
	return fmt.Sprintf(`query getTotalProfileCount {
  %s(limit: %d) {
    id
  }
}`, rootField, DefaultLimit)
}

// Options wraps a catalog option fragment into a full query.
func Options(fragment string) string {
	return fmt.Sprintf("query { %s }", fragment)
}

// ProfileCard fetches the short card of one profile.
const ProfileCard = `query getProfileData($profileId: String!) {
  profileInfos(limit: 1, where: {root: {id: {_eq: $profileId}}}) {
    name
    tagLine
    descriptionShort
    logo
    profileSector { name }
    profileType { name }
    root {
      id
      slug
      assets { id name ticker }
      products { id name }
    }
    urls(order_by: {urlTypeId: Asc}) {
      url
      urlType { name }
    }
  }
}`

// FullProfile fetches the complete drill-down payload of one profile.
const FullProfile = `query getFullProfileData($profileId: String!) {
  profileInfos(limit: 1, offset: 0, where: {root: {id: {_eq: $profileId}}}) {
    name
    tagLine
    descriptionShort
    descriptionLong
    logo
    profileSector { name }
    profileType { name }
    profileStatus { id name }
    root {
      id
      slug
      assets {
        id
        name
        ticker
        icon
        description
        assetType { id name }
        assetStatus { id name }
        urls(order_by: {urlTypeId: Asc}) {
          url
          urlType { id name }
        }
      }
      socials {
        name
        socialType { name }
        urls(order_by: {urlTypeId: Asc}) { url }
      }
      products {
        id
        name
        launchDate
        isMainProduct
        description
        productType { id name }
        productStatus { id name }
        urls(order_by: {urlTypeId: Asc}) {
          url
          urlType { id name }
        }
      }
      entities {
        id
        name
        tradeName
        entityType { id name }
        country { id name code }
        urls {
          url
          urlType { id name }
        }
      }
    }
    urls(order_by: {urlTypeId: Asc}) {
      url
      urlType { name }
    }
  }
}`

// ProductDetail fetches one product with its relationships.
const ProductDetail = `query getProductDetail($productId: String!) {
  products(where: {id: {_eq: $productId}}) {
    id
    name
    description
    launchDate
    isMainProduct
    productType { id name }
    productStatus { id name }
    urls(order_by: {urlTypeId: Asc}) {
      url
      urlType { name }
    }
  }
}`

// AssetDetail fetches one asset.
const AssetDetail = `query getAssetDetail($assetId: String!) {
  assets(where: {id: {_eq: $assetId}}) {
    id
    name
    ticker
    description
    icon
    assetType { id name }
    assetStatus { id name }
    urls(order_by: {urlTypeId: Asc}) {
      url
      urlType { name }
    }
  }
}`
