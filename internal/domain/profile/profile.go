// Package profile defines the typed result records decoded from the
// GraphQL response envelope.
package profile

// Ref is a search hit: the minimal record every query selects.
type Ref struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// NamedRef is a {id, name} pair, the shape of lookup tables like
// profileTypes or assetStatuses.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// URL is a link with its type (website, docs, ...).
type URL struct {
	URL     string    `json:"url"`
	URLType *NamedRef `json:"urlType"`
}

// TypeName returns the url type name, empty when untyped.
func (u URL) TypeName() string {
	if u.URLType == nil {
		return ""
	}
	return u.URLType.Name
}

// Asset is a token or coin attached to a profile.
type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ticker      string    `json:"ticker"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	AssetType   *NamedRef `json:"assetType"`
	AssetStatus *NamedRef `json:"assetStatus"`
	URLs        []URL     `json:"urls"`
}

// Product is a product or service attached to a profile.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	LaunchDate    string    `json:"launchDate"`
	IsMainProduct bool      `json:"isMainProduct"`
	ProductType   *NamedRef `json:"productType"`
	ProductStatus *NamedRef `json:"productStatus"`
	URLs          []URL     `json:"urls"`
}

// Entity is a legal entity behind a profile.
type Entity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TradeName  string    `json:"tradeName"`
	EntityType *NamedRef `json:"entityType"`
	Country    *Country  `json:"country"`
	URLs       []URL     `json:"urls"`
}

// Country is a country reference with its ISO code.
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Social is a social media presence of a profile.
type Social struct {
	Name       string    `json:"name"`
	SocialType *NamedRef `json:"socialType"`
	URLs       []URL     `json:"urls"`
}

// Root is the full drill-down payload under a profile: the root record
// plus everything hanging off it.
type Root struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Assets   []Asset   `json:"assets"`
	Products []Product `json:"products"`
	Entities []Entity  `json:"entities"`
	Socials  []Social  `json:"socials"`
}

// Info is one profileInfos record: the descriptive card of a profile.
type Info struct {
	Name             string    `json:"name"`
	TagLine          string    `json:"tagLine"`
	DescriptionShort string    `json:"descriptionShort"`
	DescriptionLong  string    `json:"descriptionLong"`
	Logo             string    `json:"logo"`
	ProfileSector    *NamedRef `json:"profileSector"`
	ProfileType      *NamedRef `json:"profileType"`
	ProfileStatus    *NamedRef `json:"profileStatus"`
	URLs             []URL     `json:"urls"`
	Root             *Root     `json:"root"`
}

// SectorName returns the sector name, empty when unset.
func (i Info) SectorName() string {
	if i.ProfileSector == nil {
		return ""
	}
	return i.ProfileSector.Name
}

// TypeName returns the profile type name, empty when unset.
func (i Info) TypeName() string {
	if i.ProfileType == nil {
		return ""
	}
	return i.ProfileType.Name
}

// MainURL returns the first url, the one the ordering clause puts on top.
func (i Info) MainURL() string {
	if len(i.URLs) == 0 {
		return ""
	}
	return i.URLs[0].URL
}
