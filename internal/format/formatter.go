// Package format renders profile payloads as Telegram-flavored
// Markdown cards with their accompanying link lists.
package format

import (
	"fmt"
	"strings"

	"github.com/griddigger/griddigger/internal/domain/profile"
)

// discoveryBaseURL is where a profile's public page lives.
const discoveryBaseURL = "https://discovery.thegrid.id/profiles/"

// Link is a labeled URL attached to a rendered profile.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Rendered is the output of a formatter: message text plus links.
type Rendered struct {
	Text     string `json:"text"`
	Links    []Link `json:"links,omitempty"`
	MediaURL string `json:"media_url,omitempty"`
}

// Formatter renders one profile payload.
type Formatter interface {
	Format(info *profile.Info) Rendered
}

// EscapeMarkdown escapes the characters Telegram's Markdown parser
// chokes on ("can't find end of entity").
func EscapeMarkdown(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"_", `\_`,
		"*", `\*`,
		"[", `\[`,
		"]", `\]`,
		"`", "\\`",
		"(", `\(`,
		")", `\)`,
	)
	return r.Replace(text)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Card renders the search-result card: name, sector, short description,
// and counts of drill-down targets.
type Card struct{}

// Format implements Formatter.
func (Card) Format(info *profile.Info) Rendered {
	parts := []string{
		fmt.Sprintf("*Name:* %s", EscapeMarkdown(info.Name)),
		fmt.Sprintf("*Sector:* %s", EscapeMarkdown(orDash(info.SectorName()))),
		fmt.Sprintf("*Description:* %s", EscapeMarkdown(orDash(info.DescriptionShort))),
	}

	var links []Link
	if root := info.Root; root != nil {
		if n := len(namedProducts(root.Products)); n > 0 {
			parts = append(parts, fmt.Sprintf("*Products:* %d available", n))
		}
		if n := len(namedAssets(root.Assets)); n > 0 {
			parts = append(parts, fmt.Sprintf("*Assets:* %d available", n))
		}
	}
	if t := info.TypeName(); t != "" {
		parts = append(parts, fmt.Sprintf("*Type:* %s", t))
	}

	links = append(links, urlLinks(info.URLs, 3)...)
	if info.Root != nil && info.Root.Slug != "" {
		links = append(links, Link{
			Label: fmt.Sprintf("Open %s on Discovery", info.Name),
			URL:   discoveryBaseURL + info.Root.Slug,
		})
	}

	return Rendered{
		Text:     strings.Join(parts, "\n"),
		Links:    links,
		MediaURL: info.Logo,
	}
}

// Expanded renders the full drill-down view.
type Expanded struct{}

// Format implements Formatter.
func (Expanded) Format(info *profile.Info) Rendered {
	root := info.Root
	id, slug := "", ""
	if root != nil {
		id, slug = root.ID, root.Slug
	}

	status := "-"
	if info.ProfileStatus != nil {
		status = info.ProfileStatus.Name
	}

	parts := []string{
		fmt.Sprintf("*ID:* %s", id),
		fmt.Sprintf("*Name:* %s", EscapeMarkdown(info.Name)),
		fmt.Sprintf("*Sector:* %s", orDash(info.SectorName())),
		fmt.Sprintf("*Type:* %s", orDash(info.TypeName())),
		fmt.Sprintf("*Status:* %s", status),
		fmt.Sprintf("*Slug:* %s", orDash(slug)),
		fmt.Sprintf("*Long Description:* %s", EscapeMarkdown(orDash(info.DescriptionLong))),
		fmt.Sprintf("*Tag Line:* %s", EscapeMarkdown(orDash(info.TagLine))),
	}

	productNames, assetNames := "-", "-"
	if root != nil {
		if names := namedProducts(root.Products); len(names) > 0 {
			productNames = strings.Join(names, ", ")
		}
		if names := namedAssets(root.Assets); len(names) > 0 {
			assetNames = strings.Join(names, ", ")
		}
	}
	parts = append(parts,
		fmt.Sprintf("*Main Product Type:* %s", productNames),
		fmt.Sprintf("*Issued Assets:* %s", assetNames),
	)

	links := urlLinks(info.URLs, 0)
	if slug != "" {
		links = append(links, Link{
			Label: fmt.Sprintf("Open %s on Discovery", info.Name),
			URL:   discoveryBaseURL + slug,
		})
	}

	return Rendered{
		Text:     strings.Join(parts, "\n"),
		Links:    links,
		MediaURL: info.Logo,
	}
}

// Compact renders the one-line quick view.
type Compact struct{}

// Format implements Formatter.
func (Compact) Format(info *profile.Info) Rendered {
	sector := info.SectorName()
	if sector == "" {
		sector = "Unknown"
	}
	return Rendered{
		Text: fmt.Sprintf("*%s* (%s)", EscapeMarkdown(info.Name), sector),
	}
}

// namedProducts filters out placeholder product entries.
func namedProducts(products []profile.Product) []string {
	var names []string
	for _, p := range products {
		if p.Name != "" && p.Name != "Unknown" {
			names = append(names, p.Name)
		}
	}
	return names
}

// namedAssets filters out placeholder asset entries.
func namedAssets(assets []profile.Asset) []string {
	var names []string
	for _, a := range assets {
		if a.Name != "" && a.Name != "Unknown" {
			names = append(names, a.Name)
		}
	}
	return names
}

// urlLinks maps profile URLs to labeled links. limit 0 means all.
func urlLinks(urls []profile.URL, limit int) []Link {
	var links []Link
	for _, u := range urls {
		if u.URL == "" {
			continue
		}
		if limit > 0 && len(links) >= limit {
			break
		}
		links = append(links, Link{Label: linkLabel(u.TypeName()), URL: u.URL})
	}
	return links
}

// linkLabel maps a url type name to a human label.
func linkLabel(urlType string) string {
	t := strings.ToLower(urlType)
	switch {
	case strings.Contains(t, "website"), strings.Contains(t, "main"):
		return "Website"
	case strings.Contains(t, "documentation"), strings.Contains(t, "docs"):
		return "Docs"
	case strings.Contains(t, "whitepaper"):
		return "Whitepaper"
	case strings.Contains(t, "blog"):
		return "Blog"
	case strings.Contains(t, "social"), strings.Contains(t, "twitter"), strings.Contains(t, "telegram"):
		return "Social"
	case t == "":
		return "Link"
	default:
		return strings.Title(t) //nolint:staticcheck // ascii url type names only
	}
}
