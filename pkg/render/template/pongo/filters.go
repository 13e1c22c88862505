package pongo

import (
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce sync.Once
	linkPolicy  = newLinkPolicy()
)

// newLinkPolicy allows anchors with standard URLs and marks them as external.
func newLinkPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("initials") {
			_ = pongo2.RegisterFilter("initials", filterInitials)
		}
		if !pongo2.FilterExists("weblink") {
			_ = pongo2.RegisterFilter("weblink", filterWebLink)
		}
	})
}

func filterInitials(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	for _, word := range strings.Fields(in.String()) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return pongo2.AsValue(strings.ToUpper(b.String())), nil
}

// filterWebLink turns a bare host such as "hildegard.org" into an external
// anchor. Values that do not survive the link policy render as plain text.
func filterWebLink(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	site := strings.TrimSpace(in.String())
	if site == "" {
		return pongo2.AsValue(""), nil
	}

	href := site
	if u, err := url.Parse(site); err != nil || u.Scheme == "" {
		href = "https://" + site
	}
	anchor := `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(site) + `</a>`
	return pongo2.AsSafeValue(linkPolicy.Sanitize(anchor)), nil
}
