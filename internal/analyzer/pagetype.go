// Package analyzer walks vendor template trees offline and distills them
// into the intelligence dataset the matcher consumes: per-component style
// profiles, page sequences, and neighbor tables.
package analyzer

import "strings"

// PageType is the abstract role a whole page plays on a site.
type PageType string

const (
	PageHome         PageType = "home"
	PageAbout        PageType = "about"
	PagePricing      PageType = "pricing"
	PageBlog         PageType = "blog"
	PageDocs         PageType = "docs"
	PageContact      PageType = "contact"
	PageLegal        PageType = "legal"
	PageChangelog    PageType = "changelog"
	PageAPIReference PageType = "api-reference"
	PagePortfolio    PageType = "portfolio"
	PageAuth         PageType = "auth"
	PageDashboard    PageType = "dashboard"
	PageMedia        PageType = "media"
	PageError        PageType = "error"
	PageResources    PageType = "resources"
	PageContent      PageType = "content"
	PageUnknown      PageType = "unknown"
)

func (p PageType) String() string { return string(p) }

// routeRules is evaluated in order; the first rule with a matching
// substring wins, so more specific classes sit above generic ones
// ("/docs/api" is a docs page, not an API reference).
var routeRules = []struct {
	pageType PageType
	needles  []string
}{
	{PageError, []string{"404", "500", "error"}},
	{PageAuth, []string{"login", "signin", "sign-in", "register", "signup", "sign-up", "forgot", "reset-password"}},
	{PageDashboard, []string{"dashboard", "settings", "profile", "account"}},
	{PageMedia, []string{"episode", "podcast", "video", "watch", "listen"}},
	{PageResources, []string{"resource", "download"}},
	{PagePricing, []string{"pricing", "plans"}},
	{PageAbout, []string{"about", "team"}},
	{PageBlog, []string{"blog", "article", "post", "news", "interview"}},
	{PageDocs, []string{"doc", "guide", "help"}},
	{PageContact, []string{"contact", "support"}},
	{PageLegal, []string{"privacy", "terms", "legal", "cookie"}},
	{PageChangelog, []string{"changelog", "release", "what-new", "whats-new"}},
	{PageAPIReference, []string{"api", "reference"}},
	{PagePortfolio, []string{"project", "portfolio", "work", "case-stud"}},
	{PageContent, []string{"thank", "success"}},
}

// ClassifyRoute infers a page type from a route path. Route groups like
// "/(main)" carry no routing weight and are stripped before matching.
func ClassifyRoute(route string) PageType {
	normalized := NormalizeRoute(strings.ToLower(route))

	if normalized == "/" || normalized == "" || normalized == "page" {
		return PageHome
	}

	for _, rule := range routeRules {
		for _, needle := range rule.needles {
			if strings.Contains(normalized, needle) {
				return rule.pageType
			}
		}
	}
	return PageUnknown
}

// NormalizeRoute strips route-group segments of the form "/(...)" and
// collapses the slashes left behind. An empty result becomes "/".
func NormalizeRoute(route string) string {
	result := route
	for {
		start := strings.Index(result, "/(")
		if start < 0 {
			break
		}
		end := strings.Index(result[start:], ")")
		if end < 0 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}
	for strings.Contains(result, "//") {
		result = strings.ReplaceAll(result, "//", "/")
	}
	if result == "" {
		return "/"
	}
	return result
}
