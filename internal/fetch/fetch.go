// Package fetch pulls component code from the upstream TailwindPlus site
// on demand. The site is an Inertia.js app, so requests carry the Inertia
// headers to get JSON back instead of HTML.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"draftkit/internal/apperr"
	"draftkit/internal/cache"
	"draftkit/internal/catalog"
	"draftkit/internal/logging"
)

const (
	defaultBaseURL = "https://tailwindcss.com/plus"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36"

	sessionCookieName = "laravel_session"
)

// inertiaResponse is the slice of the Inertia page payload we care about.
type inertiaResponse struct {
	Props struct {
		Subcategory *struct {
			Components []componentData `json:"components"`
		} `json:"subcategory"`
	} `json:"props"`
}

type componentData struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Snippet struct {
		Code     string `json:"code"`
		Language string `json:"language"`
		Version  string `json:"version"`
		Mode     string `json:"mode"`
	} `json:"snippet"`
}

// Client fetches components with an authenticated session cookie.
type Client struct {
	httpClient     *http.Client
	cache          *cache.Cache
	sessionCookie  string
	baseURL        string
	xsrfToken      string
	inertiaVersion string
}

func New(sessionCookie string, componentCache *cache.Cache) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		cache:         componentCache,
		sessionCookie: sessionCookie,
		baseURL:       defaultBaseURL,
	}
}

// Init primes the client with an XSRF token and the current Inertia asset
// version. Call once before fetching.
func (c *Client) Init(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL, nil)
	if err != nil {
		return apperr.Transientf("reaching upstream: %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	for _, setCookie := range resp.Header.Values("Set-Cookie") {
		if token, ok := xsrfFromCookie(setCookie); ok {
			c.xsrfToken = token
			break
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return apperr.Transientf("reading upstream response: %v", err)
	}
	if version, ok := inertiaVersionFromHTML(string(body)); ok {
		c.inertiaVersion = version
	}

	logging.Debug("fetch client initialized",
		"has_xsrf", c.xsrfToken != "",
		"inertia_version", c.inertiaVersion)
	return nil
}

// FetchComponent returns the code for a component variant, serving from
// the cache when possible and caching what it fetches.
func (c *Client) FetchComponent(ctx context.Context, uuid, category, subcategory, subSubcategory string, framework catalog.Framework, mode catalog.Mode) (string, error) {
	if code, ok := c.cache.Get(uuid, framework, mode); ok {
		return code, nil
	}

	components, err := c.fetchSubcategory(ctx, SubcategoryURL(c.baseURL, category, subcategory, subSubcategory))
	if err != nil {
		return "", err
	}

	comp, ok := components[uuid]
	if !ok {
		return "", apperr.NotFoundf("component not found upstream: %s", uuid)
	}
	if comp.Snippet.Mode != mode.String() {
		return "", apperr.NotFoundf("component %s has mode %s, wanted %s", uuid, comp.Snippet.Mode, mode)
	}

	if _, err := c.cache.Store(uuid, framework, mode, comp.Snippet.Code); err != nil {
		logging.Warn("caching fetched component failed", "uuid", uuid, "error", err)
	}
	return comp.Snippet.Code, nil
}

// fetchSubcategory loads one subcategory page and indexes its components
// by UUID.
func (c *Client) fetchSubcategory(ctx context.Context, pageURL string) (map[string]componentData, error) {
	resp, err := c.get(ctx, pageURL, c.inertiaHeaders())
	if err != nil {
		return nil, apperr.Transientf("fetching subcategory page: %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var data inertiaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperr.Transientf("parsing upstream response: %v", err)
	}
	if data.Props.Subcategory == nil {
		return nil, apperr.Transientf("no subcategory data in upstream response")
	}

	components := make(map[string]componentData, len(data.Props.Subcategory.Components))
	for _, comp := range data.Props.Subcategory.Components {
		components[comp.UUID] = comp
	}
	return components, nil
}

func (c *Client) get(ctx context.Context, rawURL string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("cookie", sessionCookieName+"="+c.sessionCookie)
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return c.httpClient.Do(req)
}

func (c *Client) inertiaHeaders() http.Header {
	headers := http.Header{}
	headers.Set("accept", "text/html, application/xhtml+xml, application/json")
	headers.Set("x-inertia", "true")
	headers.Set("x-requested-with", "XMLHttpRequest")
	headers.Set("sec-fetch-dest", "empty")
	headers.Set("sec-fetch-mode", "cors")
	headers.Set("sec-fetch-site", "same-origin")
	if c.inertiaVersion != "" {
		headers.Set("x-inertia-version", c.inertiaVersion)
	}
	if c.xsrfToken != "" {
		headers.Set("x-xsrf-token", c.xsrfToken)
	}
	return headers
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return apperr.Statef("session rejected by upstream; run draftkit auth to refresh")
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFoundf("upstream page not found: %s", resp.Request.URL.Path)
	case resp.StatusCode >= 400:
		return apperr.Transientf("upstream returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// xsrfFromCookie extracts and URL-decodes the XSRF token from a
// Set-Cookie header value.
func xsrfFromCookie(setCookie string) (string, bool) {
	const prefix = "XSRF-TOKEN="
	start := strings.Index(setCookie, prefix)
	if start < 0 {
		return "", false
	}
	token := setCookie[start+len(prefix):]
	if end := strings.IndexByte(token, ';'); end >= 0 {
		token = token[:end]
	}
	decoded, err := url.QueryUnescape(token)
	if err != nil {
		return "", false
	}
	return decoded, true
}

// inertiaVersionFromHTML pulls the asset version out of the data-page
// attribute of the app root element.
func inertiaVersionFromHTML(html string) (string, bool) {
	const marker = `data-page="`
	start := strings.Index(html, marker)
	if start < 0 {
		return "", false
	}
	rest := html[start+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	unescaped := strings.ReplaceAll(rest[:end], "&quot;", `"`)

	var page struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(unescaped), &page); err != nil || page.Version == "" {
		return "", false
	}
	return page.Version, true
}

// Slugify converts a category path segment to its URL form.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.ReplaceAll(s, " ", "-")) {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SubcategoryURL builds the upstream page URL for a category path.
func SubcategoryURL(baseURL, category, subcategory, subSubcategory string) string {
	return fmt.Sprintf("%s/ui-blocks/%s/%s/%s",
		baseURL, Slugify(category), Slugify(subcategory), Slugify(subSubcategory))
}
