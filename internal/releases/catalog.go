// Package releases lists published versions by scraping the product's
// release index pages.
package releases

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/PuerkitoBio/goquery"

	"github.com/drjonesii/tfenv-go/internal/platform"
	"github.com/drjonesii/tfenv-go/internal/version"
)

const (
	// DefaultTerraformIndex is the canonical terraform release listing.
	DefaultTerraformIndex = "https://releases.hashicorp.com/terraform/"
	// DefaultOpenTofuIndex is the opentofu release listing on GitHub.
	DefaultOpenTofuIndex = "https://github.com/opentofu/opentofu/releases"

	openTofuTagMarker = "/opentofu/opentofu/releases/tag/v"

	userAgent      = "tfenv-go"
	requestTimeout = 5 * time.Minute
)

// Release is one published version of a product.
type Release struct {
	Version *semver.Version
	Product platform.Product
}

// Client fetches and parses release index pages.
type Client struct {
	httpClient *http.Client
	remote     string
}

// NewClient returns a catalog client. A non-empty remote overrides the
// per-product default index URL.
func NewClient(remote string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		remote:     remote,
	}
}

// IndexURL returns the listing page consulted for a product.
func (c *Client) IndexURL(product platform.Product) string {
	if c.remote != "" {
		return c.remote
	}
	if product == platform.ProductOpenTofu {
		return DefaultOpenTofuIndex
	}
	return DefaultTerraformIndex
}

// List returns the published releases for a product, highest version first.
// Anchor hrefs that do not carry a parseable version are skipped silently;
// index pages routinely link to changelogs and directories.
func (c *Client) List(ctx context.Context, product platform.Product) ([]Release, error) {
	indexURL := c.IndexURL(product)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build release index request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release index %s: %w", indexURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release index %s: unexpected status %s", indexURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse release index %s: %w", indexURL, err)
	}

	var releases []Release
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		name := versionFromHref(href, product)
		if name == "" {
			return
		}
		v, err := version.Parse(name)
		if err != nil {
			return
		}
		releases = append(releases, Release{Version: v, Product: product})
	})

	sortReleases(releases)
	return releases, nil
}

// Versions adapts List to the plain name slice the resolver consumes.
func (c *Client) Versions(ctx context.Context, product platform.Product) ([]string, error) {
	releases, err := c.List(ctx, product)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(releases))
	for i, r := range releases {
		names[i] = r.Version.Original()
	}
	return names, nil
}

// versionFromHref extracts the version component of a release link, or ""
// when the link is not a release link. Terraform indexes link to
// /terraform/<version>/ subdirectories; opentofu release pages link to
// /opentofu/opentofu/releases/tag/v<version>.
func versionFromHref(href string, product platform.Product) string {
	if i := strings.Index(href, openTofuTagMarker); i >= 0 {
		return strings.TrimSuffix(href[i+len(openTofuTagMarker):], "/")
	}
	prefix := "/" + product.String() + "/"
	if !strings.HasPrefix(href, prefix) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(href, prefix), "/")
}

func sortReleases(releases []Release) {
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Version.GreaterThan(releases[j].Version)
	})
}
