package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/pkg/logger_i"
	"golang.org/x/net/html"
)

// Crawler discovers same-origin links from the one allowed root page and
// fetches their content. Discovery is a single hop - it never recurses into
// the pages it finds.
type Crawler struct {
	client      *http.Client
	allowedRoot *url.URL
	logger      *logger_i.Logger
}

func New(allowedRoot string) (*Crawler, error) {
	root, err := url.Parse(allowedRoot)
	if err != nil {
		return nil, fmt.Errorf("parsing allowed root url: %w", err)
	}
	return &Crawler{
		client:      newHTTPClient(),
		allowedRoot: root,
		logger:      logger_i.NewLogger("Crawler"),
	}, nil
}

// DiscoverLinks fetches the root page and returns the deduplicated set of
// absolute same-domain URLs it links to. A root other than the configured one
// is rejected, and a failure to fetch the root page is fatal to the call.
func (c *Crawler) DiscoverLinks(ctx context.Context, rootURL string) ([]string, error) {
	if rootURL != c.allowedRoot.String() {
		c.logger.Warn("Rejected out of scope root", "url", rootURL)
		return nil, &chatModel.InvalidScopeError{URL: rootURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rootURL, nil)
	if err != nil {
		return nil, &chatModel.FetchError{URL: rootURL, Err: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &chatModel.FetchError{URL: rootURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &chatModel.FetchError{URL: rootURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, &chatModel.FetchError{URL: rootURL, Err: err}
	}

	seen := make(map[string]struct{})
	c.collectAnchors(doc, seen)

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)

	c.logger.Info("Discovered links", "root", rootURL, "count", len(links))
	return links, nil
}

func (c *Crawler) collectAnchors(n *html.Node, seen map[string]struct{}) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if resolved, ok := c.resolveSameDomain(attr.Val); ok {
				seen[resolved] = struct{}{}
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.collectAnchors(child, seen)
	}
}

// resolveSameDomain turns an anchor href into an absolute URL and keeps it
// only when it stays on the root's host.
func (c *Crawler) resolveSameDomain(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := c.allowedRoot.ResolveReference(ref)
	if resolved.Host != c.allowedRoot.Host {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}
