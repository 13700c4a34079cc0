package crawler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// FetchDocuments fetches every discovered link and normalizes it into a text
// Document. Per-link failures are logged and skipped - one broken page must
// not abort the rest of the crawl. An empty result is valid.
func (c *Crawler) FetchDocuments(ctx context.Context, links []string) []siteModel.Document {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("crawl", time.Since(start)) }()

	var (
		mu   sync.Mutex
		docs []siteModel.Document
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.CrawlConcurrency)

	for _, link := range links {
		group.Go(func() error {
			doc, err := c.fetchOne(groupCtx, link)
			if err != nil {
				c.logger.Error("Skipping page", "url", link, "error", err)
				return nil //contained: partial failure tolerance
			}
			if doc.RawText == "" {
				c.logger.Debug("Page produced no text", "url", link)
				return nil
			}
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait() //workers never return errors, Wait just joins them

	c.logger.Info("Fetched documents", "requested", len(links), "produced", len(docs))
	return docs
}

func (c *Crawler) fetchOne(ctx context.Context, link string) (siteModel.Document, error) {
	kind := resourceKind(link)

	var (
		text string
		err  error
	)
	switch kind {
	case siteModel.ResourceHTML:
		text, err = c.fetchHTMLText(ctx, link)
	case siteModel.ResourcePDF, siteModel.ResourceDOC:
		text, err = c.fetchAttachmentText(ctx, link, kind)
	default:
		return siteModel.Document{}, &chatModel.FetchError{URL: link, Err: errUnsupportedResource}
	}
	if err != nil {
		return siteModel.Document{}, err
	}

	return siteModel.Document{
		SourceURL: link,
		RawText:   text,
		FetchedAt: time.Now(),
	}, nil
}

func (c *Crawler) fetchHTMLText(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", &chatModel.FetchError{URL: link, Err: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &chatModel.FetchError{URL: link, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &chatModel.FetchError{URL: link, Err: errBadStatus(resp.StatusCode)}
	}
	return htmlToText(resp.Body)
}
