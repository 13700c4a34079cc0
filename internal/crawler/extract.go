package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"golang.org/x/net/html"
)

var errUnsupportedResource = errors.New("unsupported resource type")

func errBadStatus(code int) error {
	return fmt.Errorf("status %d", code)
}

func resourceKind(link string) siteModel.ResourceKind {
	u, err := url.Parse(link)
	if err != nil {
		return siteModel.ResourceERR
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".pdf":
		return siteModel.ResourcePDF
	case ".docx", ".txt", ".rtf", ".odt":
		return siteModel.ResourceDOC
	default:
		return siteModel.ResourceHTML
	}
}

// htmlToText walks the parsed tree and joins visible text nodes, skipping
// script and style subtrees.
func htmlToText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if builder.Len() > 0 {
					builder.WriteByte('\n')
				}
				builder.WriteString(text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return builder.String(), nil
}

// fetchAttachmentText downloads a linked file to a temp path and extracts its
// text. The site links a few PDF menus and itinerary docs next to its pages.
func (c *Crawler) fetchAttachmentText(ctx context.Context, link string, kind siteModel.ResourceKind) (string, error) {
	tempPath, err := c.downloadToTemp(ctx, link)
	if err != nil {
		return "", err
	}
	defer func() {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			c.logger.Error("Error removing temp file", "path", tempPath, "error", removeErr)
		}
	}()

	switch kind {
	case siteModel.ResourcePDF:
		return extractPDF(tempPath)
	case siteModel.ResourceDOC:
		return cat.File(tempPath)
	default:
		return "", errUnsupportedResource
	}
}

func (c *Crawler) downloadToTemp(ctx context.Context, link string) (string, error) {
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

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(req.URL.Path))
	tempPath := filepath.Join(os.TempDir(), name)
	out, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return tempPath, nil
}

func extractPDF(filePath string) (string, error) {
	f, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var builder strings.Builder
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// keep going with other pages
			continue
		}
		builder.WriteString(content)
		builder.WriteByte('\n')
	}
	return builder.String(), nil
}
