package crawler

import (
	"net/http"

	"github.com/anukol/sitechat/internal/config"
)

// shared pooled client - one crawl fans out over many pages of the same host
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   config.PageFetchTimeout,
	}
}
