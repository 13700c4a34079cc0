package siteModel

import "time"

// Document is one fetched page, normalized to plain text.
type Document struct {
	SourceURL string    `json:"source_url"`
	RawText   string    `json:"raw_text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Chunk is the retrieval unit: a bounded text segment with provenance.
type Chunk struct {
	Text        string `json:"content"`
	SourceURL   string `json:"source_url"`
	StartOffset int    `json:"start_offset"`
}

// ScoredChunk is a chunk returned from a similarity search.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

type ResourceKind string

const (
	ResourceHTML ResourceKind = "HTML"
	ResourcePDF  ResourceKind = "PDF"
	ResourceDOC  ResourceKind = "DOC"
	ResourceERR  ResourceKind = "ERROR"
)
