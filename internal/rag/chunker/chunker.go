package chunker

import (
	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/siteModel"
)

// Config controls the sliding window. Overlap keeps context that straddles a
// boundary retrievable from both sides of it.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
}

func DefaultConfig() Config {
	return Config{ChunkSize: config.ChunkSize, ChunkOverlap: config.ChunkOverlap}
}

// Split cuts a document into overlapping chunks, each carrying its start
// offset into the source text. Deterministic: same document and config always
// produce the same chunks, and every character of the source lands in at
// least one chunk.
func Split(doc siteModel.Document, cfg Config) []siteModel.Chunk {
	if cfg.ChunkSize <= 0 {
		cfg = DefaultConfig()
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 10
	}

	runes := []rune(doc.RawText)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= cfg.ChunkSize {
		return []siteModel.Chunk{{
			Text:        doc.RawText,
			SourceURL:   doc.SourceURL,
			StartOffset: 0,
		}}
	}

	step := cfg.ChunkSize - cfg.ChunkOverlap
	var chunks []siteModel.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, siteModel.Chunk{
			Text:        string(runes[start:end]),
			SourceURL:   doc.SourceURL,
			StartOffset: start,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// SplitAll chunks every document with the same config.
func SplitAll(docs []siteModel.Document, cfg Config) []siteModel.Chunk {
	var all []siteModel.Chunk
	for _, doc := range docs {
		all = append(all, Split(doc, cfg)...)
	}
	return all
}
