package chunker

import (
	"strings"
	"testing"

	"github.com/anukol/sitechat/internal/domain/siteModel"
)

func TestSplit_SmallDocumentIsOneChunk(t *testing.T) {
	doc := siteModel.Document{SourceURL: "https://example.com/a", RawText: "short text"}

	chunks := Split(doc, Config{ChunkSize: 100, ChunkOverlap: 10})

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != doc.RawText || chunks[0].StartOffset != 0 {
		t.Errorf("Chunk mismatch: %+v", chunks[0])
	}
}

func TestSplit_CoversEveryCharacter(t *testing.T) {
	text := strings.Repeat("abcdefghij", 35) // 350 chars
	doc := siteModel.Document{SourceURL: "https://example.com/b", RawText: text}
	cfg := Config{ChunkSize: 100, ChunkOverlap: 20}

	chunks := Split(doc, cfg)

	covered := make([]bool, len(text))
	for _, c := range chunks {
		for i := range c.Text {
			covered[c.StartOffset+i] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Fatalf("Character at offset %d is not covered by any chunk", i)
		}
	}
}

func TestSplit_OffsetsAdvanceByStep(t *testing.T) {
	text := strings.Repeat("x", 1000)
	doc := siteModel.Document{SourceURL: "https://example.com/c", RawText: text}
	cfg := Config{ChunkSize: 300, ChunkOverlap: 50}

	chunks := Split(doc, cfg)

	step := cfg.ChunkSize - cfg.ChunkOverlap
	for i, c := range chunks {
		if c.StartOffset != i*step {
			t.Errorf("Chunk %d: offset got %d, want %d", i, c.StartOffset, i*step)
		}
	}
}

func TestSplit_OverlapRepeatsBoundaryText(t *testing.T) {
	// Distinct characters so the overlap region is recognizable.
	text := "0123456789" + strings.Repeat("abcdefghij", 20)
	doc := siteModel.Document{SourceURL: "https://example.com/d", RawText: text}
	cfg := Config{ChunkSize: 50, ChunkOverlap: 10}

	chunks := Split(doc, cfg)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	tail := chunks[0].Text[len(chunks[0].Text)-cfg.ChunkOverlap:]
	if !strings.HasPrefix(chunks[1].Text, tail) {
		t.Errorf("Second chunk does not start with first chunk's tail: %q vs %q", tail, chunks[1].Text[:cfg.ChunkOverlap])
	}
}

func TestSplit_Deterministic(t *testing.T) {
	doc := siteModel.Document{SourceURL: "https://example.com/e", RawText: strings.Repeat("lorem ipsum ", 100)}
	cfg := DefaultConfig()

	first := Split(doc, cfg)
	second := Split(doc, cfg)

	if len(first) != len(second) {
		t.Fatalf("Chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Chunk %d differs between runs", i)
		}
	}
}

func TestSplitAll_EmptyDocumentProducesNothing(t *testing.T) {
	docs := []siteModel.Document{
		{SourceURL: "https://example.com/empty", RawText: ""},
		{SourceURL: "https://example.com/full", RawText: "some content"},
	}

	chunks := SplitAll(docs, DefaultConfig())

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].SourceURL != "https://example.com/full" {
		t.Errorf("Wrong source: %s", chunks[0].SourceURL)
	}
}
