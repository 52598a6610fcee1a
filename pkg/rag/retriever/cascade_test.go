package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/rag/chapter"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// fakeStore records every filter it was called with and serves scripted
// responses in call order.
type fakeStore struct {
	filters   []map[string]string
	responses [][]ScoredChunk
	err       error
}

func (f *fakeStore) Search(ctx context.Context, embedding []float32, threshold float64, limit int, filter map[string]string) ([]ScoredChunk, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	call := len(f.filters) - 1
	if call < len(f.responses) {
		return f.responses[call], nil
	}
	return nil, nil
}

func chunk(content, source string, similarity float64) ScoredChunk {
	return ScoredChunk{
		Content:    content,
		Metadata:   map[string]any{"source": source},
		Similarity: similarity,
	}
}

func TestRetrievePrimaryHit(t *testing.T) {
	store := &fakeStore{responses: [][]ScoredChunk{
		{chunk("текст про позиционирование", "book.pdf", 0.91)},
	}}
	c := NewCascade(&fakeEmbedder{}, store, nil, 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "позиционирование", map[string]string{"author": "Nikolay Velizhanin"})

	assert.Len(t, store.filters, 1)
	assert.Equal(t, map[string]string{"author": "Nikolay Velizhanin"}, store.filters[0])
	assert.Contains(t, contextText, "текст про позиционирование")
	assert.Len(t, sources, 1)
	assert.Equal(t, "book.pdf", sources[0].Source)
}

func TestRetrieveChapterFallback(t *testing.T) {
	store := &fakeStore{responses: [][]ScoredChunk{
		nil, // chapter-scoped search misses
		{chunk("общий фрагмент", "book.pdf", 0.6)},
	}}
	c := NewCascade(&fakeEmbedder{}, store, chapter.NewExtractor(nil, nil), 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "что в главе 5", map[string]string{"author": "Nikolay Velizhanin"})

	assert.Len(t, store.filters, 2)
	assert.Equal(t, map[string]string{"author": "Nikolay Velizhanin", "chapter": "5"}, store.filters[0])
	assert.Equal(t, map[string]string{"author": "Nikolay Velizhanin"}, store.filters[1])
	assert.NotEmpty(t, contextText)
	assert.Len(t, sources, 1)
}

func TestRetrievePassportFallback(t *testing.T) {
	store := &fakeStore{responses: [][]ScoredChunk{
		nil, // primary
		nil, // chapter dropped
		{chunk("паспорт книги", "book.pdf", 0.5)},
	}}
	c := NewCascade(&fakeEmbedder{}, store, chapter.NewExtractor(nil, nil), 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "глава 7", map[string]string{"author": "Nikolay Velizhanin"})

	assert.Len(t, store.filters, 3)
	// The passport degradation keeps the author scope but nothing else.
	assert.Equal(t, map[string]string{"type": "passport", "author": "Nikolay Velizhanin"}, store.filters[2])
	assert.Contains(t, contextText, "паспорт книги")
	assert.Len(t, sources, 1)
}

func TestRetrievePassportFallbackNoChapter(t *testing.T) {
	// Without a chapter filter the cascade skips straight to the passport.
	store := &fakeStore{responses: [][]ScoredChunk{nil, nil}}
	c := NewCascade(&fakeEmbedder{}, store, nil, 20, 0.45, nil)

	c.Retrieve(context.Background(), "о чём книга", map[string]string{})

	assert.Len(t, store.filters, 2)
	assert.Equal(t, map[string]string{}, store.filters[0])
	assert.Equal(t, map[string]string{"type": "passport"}, store.filters[1])
}

func TestRetrieveAllEmpty(t *testing.T) {
	store := &fakeStore{}
	c := NewCascade(&fakeEmbedder{}, store, nil, 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "запрос", nil)

	assert.Empty(t, contextText)
	assert.Nil(t, sources)
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	store := &fakeStore{}
	c := NewCascade(&fakeEmbedder{err: errors.New("ollama down")}, store, nil, 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "запрос", nil)

	assert.Empty(t, contextText)
	assert.Nil(t, sources)
	assert.Empty(t, store.filters)
}

func TestRetrieveStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	c := NewCascade(&fakeEmbedder{}, store, nil, 20, 0.45, nil)

	contextText, sources := c.Retrieve(context.Background(), "запрос", nil)

	assert.Empty(t, contextText)
	assert.Nil(t, sources)
}

func TestRetrievePinnedChapterNotOverwritten(t *testing.T) {
	store := &fakeStore{responses: [][]ScoredChunk{
		{chunk("фрагмент", "book.pdf", 0.7)},
	}}
	c := NewCascade(&fakeEmbedder{}, store, chapter.NewExtractor(nil, nil), 20, 0.45, nil)

	c.Retrieve(context.Background(), "глава 9", map[string]string{"chapter": "2"})

	assert.Equal(t, "2", store.filters[0]["chapter"])
}

func TestBuildSourcesParallelToBlocks(t *testing.T) {
	idx := float64(3)
	rows := []ScoredChunk{
		{
			Content: "первый",
			Metadata: map[string]any{
				"source":      "book.pdf",
				"chapter":     "5",
				"page":        "12",
				"chunk_index": idx,
				"author":      "Nikolay Velizhanin",
			},
			Similarity: 0.92,
		},
		{
			Content:    "второй",
			Metadata:   nil,
			Similarity: 0.61,
		},
	}

	sources := BuildSources(rows)

	assert.Len(t, sources, 2)
	assert.Equal(t, "book.pdf", sources[0].Source)
	assert.Equal(t, "5", sources[0].Chapter)
	assert.Equal(t, "12", sources[0].Page)
	assert.Equal(t, "Nikolay Velizhanin", sources[0].Author)
	assert.Equal(t, 3, *sources[0].ChunkIndex)
	assert.Equal(t, 0.92, *sources[0].SimilarityScore)

	assert.Equal(t, "unknown", sources[1].Source)
	assert.Nil(t, sources[1].ChunkIndex)
	assert.Equal(t, 0.61, *sources[1].SimilarityScore)
}

func TestFormatContext(t *testing.T) {
	rows := []ScoredChunk{
		{
			Content: "текст первой главы",
			Metadata: map[string]any{
				"source":      "book.pdf",
				"chapter":     "1",
				"chunk_index": float64(0),
			},
			Similarity: 0.9,
		},
		{
			Content:    "ещё текст",
			Metadata:   map[string]any{"source": "transcript.txt"},
			Similarity: 0.8,
		},
	}

	got := FormatContext(rows)

	assert.Contains(t, got, "Найденная информация из документов:")
	assert.Contains(t, got, "[Источник 1: book.pdf, Глава 1, часть 1]")
	assert.Contains(t, got, "текст первой главы")
	assert.Contains(t, got, "[Источник 2: transcript.txt]")
	// Blocks appear in retrieval order.
	assert.Less(t, strings.Index(got, "book.pdf"), strings.Index(got, "transcript.txt"))
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Empty(t, FormatContext(nil))
}
