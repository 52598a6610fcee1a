package retriever

import (
	"context"
	"fmt"
	"strings"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/embedding"
	"ai-producer-be/pkg/rag/chapter"
	"ai-producer-be/pkg/rag/state"
)

// ScoredChunk is one ranked row returned by the vector store.
type ScoredChunk struct {
	Content    string
	Metadata   map[string]any
	Similarity float64
}

// SearchStore is the vector store boundary: cosine-ranked rows above a
// similarity threshold, scoped by a metadata filter. An empty filter means
// an unrestricted search.
type SearchStore interface {
	Search(ctx context.Context, embedding []float32, threshold float64, limit int, filter map[string]string) ([]ScoredChunk, error)
}

// Cascade turns a query into formatted context plus source records, with
// descending filter specificity: primary filter, then without the chapter
// key, then the passport degradation. It never raises past this boundary;
// any embedding or store failure yields ("", nil).
type Cascade struct {
	embedder  embedding.EmbeddingProvider
	store     SearchStore
	chapters  *chapter.Extractor
	topK      int
	threshold float64
	logger    logger.ILogger
}

func NewCascade(
	embedder embedding.EmbeddingProvider,
	store SearchStore,
	chapters *chapter.Extractor,
	topK int,
	threshold float64,
	log logger.ILogger,
) *Cascade {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Cascade{
		embedder:  embedder,
		store:     store,
		chapters:  chapters,
		topK:      topK,
		threshold: threshold,
		logger:    log,
	}
}

// Retrieve runs the full cascade for one query.
func (c *Cascade) Retrieve(ctx context.Context, query string, filter map[string]string) (string, []state.Source) {
	vector, err := c.embedder.Embed(ctx, query)
	if err != nil {
		c.logger.Error("retriever", "embedding failed, returning empty context", map[string]interface{}{
			"error": err.Error(),
		})
		return "", nil
	}

	finalFilter := cloneFilter(filter)

	// Chapter auto-detection only when the caller has not pinned one.
	if _, pinned := finalFilter["chapter"]; !pinned && c.chapters != nil {
		if num, ok := c.chapters.Extract(ctx, query); ok {
			finalFilter["chapter"] = num
			c.logger.Info("retriever", "chapter filter detected from query", map[string]interface{}{
				"chapter": num,
			})
		}
	}

	rows, err := c.search(ctx, vector, finalFilter)
	if err != nil {
		return "", nil
	}

	// Fallback 1: drop the chapter key, keep everything else.
	if len(rows) == 0 {
		if _, hasChapter := finalFilter["chapter"]; hasChapter {
			c.logger.Warn("retriever", "no rows for chapter filter, retrying without chapter", nil)
			base := cloneFilter(finalFilter)
			delete(base, "chapter")
			rows, err = c.search(ctx, vector, base)
			if err != nil {
				return "", nil
			}
		}
	}

	// Fallback 2: degrade to the book passport rather than returning nothing.
	if len(rows) == 0 {
		passportFilter := map[string]string{"type": "passport"}
		if author, ok := finalFilter["author"]; ok {
			passportFilter["author"] = author
		}
		c.logger.Warn("retriever", "no rows, degrading to passport search", nil)
		rows, err = c.search(ctx, vector, passportFilter)
		if err != nil {
			return "", nil
		}
	}

	if len(rows) == 0 {
		return "", nil
	}

	return FormatContext(rows), BuildSources(rows)
}

func (c *Cascade) search(ctx context.Context, vector []float32, filter map[string]string) ([]ScoredChunk, error) {
	rows, err := c.store.Search(ctx, vector, c.threshold, c.topK, filter)
	if err != nil {
		c.logger.Error("retriever", "vector search failed", map[string]interface{}{
			"error":  err.Error(),
			"filter": filter,
		})
		return nil, err
	}
	return rows, nil
}

// FormatContext renders rows as labeled source blocks in retrieval order
// (most similar first).
func FormatContext(rows []ScoredChunk) string {
	if len(rows) == 0 {
		return ""
	}

	parts := []string{"Найденная информация из документов:\n"}

	for i, row := range rows {
		header := fmt.Sprintf("[Источник %d: %s", i+1, metaString(row.Metadata, "source", "unknown"))
		if ch := metaString(row.Metadata, "chapter", ""); ch != "" {
			header += fmt.Sprintf(", Глава %s", ch)
		}
		if page := metaString(row.Metadata, "page", ""); page != "" {
			header += fmt.Sprintf(", стр. %s", page)
		}
		if idx, ok := metaInt(row.Metadata, "chunk_index"); ok {
			header += fmt.Sprintf(", часть %d", idx+1)
		}
		header += "]"

		parts = append(parts, "\n"+header, row.Content, "")
	}

	return strings.Join(parts, "\n")
}

// BuildSources builds the provenance list parallel to the formatted blocks.
func BuildSources(rows []ScoredChunk) []state.Source {
	sources := make([]state.Source, 0, len(rows))
	for _, row := range rows {
		src := state.Source{
			Source:  metaString(row.Metadata, "source", "unknown"),
			Page:    metaString(row.Metadata, "page", ""),
			Chapter: metaString(row.Metadata, "chapter", ""),
			Author:  metaString(row.Metadata, "author", ""),
		}
		if idx, ok := metaInt(row.Metadata, "chunk_index"); ok {
			i := idx
			src.ChunkIndex = &i
		}
		score := row.Similarity
		src.SimilarityScore = &score
		sources = append(sources, src)
	}
	return sources
}

func cloneFilter(filter map[string]string) map[string]string {
	out := make(map[string]string, len(filter))
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func metaString(meta map[string]any, key, fallback string) string {
	if meta == nil {
		return fallback
	}
	v, ok := meta[key]
	if !ok || v == nil {
		return fallback
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		// JSONB numbers decode as float64
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func metaInt(meta map[string]any, key string) (int, bool) {
	if meta == nil {
		return 0, false
	}
	switch val := meta[key].(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}
