package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/generator"
	"ai-producer-be/pkg/rag/intent"
	"ai-producer-be/pkg/rag/loader"
	"ai-producer-be/pkg/rag/retriever"
	"ai-producer-be/pkg/rag/state"
)

// scriptedLLM serves one response per Chat call in order. The first call is
// the classifier, the last is the generator.
type scriptedLLM struct {
	responses []string
	calls     [][]llm.Message
}

func (f *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls = append(f.calls, history)
	if len(f.calls) <= len(f.responses) {
		return f.responses[len(f.calls)-1], nil
	}
	return "", errors.New("no scripted response")
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("not scripted")
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.5}, nil
}

type fakeSearchStore struct {
	filters []map[string]string
	rows    []retriever.ScoredChunk
}

func (f *fakeSearchStore) Search(ctx context.Context, embedding []float32, threshold float64, limit int, filter map[string]string) ([]retriever.ScoredChunk, error) {
	f.filters = append(f.filters, filter)
	return f.rows, nil
}

type fakeRecordStore struct {
	passport string
}

func (f *fakeRecordStore) GetStrategy(ctx context.Context, userID string) (*loader.StrategyRecord, error) {
	return nil, nil
}

func (f *fakeRecordStore) GetPassport(ctx context.Context, persona string) (string, error) {
	return f.passport, nil
}

func newTestPipeline(model llm.LLMProvider, store retriever.SearchStore, route RouteFunc) *Pipeline {
	records := &fakeRecordStore{passport: "паспорт"}
	return New(
		intent.NewClassifier(model, nil),
		loader.NewStrategyLoader(records, "", nil),
		loader.NewSummaryLoader(records, nil),
		retriever.NewCascade(fakeEmbedder{}, store, nil, 20, 0.45, nil),
		generator.NewGenerator(model, 0.7, nil),
		route,
		nil,
	)
}

func TestRunFullChain(t *testing.T) {
	model := &scriptedLLM{responses: []string{"knowledge_base_search", "ответ по базе"}}
	store := &fakeSearchStore{rows: []retriever.ScoredChunk{
		{Content: "фрагмент", Metadata: map[string]any{"source": "book.pdf"}, Similarity: 0.8},
	}}
	p := newTestPipeline(model, store, ForcedRetrievalRoute)

	st := state.New("u1", "t1", "velizhanin", nil)
	st.AppendMessage("user", "что в книге про триггеры")

	err := p.Run(context.Background(), st)

	assert.NoError(t, err)
	assert.Equal(t, state.IntentKnowledgeBaseSearch, st.Intent)
	assert.Contains(t, st.Summary, "паспорт")
	assert.Contains(t, st.Context, "фрагмент")
	assert.Len(t, st.Sources, 1)
	assert.Equal(t, "ответ по базе", st.Messages[len(st.Messages)-1].Content)
	// The persona scoped the vector search.
	assert.Equal(t, "Nikolay Velizhanin", store.filters[0]["author"])
}

func TestRunEmptyHistorySkipsClassifier(t *testing.T) {
	// Generator still needs one response; the classifier must not consume
	// any.
	model := &scriptedLLM{responses: []string{"ответ"}}
	p := newTestPipeline(model, &fakeSearchStore{}, ForcedRetrievalRoute)

	st := state.New("u1", "t1", "", nil)

	err := p.Run(context.Background(), st)

	assert.NoError(t, err)
	assert.Equal(t, state.IntentDirectResponse, st.Intent)
	// Exactly one model call: generation. No classifier invocation.
	assert.Len(t, model.calls, 1)
}

func TestRunForcedRetrievalIgnoresIntent(t *testing.T) {
	model := &scriptedLLM{responses: []string{"direct_response", "ответ"}}
	store := &fakeSearchStore{}
	p := newTestPipeline(model, store, ForcedRetrievalRoute)

	st := state.New("u1", "t1", "", nil)
	st.AppendMessage("user", "привет")

	err := p.Run(context.Background(), st)

	assert.NoError(t, err)
	assert.NotEmpty(t, store.filters)
}

func TestRunIntentRouteSkipsRetrieval(t *testing.T) {
	model := &scriptedLLM{responses: []string{"direct_response", "привет!"}}
	store := &fakeSearchStore{}
	p := newTestPipeline(model, store, IntentRoute)

	st := state.New("u1", "t1", "", nil)
	st.AppendMessage("user", "привет")

	err := p.Run(context.Background(), st)

	assert.NoError(t, err)
	assert.Empty(t, store.filters)
	assert.Empty(t, st.Context)
}

func TestRunCancelledContext(t *testing.T) {
	model := &scriptedLLM{}
	p := newTestPipeline(model, &fakeSearchStore{}, ForcedRetrievalRoute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := state.New("u1", "t1", "", nil)
	st.AppendMessage("user", "вопрос")

	err := p.Run(ctx, st)

	assert.ErrorIs(t, err, context.Canceled)
	// Nothing ran: no model calls, no assistant answer.
	assert.Empty(t, model.calls)
	assert.Len(t, st.Messages, 1)
}

func TestIntentRoute(t *testing.T) {
	tests := []struct {
		intent string
		want   Route
	}{
		{state.IntentKnowledgeBaseSearch, RouteRetrieve},
		{state.IntentCreativeWriting, RouteRetrieve},
		{state.IntentDirectResponse, RouteGenerate},
		{"", RouteGenerate},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			st := &state.State{Intent: tt.intent}
			assert.Equal(t, tt.want, IntentRoute(st))
		})
	}
}

func TestFilterForPersona(t *testing.T) {
	tests := []struct {
		persona string
		want    map[string]string
	}{
		{"velizhanin", map[string]string{"author": "Nikolay Velizhanin"}},
		{"esther", map[string]string{"author": "Esther Hicks"}},
		{"unknown", map[string]string{}},
		{"", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run("persona "+tt.persona, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterForPersona(tt.persona))
		})
	}
}

func TestFilterForPersonaReturnsCopy(t *testing.T) {
	filter := FilterForPersona("velizhanin")
	filter["chapter"] = "3"

	assert.NotContains(t, FilterForPersona("velizhanin"), "chapter")
}
