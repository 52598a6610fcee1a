package pipeline

import (
	"context"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/generator"
	"ai-producer-be/pkg/rag/intent"
	"ai-producer-be/pkg/rag/loader"
	"ai-producer-be/pkg/rag/retriever"
	"ai-producer-be/pkg/rag/state"
)

// Route is the outcome of the routing function after the summary node.
type Route string

const (
	RouteRetrieve Route = "retrieve"
	RouteGenerate Route = "generate"
)

// RouteFunc decides whether a request goes through the retrieval cascade or
// straight to generation.
type RouteFunc func(st *state.State) Route

// ForcedRetrievalRoute sends every intent through retrieval. This is the
// deployed default: the assistant must always ground its answers in the
// knowledge base, whatever the classifier said.
func ForcedRetrievalRoute(st *state.State) Route {
	return RouteRetrieve
}

// IntentRoute retrieves only for knowledge and creative intents.
func IntentRoute(st *state.State) Route {
	switch st.Intent {
	case state.IntentKnowledgeBaseSearch, state.IntentCreativeWriting:
		return RouteRetrieve
	default:
		return RouteGenerate
	}
}

// routerHistory is how many trailing turns the router hands the classifier.
const routerHistory = 5

// personaFilters maps a persona key to its base retrieval filter. An
// unknown or empty persona searches the whole corpus.
var personaFilters = map[string]map[string]string{
	"velizhanin": {"author": "Nikolay Velizhanin"},
	"esther":     {"author": "Esther Hicks"},
}

// Pipeline sequences one invocation: Router → StrategyLoad → SummaryLoad →
// {Retrieve | SkipRetrieve} → Generate → Done. Nodes run strictly
// sequentially and every loader failure degrades to a safe default; the
// only way out early is context cancellation, in which case the caller must
// not persist anything.
type Pipeline struct {
	classifier     *intent.Classifier
	strategyLoader *loader.StrategyLoader
	summaryLoader  *loader.SummaryLoader
	cascade        *retriever.Cascade
	generator      *generator.Generator
	route          RouteFunc
	logger         logger.ILogger
}

func New(
	classifier *intent.Classifier,
	strategyLoader *loader.StrategyLoader,
	summaryLoader *loader.SummaryLoader,
	cascade *retriever.Cascade,
	gen *generator.Generator,
	route RouteFunc,
	log logger.ILogger,
) *Pipeline {
	if route == nil {
		route = ForcedRetrievalRoute
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Pipeline{
		classifier:     classifier,
		strategyLoader: strategyLoader,
		summaryLoader:  summaryLoader,
		cascade:        cascade,
		generator:      gen,
		route:          route,
		logger:         log,
	}
}

// Run executes the state machine over one working state. The returned error
// is non-nil only when ctx was cancelled mid-flight.
func (p *Pipeline) Run(ctx context.Context, st *state.State) error {
	// Router
	if err := ctx.Err(); err != nil {
		return err
	}
	p.runRouter(ctx, st)

	// StrategyLoad
	if err := ctx.Err(); err != nil {
		return err
	}
	p.strategyLoader.Load(ctx, st)

	// SummaryLoad
	if err := ctx.Err(); err != nil {
		return err
	}
	p.summaryLoader.Load(ctx, st)

	// Conditional branch
	if p.route(st) == RouteRetrieve {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.runRetrieve(ctx, st)
	} else {
		p.logger.Info("pipeline", "retrieval skipped", map[string]interface{}{
			"intent": st.Intent,
		})
	}

	// Generate
	if err := ctx.Err(); err != nil {
		return err
	}
	p.generator.Generate(ctx, st)

	return ctx.Err()
}

func (p *Pipeline) runRouter(ctx context.Context, st *state.State) {
	last, ok := st.LastUserMessage()
	if !ok {
		// No messages: degrade without touching the classifier.
		p.logger.Warn("pipeline", "no messages in state, defaulting intent", nil)
		st.Intent = state.IntentDirectResponse
		return
	}

	// History excludes the turn being classified; Classify appends it
	// itself.
	prior := st.Messages[:len(st.Messages)-1]
	if len(prior) > routerHistory {
		prior = prior[len(prior)-routerHistory:]
	}
	history := make([]llm.Message, 0, len(prior))
	for _, msg := range prior {
		if msg.Role == llm.RoleUser || msg.Role == llm.RoleAssistant {
			history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
		}
	}

	st.Intent = p.classifier.Classify(ctx, last, history)
	p.logger.Info("pipeline", "intent classified", map[string]interface{}{
		"intent": st.Intent,
	})
}

func (p *Pipeline) runRetrieve(ctx context.Context, st *state.State) {
	query, ok := st.LastUserMessage()
	if !ok {
		st.Context = ""
		st.Sources = nil
		return
	}

	filter := FilterForPersona(st.Persona)
	context, sources := p.cascade.Retrieve(ctx, query, filter)

	st.Context = context
	st.Sources = sources

	p.logger.Info("pipeline", "retrieval finished", map[string]interface{}{
		"sources": len(sources),
		"persona": st.Persona,
	})
}

// FilterForPersona returns the base metadata filter for a persona key.
func FilterForPersona(persona string) map[string]string {
	if base, ok := personaFilters[persona]; ok {
		out := make(map[string]string, len(base))
		for k, v := range base {
			out[k] = v
		}
		return out
	}
	return map[string]string{}
}
