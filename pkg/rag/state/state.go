package state

import (
	"encoding/json"
	"time"
)

// Intent labels produced by the router phase.
const (
	IntentKnowledgeBaseSearch = "knowledge_base_search"
	IntentCreativeWriting     = "creative_writing"
	IntentDirectResponse      = "direct_response"
)

// MaxStage is the last stage of the guided producer flow. Once a thread
// reaches it, the stage is frozen.
const MaxStage = 10

// Message is one conversation turn inside the working state.
type Message struct {
	Role      string
	Content   string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Source is a provenance record for one retrieved passage.
type Source struct {
	Source          string   `json:"source"`
	Page            string   `json:"page,omitempty"`
	ChunkIndex      *int     `json:"chunk_index,omitempty"`
	Chapter         string   `json:"chapter,omitempty"`
	Author          string   `json:"author,omitempty"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}

// State is the full mutable context threaded through one pipeline
// invocation. It is owned by exactly that invocation: constructed fresh per
// incoming message, mutated by the sequential node chain, and handed back to
// the caller for persistence. It is never shared across goroutines.
type State struct {
	Messages []Message
	UserID   string
	ThreadID string

	Intent  string // empty until the router has run
	Persona string

	Summary string
	Context string
	Sources []Source

	CurrentStage int
	Blueprint    map[int]json.RawMessage

	Metadata map[string]any
}

// New creates the initial state for one invocation. Stage numbering starts
// at 1; the caller overwrites CurrentStage/Blueprint with the thread's
// persisted values before running the pipeline.
func New(userID, threadID, persona string, messages []Message) *State {
	return &State{
		Messages:     messages,
		UserID:       userID,
		ThreadID:     threadID,
		Persona:      persona,
		CurrentStage: 1,
		Blueprint:    make(map[int]json.RawMessage),
		Metadata:     make(map[string]any),
	}
}

// AppendMessage adds one turn to the in-flight message list.
func (s *State) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// AppendSummary concatenates a block onto the summary. Loaders never
// overwrite each other's contribution.
func (s *State) AppendSummary(block string) {
	if block == "" {
		return
	}
	if s.Summary == "" {
		s.Summary = block
		return
	}
	s.Summary = s.Summary + "\n" + block
}

// SetStage records a stage payload. Writing the same stage twice keeps the
// latest payload; other stage keys are never touched.
func (s *State) SetStage(stage int, payload json.RawMessage) {
	if stage < 1 || stage > MaxStage {
		return
	}
	if s.Blueprint == nil {
		s.Blueprint = make(map[int]json.RawMessage)
	}
	s.Blueprint[stage] = payload
}

// AdvanceStage moves the thread to the next stage, capped at MaxStage.
func (s *State) AdvanceStage() {
	if s.CurrentStage < MaxStage {
		s.CurrentStage++
	}
}

// LastUserMessage returns the content of the most recent user turn and
// whether one exists.
func (s *State) LastUserMessage() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == "user" {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

// RecentMessages returns up to the last n messages in order.
func (s *State) RecentMessages(n int) []Message {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// SetMeta records a caller-visible annotation.
func (s *State) SetMeta(key string, value any) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	s.Metadata[key] = value
}
