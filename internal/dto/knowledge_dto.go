package dto

type UploadKnowledgeRequest struct {
	Source   string            `json:"source" validate:"required"`
	Text     string            `json:"text" validate:"required"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type UploadKnowledgeResponse struct {
	Source    string `json:"source"`
	Chunks    int    `json:"chunks"`
	Published int    `json:"published"`
}

type KnowledgeStatsResponse struct {
	TotalChunks int64 `json:"total_chunks"`
	Sources     int   `json:"sources"`
}

type SourceStatResponse struct {
	Source string `json:"source"`
	Chunks int64  `json:"chunks"`
}

type DeleteSourceResponse struct {
	Source  string `json:"source"`
	Deleted int64  `json:"deleted"`
}

// IngestChunkMessage is the watermill payload for one chunk awaiting
// embedding.
type IngestChunkMessage struct {
	Source     string            `json:"source"`
	Content    string            `json:"content"`
	ChunkIndex int               `json:"chunk_index"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
