package chat

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// WebSource points at a page the model's retrieval tool consulted.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingChunk is a single citation record attached to a model reply.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// Message is one transcript entry. Timestamp is epoch milliseconds so the
// value survives storage and transport without string round-tripping.
type Message struct {
	ID        string           `json:"id"`
	Role      Role             `json:"role"`
	Text      string           `json:"text"`
	Timestamp int64            `json:"timestamp"`
	Grounding []GroundingChunk `json:"groundingChunks,omitempty"`
}

// StreamChunk is one increment of a streamed model reply. TextDelta is
// concatenated by the consumer; Grounding is a snapshot of all citations
// gathered so far, not a delta.
type StreamChunk struct {
	TextDelta string
	Grounding []GroundingChunk
}
