package mood

// Entry is one journal check-in. Score sits on a 1-10 scale and the entry is
// never mutated after creation, only deleted.
type Entry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Score     int    `json:"score"`
	Note      string `json:"note"`
}

// Source reports which path served a mood read, so callers can tell a live
// remote fetch apart from a stale fallback.
type Source string

const (
	SourceFresh Source = "fresh"
	SourceCache Source = "cache"
	SourceLocal Source = "local"
)
