package voice

import (
	"strings"
	"sync"
	"unicode"
)

// Action is what a final transcript segment resolved to.
type Action string

const (
	// ActionAppend means the segment was literal text added to the input.
	ActionAppend Action = "append"
	// ActionClearChat means the spoken clear-chat command fired.
	ActionClearChat Action = "clear_chat"
	// ActionOpenTimer means the spoken open-timer command fired.
	ActionOpenTimer Action = "open_timer"
	// ActionIgnored means the interceptor was not listening.
	ActionIgnored Action = "ignored"
)

// Result describes how one transcript segment was routed. Input carries the
// full accumulated input text after an append.
type Result struct {
	Action Action `json:"action"`
	Input  string `json:"input,omitempty"`
}

// Interceptor bridges recognized speech to either literal text insertion or
// command execution. At most one recognition session is active at a time;
// commands are matched by substring on the lowercased, trimmed segment.
type Interceptor struct {
	mu        sync.Mutex
	listening bool
	input     string
}

// New returns an idle interceptor with an empty input buffer.
func New() *Interceptor {
	return &Interceptor{}
}

// Toggle flips the recognition session. Starting while one is active stops
// it instead. Returns whether the interceptor is now listening.
func (i *Interceptor) Toggle() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.listening = !i.listening
	return i.listening
}

// Stop ends the recognition session if one is active.
func (i *Interceptor) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listening = false
}

// Listening reports whether a recognition session is active.
func (i *Interceptor) Listening() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.listening
}

// Input returns the accumulated input text.
func (i *Interceptor) Input() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.input
}

// SetInput seeds the input buffer, used when the client already holds typed
// text.
func (i *Interceptor) SetInput(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.input = text
}

// HandleTranscript routes one final transcript segment. Command matches stop
// recognition and insert no text; anything else is appended to the input
// with a single separating space when needed.
func (i *Interceptor) HandleTranscript(segment string) Result {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.listening {
		return Result{Action: ActionIgnored, Input: i.input}
	}

	clean := strings.ToLower(strings.TrimSpace(segment))
	if strings.Contains(clean, "clear chat") {
		i.listening = false
		return Result{Action: ActionClearChat}
	}
	if strings.Contains(clean, "open timer") {
		i.listening = false
		return Result{Action: ActionOpenTimer}
	}

	i.input = appendWithSeparator(i.input, segment)
	return Result{Action: ActionAppend, Input: i.input}
}

func appendWithSeparator(existing, addition string) string {
	if existing == "" {
		return addition
	}

	runes := []rune(existing)
	if unicode.IsSpace(runes[len(runes)-1]) {
		return existing + addition
	}
	return existing + " " + addition
}
