package chat

import "strings"

// Tone is a soft behavioral hint prepended to each turn. The remote model
// may ignore it.
type Tone string

const (
	ToneEmpathetic Tone = "Empathetic"
	ToneCasual     Tone = "Casual"
	ToneFormal     Tone = "Formal"
	ToneDirect     Tone = "Direct"
)

// ParseTone normalizes a client-supplied tone label, falling back to
// Empathetic for anything unrecognized.
func ParseTone(raw string) Tone {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "casual":
		return ToneCasual
	case "formal":
		return ToneFormal
	case "direct":
		return ToneDirect
	default:
		return ToneEmpathetic
	}
}
