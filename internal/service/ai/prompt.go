package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/DevGolamSever/mind-ease/internal/model/chat"
)

// systemInstruction fixes the companion persona and safety policy for every
// session.
const systemInstruction = `You are Mind Ease, a responsible, empathetic, and privacy-respecting AI mental wellness companion.
Your goal is to provide emotional support, active listening, and gentle guidance using CBT (Cognitive Behavioral Therapy) principles.

KEY GUIDELINES:
1. Empathy First: Always validate the user's feelings. Be warm, non-judgmental, and supportive.
2. Safety First: You are NOT a doctor or a crisis service. If a user expresses severe distress, self-harm, or suicidal thoughts, you MUST immediately and compassionately provide a disclaimer and suggest professional help (e.g., "I'm an AI companion, not a therapist. If you're in crisis, please contact a local emergency helpline immediately.").
3. Concise & Natural: Keep responses conversational and easy to read. Avoid long lectures.
4. Actionable: Suggest small, manageable steps (breathing exercises, journaling, grounding techniques) when appropriate.
5. Tone: Calm, soothing, encouraging.
6. Information: If you use web search to provide information, ensure it is supportive and relevant to wellness.

Do not diagnose conditions. Focus on the "here and now" and helping the user manage their current emotional state.`

// withTone prepends the per-turn tone hint. The hint is advisory; the remote
// model may ignore it.
func withTone(text string, tone chat.Tone) string {
	return fmt.Sprintf("(Please respond in a %s tone) %s", strings.ToLower(string(tone)), text)
}

// historyMessages converts persisted transcript entries into model turns,
// keeping only the most recent window.
func historyMessages(messages []chat.Message) []*schema.Message {
	const historyLimit = 20

	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Text))
		case chat.RoleModel:
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}

	return history
}

// groundingFromExtra pulls citation records out of a streamed chunk's
// provider metadata. Providers that ran a retrieval tool attach the sources
// under a references key; chunks without one yield nil.
func groundingFromExtra(msg *schema.Message) []chat.GroundingChunk {
	if msg == nil || len(msg.Extra) == 0 {
		return nil
	}

	raw, ok := msg.Extra["references"]
	if !ok {
		raw, ok = msg.Extra["grounding_chunks"]
	}
	if !ok {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	chunks := make([]chat.GroundingChunk, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		uri, _ := fields["uri"].(string)
		if uri == "" {
			uri, _ = fields["url"].(string)
		}
		title, _ := fields["title"].(string)
		if uri == "" && title == "" {
			continue
		}

		chunks = append(chunks, chat.GroundingChunk{Web: &chat.WebSource{URI: uri, Title: title}})
	}

	if len(chunks) == 0 {
		return nil
	}
	return chunks
}
