package ai

import (
	"strings"

	"chatrelay/chatrelay/utils/types"
)

// AIUsername is the reserved identity every generated reply is authored
// as. At most one user row ever carries it.
const AIUsername = "민수"

// FallbackReply stands in whenever the generation collaborator fails.
const FallbackReply = "..."

// The persona never admits to being an AI.
const personaInstruction = "너는 AI가 아니라 평범한 사람이다. 절대 AI임을 밝히지 말고, 자연스럽고 인간적인 말투로 대답해라."

// ComposePrompt turns an ascending history window into the completion
// prompt: persona instruction, one "speaker: content" line per message,
// then the cue for the AI's turn. Same history in, same prompt out.
func ComposePrompt(history []types.ChatMessageView) string {
	var b strings.Builder
	b.WriteString(personaInstruction)
	b.WriteString("\n")
	for _, msg := range history {
		b.WriteString(msg.Username)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("너:")
	return b.String()
}
