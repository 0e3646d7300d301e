package ai

import (
	"strings"
	"testing"

	"chatrelay/chatrelay/utils/types"
)

func TestComposePromptEmptyHistory(t *testing.T) {
	prompt := ComposePrompt(nil)
	if !strings.HasPrefix(prompt, personaInstruction) {
		t.Errorf("prompt missing persona instruction: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "너:") {
		t.Errorf("prompt missing turn cue: %q", prompt)
	}
}

func TestComposePromptSpeakerLines(t *testing.T) {
	history := []types.ChatMessageView{
		{Username: "alice", Content: "hi there"},
		{Username: "bob", Content: "hey"},
	}
	prompt := ComposePrompt(history)

	aliceIdx := strings.Index(prompt, "alice: hi there")
	bobIdx := strings.Index(prompt, "bob: hey")
	if aliceIdx < 0 || bobIdx < 0 {
		t.Fatalf("speaker lines missing from prompt: %q", prompt)
	}
	if aliceIdx > bobIdx {
		t.Errorf("history order not preserved in prompt: %q", prompt)
	}
}

func TestComposePromptDeterministic(t *testing.T) {
	history := []types.ChatMessageView{
		{Username: "alice", Content: "one"},
		{Username: "bob", Content: "two"},
		{Username: "alice", Content: "three"},
	}
	if ComposePrompt(history) != ComposePrompt(history) {
		t.Error("same history produced different prompts")
	}
}
