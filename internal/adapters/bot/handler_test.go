package bot

import (
	"strings"
	"testing"
)

func TestWelcomeMessageListsCommands(t *testing.T) {
	msg := welcomeMessage()
	for _, want := range []string{
		"/setcategory",
		"/setlang",
		"LLM, Multimodal, Computer vision, Reinforcement learning, Robotics, Recommendation",
		"KO, EN",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in welcome message", want)
		}
	}
}

func TestLanguageList(t *testing.T) {
	if got := languageList(); got != "KO, EN" {
		t.Fatalf("expected \"KO, EN\", got %q", got)
	}
}
