package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInputPrompt_EmptyAnswerStaysEmpty(t *testing.T) {
	prompt := inputPrompt(InputConfig{Message: "Commission (%)", Suggest: []string{"15"}})

	if prompt.Default != "" {
		t.Fatalf("default must stay empty, got %q", prompt.Default)
	}
	if diff := cmp.Diff([]string{"15"}, prompt.Suggest("1")); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if got := prompt.Suggest("2"); len(got) != 0 {
		t.Fatalf("unexpected suggestions %v", got)
	}
}

func TestInputPrompt_NoSuggestions(t *testing.T) {
	if prompt := inputPrompt(InputConfig{Message: "Room type name *"}); prompt.Suggest != nil {
		t.Fatalf("expected no completion without suggestions")
	}
}

func TestTextAreaPrompt_EmptyAnswerStaysEmpty(t *testing.T) {
	prompt := textAreaPrompt(TextAreaConfig{Message: "Rate codes", Help: "Current: A, B."})
	if prompt.Default != "" {
		t.Fatalf("default must stay empty, got %q", prompt.Default)
	}
}
