package gemini

import (
	"errors"
	"testing"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
		{"plain prose", "hello there", "hello there"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeText_JSON(t *testing.T) {
	t.Parallel()

	got, err := normalizeText("```json\n[\"step one\",\"step two\"]\n```", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `["step one","step two"]` {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeText_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := normalizeText("sure! here is your JSON: {", true)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("error should wrap ErrGenerationFailed, got %v", err)
	}
}

func TestNormalizeText_Empty(t *testing.T) {
	t.Parallel()

	_, err := normalizeText("   ", false)
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("empty response should wrap ErrGenerationFailed, got %v", err)
	}
}

func TestNormalizeText_PlainText(t *testing.T) {
	t.Parallel()

	got, err := normalizeText("a short affirmation", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a short affirmation" {
		t.Errorf("got %q", got)
	}
}
