package insights

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fences returns trimmed input",
			input: "  {\"growthRate\": 5}  ",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "json tagged fence",
			input: "```json\n{\"growthRate\": 5}\n```",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "untagged fence",
			input: "```\n{\"growthRate\": 5}\n```",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "fence without trailing marker",
			input: "```json\n{\"growthRate\": 5}",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "single line glued fence",
			input: "```json{\"growthRate\": 5}```",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "nested double fence",
			input: "```\n```json\n{\"growthRate\": 5}\n```\n```",
			want:  "{\"growthRate\": 5}",
		},
		{
			name:  "backticks inside strings survive",
			input: "{\"bio\": \"use ``` for code blocks\"}",
			want:  "{\"bio\": \"use ``` for code blocks\"}",
		},
		{
			name:  "plain refusal text passes through",
			input: "Sorry, I cannot help.",
			want:  "Sorry, I cannot help.",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripFencesIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"{\"a\": 1}",
		"plain text",
	}
	for _, input := range inputs {
		once := StripFences(input)
		twice := StripFences(once)
		if once != twice {
			t.Errorf("StripFences not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
