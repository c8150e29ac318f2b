package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"placements": []}`,
			expected: `{"placements": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here you go: {"placements": [{"slot": "tank1"}]} good luck`,
			expected: `{"placements": [{"slot": "tank1"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"placements\": []}\n```",
			expected: `{"placements": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"placements\": []}\n```",
			expected: `{"placements": []}`,
		},
		{
			name:     "brace inside a string",
			input:    `{"reason": "covers } the buster"} trailing`,
			expected: `{"reason": "covers } the buster"}`,
		},
		{
			name:     "escaped quote inside a string",
			input:    `{"reason": "say \"hi\" }"}`,
			expected: `{"reason": "say \"hi\" }"}`,
		},
		{
			name:     "no json",
			input:    "sorry",
			expected: "sorry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var resp SuggestResponse
	if err := decodeJSON("```json\n{\"placements\":[{\"slot\":\"tank1\",\"ability_id\":\"rampart\",\"start\":5}]}\n```", &resp); err != nil {
		t.Fatalf("decodeJSON() error: %v", err)
	}
	if len(resp.Placements) != 1 || resp.Placements[0].Start != 5 {
		t.Errorf("unexpected response: %+v", resp)
	}

	if err := decodeJSON("not json", &resp); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
