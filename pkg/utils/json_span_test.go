package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"prose around", "はい、どうぞ\n```json\n{\"missions\":[]}\n```\n以上です", `{"missions":[]}`, true},
		{"nested", `x {"a":{"b":{}}} y {"c":2}`, `{"a":{"b":{}}}`, true},
		{"brace in string", `{"name":"}{"}`, `{"name":"}{"}`, true},
		{"escaped quote", `{"name":"say \"}\""}`, `{"name":"say \"}\""}`, true},
		{"unbalanced first, balanced later", `{ oops {"a":1}`, `{"a":1}`, true},
		{"no object", `I cannot help with that.`, "", false},
		{"never closed", `{"a":1`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
