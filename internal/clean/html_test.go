package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain text passes through", "Serve coffee daily", "Serve coffee daily"},
		{"Plain text is trimmed", "  Serve coffee  ", "Serve coffee"},
		{"Empty string", "", ""},
		{"Simple markup stripped", "<p>Serve coffee</p>", "Serve coffee"},
		{"Script content removed", "<p>Hello</p><script>alert(1)</script>", "Hello"},
		{"List items keep boundaries", "<ul><li>Brew</li><li>Serve</li></ul>", "Brew\nServe"},
		{"Nested spans flattened", "<p>Work <b>hard</b>, stay humble</p>", "Work hard, stay humble"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestWhitespace(t *testing.T) {
	assert.Equal(t, "a b\n\nc", Whitespace("a   b\n\n\n\nc"))
	assert.Equal(t, "line", Whitespace("   line   "))
}
