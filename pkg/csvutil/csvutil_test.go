package csvutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "plain", Escape("plain"))
	assert.Equal(t, "with space", Escape("with space"))
	assert.Equal(t, `"a;b"`, Escape("a;b"))
	assert.Equal(t, "\"a\nb\"", Escape("a\nb"))
	assert.Equal(t, `"diz ""oi"""`, Escape(`diz "oi"`))
	// commas are plain text in this dialect
	assert.Equal(t, "a,b", Escape("a,b"))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "DP-000123;Joao Silva;70.01", Row("DP-000123", "Joao Silva", "70.01"))
	assert.Equal(t, `x;"a;b";y`, Row("x", "a;b", "y"))
}

func TestJoin(t *testing.T) {
	doc := Join([][]string{
		{"sabor", "quantidade"},
		{"Calabresa", "12"},
		{},
		{"TOTAL", "12"},
	})
	assert.Equal(t, "sabor;quantidade\nCalabresa;12\n\nTOTAL;12", doc)
}
