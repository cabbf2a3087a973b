package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "Hello", SanitizeTitle("  <b>Hello</b> "))
	assert.Equal(t, "", SanitizeTitle("<script>alert(1)</script>"))
	assert.Equal(t, "plain", SanitizeTitle("plain"))
}

func TestSanitizeBody(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", SanitizeBody("<script>alert(1)</script><p>hi</p>"))
	assert.Equal(t, "<b>bold</b>", SanitizeBody(`<b onclick="steal()">bold</b>`))
	assert.Equal(t, "text", SanitizeBody("text"))
}
