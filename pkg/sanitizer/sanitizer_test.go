package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	assert.Equal(t, "hi", Content("  hi  "))
	assert.Equal(t, "hello", Content(`<script>alert(1)</script>hello`))
	assert.Equal(t, "<b>bold</b>", Content("<b>bold</b>"))
	assert.Equal(t, "", Content("<script>x</script>"))
}
