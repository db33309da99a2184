package textconv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout/internal/domain"
)

func TestRenderHTMLPassThrough(t *testing.T) {
	in := "<p>Hello <b>world</b></p>"
	assert.Equal(t, in, Render(in, domain.FormatHTML))
}

func TestToPlain(t *testing.T) {
	in := "<div><p>First line</p><p>Second   line</p></div>"
	got := ToPlain(in)
	assert.Equal(t, "First line\nSecond line", got)
}

func TestToMarkdownStructure(t *testing.T) {
	in := `<h2>About the role</h2><ul><li>Write <strong>Go</strong></li><li>Review code</li></ul><p>Apply via <a href="https://example.com">our site</a>.</p>`
	got := ToMarkdown(in)

	assert.Contains(t, got, "## About the role")
	assert.Contains(t, got, "- Write **Go**")
	assert.Contains(t, got, "- Review code")
	assert.Contains(t, got, "[our site](https://example.com)")
}

func TestToMarkdownSkipsScripts(t *testing.T) {
	in := `<p>Visible</p><script>alert("x")</script>`
	got := ToMarkdown(in)
	assert.Equal(t, "Visible", got)
}

func TestRenderPlainText(t *testing.T) {
	got := Render("plain already", domain.FormatPlain)
	assert.Equal(t, "plain already", got)
}
