package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMarkdown(t *testing.T) {
	src := `<p style="color:#d1d5db">Hello <strong style="color:#fff">world</strong>!</p>
<h2 style="color:#fff">Title</h2>
<ol style="list-style:decimal"><li><strong>One</strong> - first</li><li>Two</li></ol>
<ul><li>a</li><li>  </li></ul>
<p>see <a href="https://example.com">link</a> and <a href="#">none</a></p>
<blockquote><p>quote</p></blockquote>`

	got, err := ToMarkdown(src)
	require.NoError(t, err)
	want := "Hello **world**!\n\n" +
		"## Title\n\n" +
		"1. **One** - first\n2. Two\n\n" +
		"- a\n\n" +
		"see [link](https://example.com) and none\n\n" +
		"> quote"
	assert.Equal(t, want, got)
}

func TestToMarkdownInlineDetails(t *testing.T) {
	got, err := ToMarkdown(`<p>line one<br>line two <em> soft </em>end</p><h3></h3><hr><div><p>nested</p></div>loose text`)
	require.NoError(t, err)
	assert.Equal(t, "line one  \nline two  _soft_ end\n\n---\n\nnested\n\nloose text", got)
}

func TestToMarkdownEmpty(t *testing.T) {
	got, err := ToMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "a b c", Plain("<p>a  <b>b</b></p>\n<p>c</p>"))
	assert.Equal(t, "", Plain(""))
}
