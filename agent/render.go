package agent

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var emailPolicy = bluemonday.UGCPolicy()

// RenderEmailHTML converts a drafted email body from markdown to sanitized
// HTML suitable for handing to an email sender. Script, style and event
// handler content is stripped.
func RenderEmailHTML(body string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(body))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	raw := markdown.Render(doc, renderer)

	return string(emailPolicy.SanitizeBytes(raw))
}
