package display

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown converts markdown to terminal output, falling back to
// the raw content when the terminal renderer cannot be built.
func RenderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
