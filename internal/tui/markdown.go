package tui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu sync.Mutex
	// Renderers are cached per wrap width; building one is expensive.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders note text for the reading pane. On any renderer
// failure the raw text is returned, never an error.
func renderMarkdown(text string, width int) string {
	if width < 10 {
		width = 10
	}
	mdMu.Lock()
	defer mdMu.Unlock()

	r := mdRenderers[width]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		mdRenderers[width] = r
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
