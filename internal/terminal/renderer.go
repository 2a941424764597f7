package terminal

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Renderer renders markdown replies for the terminal
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a Renderer that wraps at width columns
func NewRenderer(width int) (*Renderer, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{term: tr}, nil
}

// Render renders markdown, falling back to the raw text on failure
func (r *Renderer) Render(markdown string) string {
	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// Width returns the column count of f, or DefaultWidth if f is not a terminal.
func Width(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
