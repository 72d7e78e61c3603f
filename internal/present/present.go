package present

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Pretty renders Markdown for a terminal. Style is a glamour style name or
// path; empty or "auto" detects the terminal background. On failure the
// content is returned unchanged.
func Pretty(content, style string) string {
	var options []glamour.TermRendererOption
	if style != "" && style != "auto" {
		options = append(options, glamour.WithStylePath(style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		log.Debug().Err(err).Str("style", style).Msg("Markdown renderer unavailable, writing plain output")
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		log.Debug().Err(err).Str("style", style).Msg("Markdown render failed, writing plain output")
		return content
	}
	return rendered
}

// Sanitize strips markup that is unsafe in user-generated HTML.
func Sanitize(html string) string {
	return bluemonday.UGCPolicy().Sanitize(html)
}
