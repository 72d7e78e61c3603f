package rowrender

import (
	"fmt"
	"html"
	"strings"
)

// Fallbacks substituted into a page when a render fails.
const (
	FallbackHTML = "<p>render failed</p>"
	FallbackJSON = "{}"
)

// PageOptions configures [Page].
type PageOptions struct {
	// TemplatePath is the HTML template; empty means the default template.
	TemplatePath string
	// Title defaults to "rowrender".
	Title string
	// Script is the hydration script URL; defaults to "/hydrate.js".
	Script string
	// Options are passed to the HTML renderer.
	Options []Option
}

// Page renders rows as HTML and as JSON and composes a document that embeds
// the HTML and exposes the JSON as window.__INITIAL_DATA__. A failed render
// is logged and replaced by [FallbackHTML] or [FallbackJSON].
func Page(rows Dataset, opts PageOptions) string {
	if opts.Title == "" {
		opts.Title = "rowrender"
	}
	if opts.Script == "" {
		opts.Script = "/hydrate.js"
	}
	o := buildOptions(opts.Options)

	body := FallbackHTML
	if r, err := New(string(HTML), opts.TemplatePath, opts.Options...); err == nil {
		var b strings.Builder
		if err := r.Write(&b, rows); err != nil {
			o.logger.Error().Err(err).Str("path", r.TemplatePath()).Msg("HTML render failed, using fallback")
		} else {
			body = b.String()
		}
	}

	data := FallbackJSON
	var b strings.Builder
	if err := writeJSON(&b, rows); err != nil {
		o.logger.Error().Err(err).Msg("JSON render failed, using fallback")
	} else {
		data = b.String()
	}

	return fmt.Sprintf(pageLayout, html.EscapeString(opts.Title), body, data, html.EscapeString(opts.Script))
}

const pageLayout = `<!DOCTYPE html>
<html>
<head>
<title>%s</title>
</head>
<body>
<div id="app">%s</div>
<script type="text/javascript">
window.__INITIAL_DATA__ = %s;
</script>
<script src="%s"></script>
</body>
</html>
`
