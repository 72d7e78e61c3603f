package rowrender

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func (r *Renderer) writeTemplate(w io.Writer, rows Dataset) error {
	path := r.TemplatePath()
	src, err := loadTemplate(path, r.opts.logger)
	if err != nil {
		return err
	}
	out, err := newEvaluator(rows, r.opts.logger).evaluate(Tokenize(src))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderTemplate evaluates an in-memory template against rows. Include
// directives read files relative to the working directory.
func RenderTemplate(src string, rows Dataset, opts ...Option) (string, error) {
	o := buildOptions(opts)
	return newEvaluator(rows, o.logger).evaluate(Tokenize(src))
}

func loadTemplate(path string, logger zerolog.Logger) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Template loaded")
	return string(data), nil
}
