package rowrender

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrFile          = errors.New("template file error")
	ErrSerialization = errors.New("serialization error")
)

// FileError reports a template file that could not be opened or read.
// It matches [ErrFile] with errors.Is and unwraps to the underlying cause.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrFile, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrFile].
func (e *FileError) Is(target error) bool { return target == ErrFile }

// Format represents an output format.
type Format string

const (
	HTML      Format = "html"
	JSON      Format = "json"
	XML       Format = "xml"
	CSV       Format = "csv"
	PlainText Format = "text"
	Markdown  Format = "markdown"
	Protobuf  Format = "protobuf"
)

var formats = []Format{HTML, JSON, XML, CSV, PlainText, Markdown, Protobuf}

// Accepted spellings, matched case-insensitively.
var aliases = []struct {
	name   string
	format Format
}{
	{"html", HTML},
	{"json", JSON},
	{"xml", XML},
	{"csv", CSV},
	{"text", PlainText},
	{"plain", PlainText},
	{"markdown", Markdown},
	{"md", Markdown},
	{"protobuf", Protobuf},
	{"proto", Protobuf},
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Aliases returns every name [ParseFormat] accepts for f, canonical name first.
func Aliases(f Format) []string {
	var out []string
	for _, a := range aliases {
		if a.format == f {
			out = append(out, a.name)
		}
	}
	return out
}

// ParseFormat resolves a format name case-insensitively. The error for an
// unrecognized name wraps [ErrUnknownFormat] and quotes the name as given.
func ParseFormat(s string) (Format, error) {
	lower := strings.ToLower(s)
	for _, a := range aliases {
		if a.name == lower {
			return a.format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Row is one record: field name to field value.
type Row map[string]string

// Keys returns the row's field names in iteration order. Every encoder walks
// fields through Keys, so the order is lexicographic and identical for the
// header and value lines of a single render.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Dataset is an ordered sequence of rows. A nil Dataset means no data was
// supplied; a non-nil empty Dataset means zero rows.
type Dataset []Row

// Output is the result of [Renderer.Render]: either [Rendered] or [Raw].
type Output interface {
	output()
}

// Rendered is rendered text.
type Rendered string

// Raw carries the dataset unrendered. The renderer never produces it today;
// callers should still handle it.
type Raw struct {
	Rows Dataset
}

func (Rendered) output() {}
func (Raw) output()      {}

// Default template names, looked up in the template directory when no
// template path is given.
const (
	DefaultHTMLTemplate     = "default.html"
	DefaultMarkdownTemplate = "default.md"
	DefaultTemplateDir      = "templates"
)

// Renderer renders datasets in one format.
type Renderer struct {
	format       Format
	templatePath string
	opts         options
}

// New creates a renderer for the named format. templatePath selects the
// template for HTML and Markdown; empty means the format's default template.
func New(format, templatePath string, opts ...Option) (*Renderer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		format:       f,
		templatePath: templatePath,
		opts:         buildOptions(opts),
	}, nil
}

// Format returns the renderer's resolved format.
func (r *Renderer) Format() Format { return r.format }

// TemplatePath returns the template file HTML and Markdown renders read.
// It is empty for the other formats.
func (r *Renderer) TemplatePath() string {
	var name string
	switch r.format {
	case HTML:
		name = DefaultHTMLTemplate
	case Markdown:
		name = DefaultMarkdownTemplate
	default:
		return ""
	}
	if r.templatePath != "" {
		return r.templatePath
	}
	return filepath.Join(r.opts.templateDir, name)
}

// Render renders rows. A nil rows value is the absent dataset.
func (r *Renderer) Render(rows Dataset) (Output, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, rows); err != nil {
		return nil, err
	}
	return Rendered(buf.String()), nil
}

// Write renders rows and writes the result to w.
func (r *Renderer) Write(w io.Writer, rows Dataset) error {
	switch r.format {
	case HTML, Markdown:
		return r.writeTemplate(w, rows)
	case JSON:
		return writeJSON(w, rows)
	case XML:
		return writeXML(w, rows)
	case CSV:
		return writeCSV(w, rows)
	case PlainText:
		return writePlain(w, rows, r.opts.emptyText)
	case Protobuf:
		return writeProtobuf(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}
}

// Marshal renders rows in format f and returns the bytes. HTML and Markdown
// read their default templates.
func Marshal(f Format, rows Dataset, opts ...Option) ([]byte, error) {
	r, err := New(string(f), "", opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Option configures a [Renderer].
type Option func(*options)

type options struct {
	logger      zerolog.Logger
	templateDir string
	emptyText   string
}

func buildOptions(opts []Option) options {
	o := options{
		logger:      log.Logger.With().Str("component", "render").Logger(),
		templateDir: DefaultTemplateDir,
		emptyText:   EmptyText,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger that receives template diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTemplateDir sets the directory default templates are read from.
func WithTemplateDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.templateDir = dir
		}
	}
}

// WithEmptyText sets the text PlainText renders for an absent or empty dataset.
func WithEmptyText(s string) Option {
	return func(o *options) { o.emptyText = s }
}
