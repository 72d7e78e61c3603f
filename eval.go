package rowrender

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type frameKind int

const (
	frameFor frameKind = iota
	frameIf
)

// frame marks where an open loop or conditional body starts in the output.
type frame struct {
	kind    frameKind
	name    string // item name or condition field
	list    string
	start   int
	sawElse bool
}

// includeGuard holds the paths entered during one top-level render.
type includeGuard map[string]struct{}

func guardKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// enter records path and reports whether it was not already entered.
func (g includeGuard) enter(path string) bool {
	key := guardKey(path)
	if _, ok := g[key]; ok {
		return false
	}
	g[key] = struct{}{}
	return true
}

type evaluator struct {
	rows   Dataset
	guard  includeGuard
	logger zerolog.Logger
}

func newEvaluator(rows Dataset, logger zerolog.Logger) *evaluator {
	return &evaluator{rows: rows, guard: includeGuard{}, logger: logger}
}

// evaluate runs tokens against the dataset. Frames left open at the end keep
// their body text as written.
func (e *evaluator) evaluate(tokens []Token) (string, error) {
	var buf bytes.Buffer
	var stack []frame
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			buf.WriteString(tok.Text)
		case TokenVariable:
			if v, ok := e.field(tok.Name); ok {
				buf.WriteString(v)
			}
		case TokenForStart:
			stack = append(stack, frame{kind: frameFor, name: tok.Name, list: tok.List, start: buf.Len()})
		case TokenForEnd:
			if len(stack) == 0 || stack[len(stack)-1].kind != frameFor {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			e.expandLoop(&buf, f, cut(&buf, f.start))
		case TokenIfStart:
			stack = append(stack, frame{kind: frameIf, name: tok.Name, start: buf.Len()})
		case TokenElse:
			if len(stack) == 0 || stack[len(stack)-1].kind != frameIf {
				continue
			}
			f := &stack[len(stack)-1]
			then := cut(&buf, f.start)
			if len(e.rows) > 0 && e.truthy(f.name) {
				buf.WriteString(then)
			}
			f.start = buf.Len()
			f.sawElse = true
		case TokenIfEnd:
			if len(stack) == 0 || stack[len(stack)-1].kind != frameIf {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			tail := cut(&buf, f.start)
			// After an else, tail is the else branch; otherwise it is the
			// then branch, which stays only when the condition holds. With no
			// rows there is nothing to test and neither branch is kept.
			if len(e.rows) > 0 && f.sawElse != e.truthy(f.name) {
				buf.WriteString(tail)
			}
		case TokenInclude:
			text, err := e.include(tok.Name)
			if err != nil {
				return "", err
			}
			buf.WriteString(text)
		}
	}
	return buf.String(), nil
}

// cut returns the buffer contents from start on and truncates the buffer
// back to start.
func cut(buf *bytes.Buffer, start int) string {
	body := string(buf.Bytes()[start:])
	buf.Truncate(start)
	return body
}

// expandLoop appends body once per comma-separated item of the list field,
// for every row that has the field. Only the literal "{ item }" placeholder
// is replaced.
func (e *evaluator) expandLoop(buf *bytes.Buffer, f frame, body string) {
	placeholder := "{ " + f.name + " }"
	for _, row := range e.rows {
		list, ok := row[f.list]
		if !ok {
			continue
		}
		for _, item := range strings.Split(list, ",") {
			buf.WriteString(strings.ReplaceAll(body, placeholder, item))
		}
	}
}

// field looks name up in the first row only.
func (e *evaluator) field(name string) (string, bool) {
	if len(e.rows) == 0 {
		return "", false
	}
	v, ok := e.rows[0][name]
	return v, ok
}

func (e *evaluator) truthy(name string) bool {
	v, ok := e.field(name)
	return ok && v == "true"
}

// include expands the template at path against the same dataset and guard.
// A path already entered during this render is skipped with a warning.
func (e *evaluator) include(path string) (string, error) {
	if !e.guard.enter(path) {
		e.logger.Warn().Str("path", path).Msg("Template already included in this render, skipping")
		return "", nil
	}
	src, err := loadTemplate(path, e.logger)
	if err != nil {
		return "", err
	}
	return e.evaluate(Tokenize(src))
}
