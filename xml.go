package rowrender

import (
	"io"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// writeXML writes one <row> per row and one element per field. Names and
// values are written as given, without escaping. An absent or empty dataset
// is written as a bare "<rows></rows>" with no declaration.
func writeXML(w io.Writer, rows Dataset) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "<rows></rows>")
		return err
	}
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString("<rows>")
	for _, row := range rows {
		b.WriteString("\n  <row>")
		for _, k := range row.Keys() {
			b.WriteString("\n    <" + k + ">" + row[k] + "</" + k + ">")
		}
		b.WriteString("\n  </row>")
	}
	b.WriteString("\n</rows>")
	_, err := io.WriteString(w, b.String())
	return err
}
