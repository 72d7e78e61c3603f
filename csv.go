package rowrender

import (
	"io"
	"strings"
)

// writeCSV writes a header of the first row's field names, then one line
// per row with every value quoted. Later rows are written in the first
// row's column order; fields they lack are empty.
func writeCSV(w io.Writer, rows Dataset) error {
	if len(rows) == 0 {
		return nil
	}
	keys := rows[0].Keys()
	var b strings.Builder
	b.WriteString(strings.Join(keys, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSV(row[k]))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quoteCSV(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
