package rowrender

import (
	"fmt"
	"io"
)

// EmptyText is the default PlainText output for an absent or empty dataset.
const EmptyText = "No rows to show."

func writePlain(w io.Writer, rows Dataset, empty string) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, empty)
		return err
	}
	for _, row := range rows {
		for _, k := range row.Keys() {
			if _, err := fmt.Fprintf(w, "%s: %s\n", k, row[k]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	return nil
}
