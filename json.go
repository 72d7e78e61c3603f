package rowrender

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON writes compact JSON. An absent dataset encodes as null.
func writeJSON(w io.Writer, rows Dataset) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: json: %s", ErrSerialization, err)
	}
	_, err = w.Write(data)
	return err
}
