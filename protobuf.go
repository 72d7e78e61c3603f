package rowrender

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// The Protobuf format is the protobuf wire encoding of these messages,
// base64 encoded:
//
//	message Dataset {
//	  bool present = 1;       // always written; false for an absent dataset
//	  repeated Row rows = 2;
//	}
//	message Row   { repeated Entry entries = 1; }
//	message Entry { string key = 1; string value = 2; }
//
// Entries are written in Row.Keys order. Unknown fields are skipped on decode.

const (
	datasetPresentField protowire.Number = 1
	datasetRowField     protowire.Number = 2
	rowEntryField       protowire.Number = 1
	entryKeyField       protowire.Number = 1
	entryValueField     protowire.Number = 2
)

func writeProtobuf(w io.Writer, rows Dataset) error {
	_, err := io.WriteString(w, base64.StdEncoding.EncodeToString(appendDataset(nil, rows)))
	return err
}

func appendDataset(buf []byte, rows Dataset) []byte {
	buf = protowire.AppendTag(buf, datasetPresentField, protowire.VarintType)
	if rows == nil {
		return protowire.AppendVarint(buf, 0)
	}
	buf = protowire.AppendVarint(buf, 1)
	for _, row := range rows {
		buf = protowire.AppendTag(buf, datasetRowField, protowire.BytesType)
		buf = protowire.AppendBytes(buf, appendRow(nil, row))
	}
	return buf
}

func appendRow(buf []byte, row Row) []byte {
	var entry []byte
	for _, k := range row.Keys() {
		entry = protowire.AppendTag(entry[:0], entryKeyField, protowire.BytesType)
		entry = protowire.AppendString(entry, k)
		entry = protowire.AppendTag(entry, entryValueField, protowire.BytesType)
		entry = protowire.AppendString(entry, row[k])
		buf = protowire.AppendTag(buf, rowEntryField, protowire.BytesType)
		buf = protowire.AppendBytes(buf, entry)
	}
	return buf
}

// DecodeProtobuf reverses the Protobuf format. Errors wrap [ErrSerialization].
func DecodeProtobuf(s string) (Dataset, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %s", ErrSerialization, err)
	}
	rows, err := decodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("%w: protobuf: %s", ErrSerialization, err)
	}
	return rows, nil
}

// fieldFunc consumes the value of one field from b and returns its length,
// or a negative protowire error code.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func consumeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

func wrongType(num protowire.Number, typ protowire.Type) error {
	return fmt.Errorf("field %d has wire type %d", num, typ)
}

func decodeDataset(b []byte) (Dataset, error) {
	var (
		marked, present bool
		rows            Dataset
	)
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case datasetPresentField:
			if typ != protowire.VarintType {
				return 0, wrongType(num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, nil
			}
			if v > 1 {
				return 0, fmt.Errorf("invalid presence marker %d", v)
			}
			marked, present = true, v == 1
			return n, nil
		case datasetRowField:
			if typ != protowire.BytesType {
				return 0, wrongType(num, typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			row, err := decodeRow(v)
			if err != nil {
				return 0, err
			}
			rows = append(rows, row)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return nil, err
	}
	switch {
	case !marked:
		return nil, errors.New("missing presence marker")
	case !present && rows != nil:
		return nil, fmt.Errorf("absent dataset carries %d rows", len(rows))
	case !present:
		return nil, nil
	case rows == nil:
		return Dataset{}, nil
	}
	return rows, nil
}

func decodeRow(b []byte) (Row, error) {
	row := make(Row)
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != rowEntryField {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		if typ != protowire.BytesType {
			return 0, wrongType(num, typ)
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		k, val, err := decodeEntry(v)
		if err != nil {
			return 0, err
		}
		row[k] = val
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func decodeEntry(b []byte) (key, value string, err error) {
	err = consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != entryKeyField && num != entryValueField {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		if typ != protowire.BytesType {
			return 0, wrongType(num, typ)
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		if num == entryKeyField {
			key = string(v)
		} else {
			value = string(v)
		}
		return n, nil
	})
	return key, value, err
}
