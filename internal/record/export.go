package record

import (
	"encoding/csv"
	"io"
)

// utf8BOM is prepended to exports so Excel opens them as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV serializes the set as comma-separated text with a UTF-8 BOM,
// a header row equal to the canonical field list, and one row per record.
// Dates render as YYYY-MM-DD or empty; finish turns as a bare integer or
// empty.
func WriteCSV(w io.Writer, set RecordSet) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(set.Fields); err != nil {
		return err
	}

	row := make([]string, len(set.Fields))
	for _, rec := range set.Records {
		for i, name := range set.Fields {
			row[i] = rec.Field(name)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
