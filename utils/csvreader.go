package utils

import (
	"encoding/csv"
	"io"
)

func ParseCSV(r io.Reader) ([][]string, error) {
	return ParseCSVComma(r, ',')
}

// ParseCSVComma reads a full delimited table. FieldsPerRecord is relaxed
// because spreadsheet exports pad rows unevenly.
func ParseCSVComma(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
