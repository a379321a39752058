package parse

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseCSV reads comma or semicolon separated fixture rows. The
// delimiter is sniffed from the first line.
func parseCSV(data []byte) ([]RawRow, error) {
	first, _, _ := strings.Cut(string(data), "\n")
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.Count(first, ";") > strings.Count(first, ",") {
		reader.Comma = ';'
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, TabularReadError("csv", err)
		}
		records = append(records, rec)
	}
	return cellsToRows(records, FormatCSV)
}

// parseXLSX reads the first sheet of an Excel workbook.
func parseXLSX(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, TabularReadError("xlsx", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, EmptyInputError()
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, TabularReadError("xlsx", err)
	}
	return cellsToRows(records, FormatXLSX)
}

// cellsToRows maps a grid of cells to raw rows. When the first row
// names at least two known columns it is treated as a header; otherwise
// the club sheet's positional layout applies and every row is data.
func cellsToRows(records [][]string, format Format) ([]RawRow, error) {
	records = dropBlank(records)
	if len(records) == 0 {
		return nil, EmptyInputError()
	}

	var headers map[int]string
	start := 0
	if headerAliasCount(records[0]) >= 2 {
		headers = mapHeaders(records[0])
		start = 1
	} else {
		headers = make(map[int]string, len(clubSheetColumns))
		for i, field := range clubSheetColumns {
			headers[i] = field
		}
	}

	rows := make([]RawRow, 0, len(records)-start)
	for i := start; i < len(records); i++ {
		fields := make(map[string]string)
		for col, field := range headers {
			if col < len(records[i]) {
				if v := strings.TrimSpace(records[i][col]); v != "" {
					fields[field] = v
				}
			}
		}
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, RawRow{
			Index:  len(rows),
			Format: format,
			Fields: fields,
		})
	}
	return rows, nil
}

func dropBlank(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		if strings.TrimSpace(strings.Join(rec, "")) != "" {
			out = append(out, rec)
		}
	}
	return out
}
