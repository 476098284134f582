package importer

import "strings"

// RowRecord maps a column header to the raw field value of one CSV row.
// Every record produced by ParseCSV carries exactly the header's key set.
type RowRecord map[string]string

// ParseCSV tokenizes raw CSV text into row records keyed by the header row.
// The scan is character-wise so quoted fields may contain embedded commas and
// newlines; a doubled quote inside a quoted field is an escaped literal quote
// (RFC 4180). Records whose field count disagrees with the header are dropped
// rather than repaired; the second return value reports how many were dropped.
func ParseCSV(text string) ([]RowRecord, int) {
	var (
		records  [][]string
		current  []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		current = append(current, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, current)
		current = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			endField()
		case ch == '\n' && !inQuotes:
			endRecord()
		case ch == '\r' && !inQuotes:
			// swallowed so CRLF input behaves like LF
		default:
			field.WriteRune(ch)
		}
	}
	// Trailing content without a terminating newline still yields a record.
	if field.Len() > 0 || len(current) > 0 {
		endRecord()
	}

	if len(records) == 0 {
		return nil, 0
	}

	header := records[0]
	rows := make([]RowRecord, 0, len(records)-1)
	dropped := 0
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		if len(rec) != len(header) {
			dropped++
			continue
		}
		row := make(RowRecord, len(header))
		for i, key := range header {
			row[key] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, dropped
}

func isBlankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
