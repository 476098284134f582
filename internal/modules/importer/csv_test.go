package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCSVQuotedFields(t *testing.T) {
	csv := "title,slug,content\n" +
		"\"He said \"\"hello\"\" there,\nline two\",my-slug,body\n"

	rows, dropped := ParseCSV(csv)
	require.Equal(t, 0, dropped)
	require.Len(t, rows, 1)
	require.Equal(t, "He said \"hello\" there,\nline two", rows[0]["title"])
	require.Equal(t, "my-slug", rows[0]["slug"])
	require.Equal(t, "body", rows[0]["content"])
}

func TestParseCSVCRLF(t *testing.T) {
	csv := "a,b\r\n1,2\r\n3,4\r\n"

	rows, dropped := ParseCSV(csv)
	require.Equal(t, 0, dropped)
	require.Len(t, rows, 2)
	require.Equal(t, "1", rows[0]["a"])
	require.Equal(t, "4", rows[1]["b"])
}

func TestParseCSVDropsMismatchedRecords(t *testing.T) {
	csv := "a,b,c\n1,2,3\nonly-one\n4,5,6,7\n8,9,10\n"

	rows, dropped := ParseCSV(csv)
	require.Equal(t, 2, dropped)
	require.Len(t, rows, 2)
	require.Equal(t, "8", rows[1]["a"])
}

func TestParseCSVTrailingRecordWithoutNewline(t *testing.T) {
	rows, dropped := ParseCSV("a,b\n1,2")
	require.Equal(t, 0, dropped)
	require.Len(t, rows, 1)
	require.Equal(t, "2", rows[0]["b"])
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	rows, dropped := ParseCSV("a,b\n\n1,2\n\n\n")
	require.Equal(t, 0, dropped)
	require.Len(t, rows, 1)
}

func TestParseCSVEmptyInput(t *testing.T) {
	rows, dropped := ParseCSV("")
	require.Equal(t, 0, dropped)
	require.Empty(t, rows)
}
