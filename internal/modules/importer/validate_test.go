package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRowAllMissing(t *testing.T) {
	row := RowRecord{"title": "", "slug": "  ", "content": ""}

	errs := ValidateRow(row, 0)
	require.Len(t, errs, 3)
	for _, e := range errs {
		require.Equal(t, 2, e.Row)
	}
	require.Equal(t, "title", errs[0].Field)
	require.Equal(t, "slug", errs[1].Field)
	require.Equal(t, "content", errs[2].Field)
}

func TestValidateRowReportsDisplayRowNumber(t *testing.T) {
	row := RowRecord{"title": "t", "slug": "", "content": "c"}

	errs := ValidateRow(row, 9)
	require.Len(t, errs, 1)
	require.Equal(t, 11, errs[0].Row)
}

func TestValidateRowValid(t *testing.T) {
	row := RowRecord{"title": "t", "slug": "s", "content": "c"}
	require.Empty(t, ValidateRow(row, 0))
}
