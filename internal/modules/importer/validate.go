package importer

import (
	"fmt"
	"strings"

	"github.com/aiinasia/core/internal/models"
)

// requiredColumns are the fields a row must carry to be importable.
var requiredColumns = []string{"title", "slug", "content"}

// ValidateRow checks one row record for the mandatory fields. rowIndex is the
// zero-based position within the data rows; reported row numbers add 2 (one
// for the header row, one for 1-based display). Never errors out: the result
// is an empty slice for a valid row.
func ValidateRow(row RowRecord, rowIndex int) []models.ImportRowError {
	errs := []models.ImportRowError{}
	for _, field := range requiredColumns {
		if strings.TrimSpace(row[field]) == "" {
			errs = append(errs, models.ImportRowError{
				Row:     rowIndex + 2,
				Field:   field,
				Message: fmt.Sprintf("missing required field %q", field),
			})
		}
	}
	return errs
}
