package importer

import (
	"context"
	"sync/atomic"

	"github.com/aiinasia/core/internal/models"
)

// ImportRun carries the state of one import batch through the pipeline:
// batch id, counters, the accumulated error list and the cooperative
// cancellation flag. It is passed explicitly through every stage.
type ImportRun struct {
	BatchID     string
	Filename    string
	Total       int
	Success     int
	Failed      int
	DroppedRows int
	Errors      models.ImportRowErrors

	rows      []RowRecord
	cancelled atomic.Bool
}

// Cancel requests cooperative cancellation. The run observes the flag before
// each chunk and around each row write.
func (r *ImportRun) Cancel() { r.cancelled.Store(true) }

// ShouldStop reports whether the run was cancelled, either through the flag
// or through its context.
func (r *ImportRun) ShouldStop(ctx context.Context) bool {
	return r.cancelled.Load() || ctx.Err() != nil
}

func (r *ImportRun) recordError(row int, field, message string) {
	r.Errors = append(r.Errors, models.ImportRowError{Row: row, Field: field, Message: message})
}

// ProgressFunc is invoked after each processed row.
type ProgressFunc func(processed, total int)
