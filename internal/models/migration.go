package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// BatchStatus is the lifecycle state of an import batch. InProgress is the
// only non-terminal state.
type BatchStatus string

const (
	BatchInProgress          BatchStatus = "in_progress"
	BatchCompleted           BatchStatus = "completed"
	BatchCompletedWithErrors BatchStatus = "completed_with_errors"
	BatchCancelled           BatchStatus = "cancelled"
	BatchRolledBack          BatchStatus = "rolled_back"
)

// IsTerminal reports whether the batch can no longer change except via rollback.
func (s BatchStatus) IsTerminal() bool { return s != BatchInProgress }

// ImportRowError is one per-row failure recorded during an import run.
// Row is 1-based and accounts for the CSV header row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportRowErrors stores the accumulated error list as a JSON column.
type ImportRowErrors []ImportRowError

func (e ImportRowErrors) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]ImportRowError(e))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (e *ImportRowErrors) Scan(value interface{}) error {
	if e == nil {
		return fmt.Errorf("models.ImportRowErrors: Scan on nil pointer")
	}
	if value == nil {
		*e = ImportRowErrors{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.ImportRowErrors: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*e = ImportRowErrors{}
		return nil
	}

	var arr []ImportRowError
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return err
	}
	*e = arr
	return nil
}

// MigrationLogModel is the persisted summary of one import batch.
type MigrationLogModel struct {
	Base
	BatchID      string          `json:"batch_id"      gorm:"uniqueIndex;not null"`
	Filename     string          `json:"filename"`
	TotalRows    int             `json:"total_rows"    gorm:"default:0"`
	SuccessCount int             `json:"success_count" gorm:"default:0"`
	FailedCount  int             `json:"failed_count"  gorm:"default:0"`
	DroppedRows  int             `json:"dropped_rows"  gorm:"default:0"`
	Status       BatchStatus     `json:"status"        gorm:"default:'in_progress';index"`
	Errors       ImportRowErrors `json:"errors"        gorm:"type:longtext"`
}

func (MigrationLogModel) TableName() string { return "migration_logs" }
