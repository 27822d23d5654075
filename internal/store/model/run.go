package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RunItemStatusSucceeded = "succeeded"
	RunItemStatusFailed    = "failed"
)

// Run is one driver batch.
type Run struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:TEXT"`
	Kind       string    `gorm:"not null;type:VARCHAR(32)"`
	Input      string    `gorm:"not null"`
	OutputDir  string    `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
	Total      int `gorm:"not null;default:0"`
	Succeeded  int `gorm:"not null;default:0"`
	Failed     int `gorm:"not null;default:0"`
}

// RunItem is the recorded outcome of one input file within a run.
type RunItem struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:TEXT"`
	RunID      uuid.UUID `gorm:"not null;type:TEXT;index:run_items_run_id_idx"`
	Token      string    `gorm:"not null;type:VARCHAR(15)"`
	Path       string    `gorm:"not null"`
	Status     string    `gorm:"not null;type:VARCHAR(16);index:run_items_status_idx"`
	Error      string
	DurationMs int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
}

type RunList []Run
type RunItemList []RunItem

func (r Run) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}

func (i RunItem) String() string {
	val, _ := json.Marshal(i)
	return string(val)
}
