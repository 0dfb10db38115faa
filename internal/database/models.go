package database

import (
	"time"

	"gorm.io/gorm"
)

// Outcome classifies how a webhook call ended.
type Outcome string

const (
	OutcomeNoNumber    Outcome = "no_number"
	OutcomeNoTribunal  Outcome = "no_tribunal"
	OutcomeFound       Outcome = "found"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeUnavailable Outcome = "unavailable"
)

// QueryLog is one webhook call. It deliberately has no process number column.
type QueryLog struct {
	gorm.Model
	Outcome      Outcome   `json:"outcome" gorm:"size:32;index:idx_query_logs_outcome,priority:1"`
	Tribunal     string    `json:"tribunal" gorm:"size:64;index:idx_query_logs_outcome,priority:2"`
	Success      bool      `json:"success"`
	FromCache    bool      `json:"from_cache"`
	FailReason   string    `json:"fail_reason" gorm:"size:32"`
	StatusCode   int       `json:"status_code"`
	DurationMS   int64     `json:"duration_ms"`
	QueryTime    time.Time `json:"query_time" gorm:"index:idx_query_logs_time"`
	IPAddress    string    `json:"ip_address" gorm:"size:64"`
	ErrorMessage string    `json:"error_message"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
