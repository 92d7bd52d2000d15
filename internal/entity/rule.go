package entity

import (
	"time"
)

// AlertRule is a persisted price alert definition.
// Price is kept as the raw user-entered string and parsed at evaluation time.
type AlertRule struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	Symbol    string `gorm:"index"`
	Operator  string
	Price     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RunMarker is a bookkeeping record keyed by name, e.g. the last execution time.
type RunMarker struct {
	Key   string `gorm:"primaryKey"`
	Value string
}
