package model

import "time"

// TrackerState is the per-asset bookkeeping row: ring cursor and fill
// count, the last accepted timestamp (watermark for monotonicity) and
// the next violation id to allocate. It is created on the first accepted
// submission and updated inside the same transaction as every later one.
type TrackerState struct {
	AssetID         string    `gorm:"type:varchar(64);primaryKey" json:"asset_id"`
	Cursor          int       `gorm:"not null" json:"cursor"`
	Count           int       `gorm:"not null" json:"count"`
	LastTimestamp   int64     `gorm:"not null" json:"last_timestamp"`
	NextViolationID int64     `gorm:"not null" json:"next_violation_id"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TrackerState) TableName() string {
	return "tracker_states"
}
