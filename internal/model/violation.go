package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Violation is one audit-trail record of a boundary breach. ViolationID
// is a per-asset counter starting at 0 with no gaps or reuse; rows are
// append-only. ID is a surrogate key for replication tooling only.
type Violation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	AssetID          string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_asset_violation,priority:1" json:"asset_id"`
	ViolationID      int64     `gorm:"not null;uniqueIndex:idx_asset_violation,priority:2" json:"violation_id"`
	BoundaryID       string    `gorm:"type:varchar(64);not null" json:"boundary_id"`
	Latitude         int64     `gorm:"not null" json:"latitude"`
	Longitude        int64     `gorm:"not null" json:"longitude"`
	Timestamp        int64     `gorm:"not null" json:"timestamp"`
	DistanceExceeded int64     `gorm:"not null" json:"distance_exceeded"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Violation) TableName() string {
	return "violations"
}

func (v *Violation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ViolationCandidate is what the compliance evaluator emits before the
// ledger assigns a violation id.
type ViolationCandidate struct {
	BoundaryID       string `json:"boundary_id"`
	Latitude         int64  `json:"latitude"`
	Longitude        int64  `json:"longitude"`
	Timestamp        int64  `json:"timestamp"`
	DistanceExceeded int64  `json:"distance_exceeded"`
}
