package model

import "time"

// Boundary is a circular geofence keyed by (asset id, boundary id).
// Identity is fixed at creation; center, radius and the active flag are
// replaced wholesale on update. Boundaries are disabled, never deleted,
// so past violations stay inspectable against their boundary.
type Boundary struct {
	AssetID    string    `gorm:"type:varchar(64);primaryKey" json:"asset_id"`
	BoundaryID string    `gorm:"type:varchar(64);primaryKey" json:"boundary_id"`
	CenterLat  int64     `gorm:"not null" json:"center_lat"`
	CenterLon  int64     `gorm:"not null" json:"center_lon"`
	Radius     int64     `gorm:"not null" json:"radius"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Boundary) TableName() string {
	return "boundaries"
}
