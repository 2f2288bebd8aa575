package model

import "time"

// PositionSample carries one reported fix. Coordinates and radius are
// micro-degrees stored as signed integers so containment checks stay
// integer-only and reproducible across deployments.
type PositionSample struct {
	Latitude  int64 `json:"latitude"`
	Longitude int64 `json:"longitude"`
	Altitude  int64 `json:"altitude"`
	Timestamp int64 `json:"timestamp"`
	Speed     int64 `json:"speed"`
	Heading   int64 `json:"heading"`
}

// CurrentPosition is the single per-asset slot overwritten on every
// accepted submission.
type CurrentPosition struct {
	AssetID   string    `gorm:"type:varchar(64);primaryKey" json:"asset_id"`
	Latitude  int64     `gorm:"not null" json:"latitude"`
	Longitude int64     `gorm:"not null" json:"longitude"`
	Altitude  int64     `gorm:"not null" json:"altitude"`
	Timestamp int64     `gorm:"not null" json:"timestamp"`
	Speed     int64     `gorm:"not null" json:"speed"`
	Heading   int64     `gorm:"not null" json:"heading"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CurrentPosition) TableName() string {
	return "current_positions"
}

// HistorySlot is one ring entry, addressed by the physical slot index it
// was written to. A slot is rewritten in place when the ring wraps.
type HistorySlot struct {
	AssetID   string    `gorm:"type:varchar(64);primaryKey" json:"asset_id"`
	SlotIndex int       `gorm:"primaryKey" json:"slot_index"`
	Latitude  int64     `gorm:"not null" json:"latitude"`
	Longitude int64     `gorm:"not null" json:"longitude"`
	Altitude  int64     `gorm:"not null" json:"altitude"`
	Timestamp int64     `gorm:"not null" json:"timestamp"`
	Speed     int64     `gorm:"not null" json:"speed"`
	Heading   int64     `gorm:"not null" json:"heading"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HistorySlot) TableName() string {
	return "position_history"
}

// Sample converts a stored slot back to the wire form.
func (s HistorySlot) Sample() PositionSample {
	return PositionSample{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Altitude:  s.Altitude,
		Timestamp: s.Timestamp,
		Speed:     s.Speed,
		Heading:   s.Heading,
	}
}

// Sample converts the stored current position back to the wire form.
func (p CurrentPosition) Sample() PositionSample {
	return PositionSample{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Altitude:  p.Altitude,
		Timestamp: p.Timestamp,
		Speed:     p.Speed,
		Heading:   p.Heading,
	}
}
