package model

import "time"

// Role is the resolved permission level for a caller identity.
type Role string

const (
	RoleOwner            Role = "OWNER"
	RoleFleetManager     Role = "FLEET_MANAGER"
	RoleAuthorizedDevice Role = "AUTHORIZED_DEVICE"
	RoleNone             Role = "NONE"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	Identity string
}

// FleetManager marks an identity as holding the fleet-manager role.
type FleetManager struct {
	Identity  string    `gorm:"type:varchar(128);primaryKey" json:"identity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FleetManager) TableName() string {
	return "fleet_managers"
}

// AuthorizedDevice marks an identity as an approved position submitter.
type AuthorizedDevice struct {
	Identity  string    `gorm:"type:varchar(128);primaryKey" json:"identity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthorizedDevice) TableName() string {
	return "authorized_devices"
}

// OwnerState is the versioned singleton holding the contract owner.
// Transfer is a compare-and-set on (identity, version) so two concurrent
// transfers cannot both win.
type OwnerState struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Identity  string    `gorm:"type:varchar(128);not null" json:"identity"`
	Version   int64     `gorm:"not null" json:"version"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OwnerState) TableName() string {
	return "owner_state"
}
