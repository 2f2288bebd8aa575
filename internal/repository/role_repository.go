package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracking-service/internal/model"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Owner(ctx context.Context) (*model.OwnerState, error) {
	var state model.OwnerState
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *RoleRepository) IsFleetManager(ctx context.Context, identity string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FleetManager{}).
		Where("identity = ?", identity).
		Count(&count).Error
	return count > 0, err
}

func (r *RoleRepository) IsAuthorizedDevice(ctx context.Context, identity string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AuthorizedDevice{}).
		Where("identity = ?", identity).
		Count(&count).Error
	return count > 0, err
}

func (r *RoleRepository) AddFleetManager(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.FleetManager{Identity: identity}).Error
}

func (r *RoleRepository) RemoveFleetManager(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Where("identity = ?", identity).
		Delete(&model.FleetManager{}).Error
}

func (r *RoleRepository) AddAuthorizedDevice(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.AuthorizedDevice{Identity: identity}).Error
}

func (r *RoleRepository) RemoveAuthorizedDevice(ctx context.Context, identity string) error {
	return r.db.WithContext(ctx).
		Where("identity = ?", identity).
		Delete(&model.AuthorizedDevice{}).Error
}

// TransferOwner hands the owner slot to newOwner iff current still holds
// it at the expected version. Returns false when the compare-and-set
// misses, which callers treat as not authorized.
func (r *RoleRepository) TransferOwner(ctx context.Context, current, newOwner string, version int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.OwnerState{}).
		Where("id = ? AND identity = ? AND version = ?", 1, current, version).
		Updates(map[string]interface{}{
			"identity": newOwner,
			"version":  version + 1,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
