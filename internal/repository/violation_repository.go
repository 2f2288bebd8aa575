package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracking-service/internal/model"
)

// ViolationRepository reads the append-only violation ledger. Writes go
// through TrackerRepository.CommitSubmission so they share the
// submission transaction; there is no update or delete path at all.
type ViolationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

func (r *ViolationRepository) Get(ctx context.Context, assetID string, violationID int64) (*model.Violation, error) {
	var violation model.Violation
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND violation_id = ?", assetID, violationID).
		First(&violation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &violation, nil
}

func (r *ViolationRepository) List(ctx context.Context, assetID string, limit int) ([]model.Violation, error) {
	var violations []model.Violation
	query := r.db.WithContext(ctx).Where("asset_id = ?", assetID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("violation_id ASC").Find(&violations).Error; err != nil {
		return nil, err
	}
	return violations, nil
}
