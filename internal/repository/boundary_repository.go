package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracking-service/internal/model"
)

type BoundaryRepository struct {
	db *gorm.DB
}

func NewBoundaryRepository(db *gorm.DB) *BoundaryRepository {
	return &BoundaryRepository{db: db}
}

func (r *BoundaryRepository) Create(ctx context.Context, boundary *model.Boundary) error {
	return r.db.WithContext(ctx).Create(boundary).Error
}

func (r *BoundaryRepository) Get(ctx context.Context, assetID, boundaryID string) (*model.Boundary, error) {
	var boundary model.Boundary
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND boundary_id = ?", assetID, boundaryID).
		First(&boundary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &boundary, nil
}

func (r *BoundaryRepository) Update(ctx context.Context, boundary *model.Boundary) error {
	return r.db.WithContext(ctx).
		Model(&model.Boundary{}).
		Where("asset_id = ? AND boundary_id = ?", boundary.AssetID, boundary.BoundaryID).
		Updates(map[string]interface{}{
			"center_lat": boundary.CenterLat,
			"center_lon": boundary.CenterLon,
			"radius":     boundary.Radius,
			"active":     boundary.Active,
		}).Error
}

func (r *BoundaryRepository) List(ctx context.Context, assetID string, activeOnly bool, limit int) ([]model.Boundary, error) {
	var boundaries []model.Boundary
	query := r.db.WithContext(ctx).Where("asset_id = ?", assetID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("boundary_id ASC").Find(&boundaries).Error; err != nil {
		return nil, err
	}
	return boundaries, nil
}

func (r *BoundaryRepository) CountForAsset(ctx context.Context, assetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Boundary{}).
		Where("asset_id = ?", assetID).
		Count(&count).Error
	return count, err
}
