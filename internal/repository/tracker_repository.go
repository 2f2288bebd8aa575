package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracking-service/internal/model"
)

// TrackerRepository persists per-asset tracking state: the current
// position slot, the history ring rows and the tracker bookkeeping row.
type TrackerRepository struct {
	db *gorm.DB
}

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

func (r *TrackerRepository) GetState(ctx context.Context, assetID string) (*model.TrackerState, error) {
	var state model.TrackerState
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *TrackerRepository) GetCurrent(ctx context.Context, assetID string) (*model.CurrentPosition, error) {
	var pos model.CurrentPosition
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&pos).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pos, nil
}

func (r *TrackerRepository) GetSlot(ctx context.Context, assetID string, index int) (*model.HistorySlot, error) {
	var slot model.HistorySlot
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND slot_index = ?", assetID, index).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// CommitSubmission writes one accepted submission atomically: the
// overwritten current position, the ring slot at the cursor, the updated
// tracker state and any violation records, all in one transaction.
func (r *TrackerRepository) CommitSubmission(
	ctx context.Context,
	current *model.CurrentPosition,
	slot *model.HistorySlot,
	state *model.TrackerState,
	violations []model.Violation,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			UpdateAll: true,
		}).Create(current).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "slot_index"}},
			UpdateAll: true,
		}).Create(slot).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			UpdateAll: true,
		}).Create(state).Error; err != nil {
			return err
		}

		for i := range violations {
			if err := tx.Create(&violations[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
