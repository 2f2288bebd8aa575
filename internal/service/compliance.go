package service

import (
	"context"

	"tracking-service/internal/geo"
	"tracking-service/internal/model"
)

// BoundaryLister is the read side of the boundary registry the
// evaluator consumes.
type BoundaryLister interface {
	List(ctx context.Context, assetID string, activeOnly bool, limit int) ([]model.Boundary, error)
}

// Evaluator tests a position sample against every active boundary of an
// asset. The distance metric is the integer planar one from internal/geo,
// and the boundary edge is inclusive: a sample exactly on the radius is
// not a violation.
type Evaluator struct {
	boundaries    BoundaryLister
	boundaryLimit int
}

func NewEvaluator(boundaries BoundaryLister, boundaryLimit int) *Evaluator {
	return &Evaluator{boundaries: boundaries, boundaryLimit: boundaryLimit}
}

func (e *Evaluator) Evaluate(ctx context.Context, assetID string, sample model.PositionSample) ([]model.ViolationCandidate, error) {
	active, err := e.boundaries.List(ctx, assetID, true, e.boundaryLimit)
	if err != nil {
		return nil, err
	}

	var candidates []model.ViolationCandidate
	for _, boundary := range active {
		distance := geo.Distance(sample.Latitude, sample.Longitude, boundary.CenterLat, boundary.CenterLon)
		if distance <= boundary.Radius {
			continue
		}
		candidates = append(candidates, model.ViolationCandidate{
			BoundaryID:       boundary.BoundaryID,
			Latitude:         sample.Latitude,
			Longitude:        sample.Longitude,
			Timestamp:        sample.Timestamp,
			DistanceExceeded: distance - boundary.Radius,
		})
	}

	return candidates, nil
}
