package service

import (
	"context"

	"tracking-service/internal/client"
	"tracking-service/internal/model"
)

// AssetRegistry is the external collaborator that owns asset lifecycle.
// GetAsset returns nil when the asset is unknown.
type AssetRegistry interface {
	GetAsset(ctx context.Context, assetID string) (*client.AssetStatus, error)
}

// BoundaryStore is the persistence behind the boundary registry.
type BoundaryStore interface {
	Create(ctx context.Context, boundary *model.Boundary) error
	Get(ctx context.Context, assetID, boundaryID string) (*model.Boundary, error)
	Update(ctx context.Context, boundary *model.Boundary) error
	List(ctx context.Context, assetID string, activeOnly bool, limit int) ([]model.Boundary, error)
	CountForAsset(ctx context.Context, assetID string) (int64, error)
}

type BoundaryService struct {
	boundaries BoundaryStore
	registry   AssetRegistry
	roles      *RoleService
	limit      int
}

func NewBoundaryService(boundaries BoundaryStore, registry AssetRegistry, roles *RoleService, limit int) *BoundaryService {
	return &BoundaryService{
		boundaries: boundaries,
		registry:   registry,
		roles:      roles,
		limit:      limit,
	}
}

type BoundaryInput struct {
	AssetID    string
	BoundaryID string
	CenterLat  int64
	CenterLon  int64
	Radius     int64
	Active     bool
}

func (s *BoundaryService) Create(ctx context.Context, caller model.Principal, input BoundaryInput) (*model.Boundary, error) {
	if err := s.requireManager(ctx, caller); err != nil {
		return nil, err
	}
	if input.AssetID == "" || input.BoundaryID == "" {
		return nil, ErrInvalidInput
	}
	if input.Radius <= 0 {
		return nil, ErrInvalidBoundary
	}

	asset, err := s.registry.GetAsset(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}

	existing, err := s.boundaries.Get(ctx, input.AssetID, input.BoundaryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBoundaryExists
	}

	count, err := s.boundaries.CountForAsset(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.limit) {
		return nil, ErrBoundaryLimit
	}

	boundary := &model.Boundary{
		AssetID:    input.AssetID,
		BoundaryID: input.BoundaryID,
		CenterLat:  input.CenterLat,
		CenterLon:  input.CenterLon,
		Radius:     input.Radius,
		Active:     true,
	}
	if err := s.boundaries.Create(ctx, boundary); err != nil {
		return nil, err
	}

	return boundary, nil
}

// Update replaces every mutable field; callers resupply all of them.
// Identity (asset id, boundary id) never changes.
func (s *BoundaryService) Update(ctx context.Context, caller model.Principal, input BoundaryInput) (*model.Boundary, error) {
	if err := s.requireManager(ctx, caller); err != nil {
		return nil, err
	}
	if input.Radius <= 0 {
		return nil, ErrInvalidBoundary
	}

	existing, err := s.boundaries.Get(ctx, input.AssetID, input.BoundaryID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBoundaryNotFound
	}

	existing.CenterLat = input.CenterLat
	existing.CenterLon = input.CenterLon
	existing.Radius = input.Radius
	existing.Active = input.Active

	if err := s.boundaries.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *BoundaryService) Get(ctx context.Context, assetID, boundaryID string) (*model.Boundary, error) {
	boundary, err := s.boundaries.Get(ctx, assetID, boundaryID)
	if err != nil {
		return nil, err
	}
	if boundary == nil {
		return nil, ErrBoundaryNotFound
	}
	return boundary, nil
}

func (s *BoundaryService) List(ctx context.Context, assetID string, activeOnly bool) ([]model.Boundary, error) {
	return s.boundaries.List(ctx, assetID, activeOnly, s.limit)
}

func (s *BoundaryService) requireManager(ctx context.Context, caller model.Principal) error {
	role, err := s.roles.Resolve(ctx, caller.Identity)
	if err != nil {
		return err
	}
	if role != model.RoleOwner && role != model.RoleFleetManager {
		return ErrNotAuthorized
	}
	return nil
}
