package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tracking-service/internal/events"
	"tracking-service/internal/geo"
	"tracking-service/internal/model"
)

// TrackerStore persists per-asset tracking state. CommitSubmission must
// apply all four pieces atomically.
type TrackerStore interface {
	GetState(ctx context.Context, assetID string) (*model.TrackerState, error)
	GetCurrent(ctx context.Context, assetID string) (*model.CurrentPosition, error)
	GetSlot(ctx context.Context, assetID string, index int) (*model.HistorySlot, error)
	CommitSubmission(ctx context.Context, current *model.CurrentPosition, slot *model.HistorySlot, state *model.TrackerState, violations []model.Violation) error
}

// ViolationReader is the read side of the violation ledger.
type ViolationReader interface {
	Get(ctx context.Context, assetID string, violationID int64) (*model.Violation, error)
	List(ctx context.Context, assetID string, limit int) ([]model.Violation, error)
}

const violationPageLimit = 100

// TrackingService runs the submission pipeline: registry check, role
// check, validation, ring update, compliance evaluation and ledger
// append. Submissions for one asset are serialized by a per-asset lock;
// different assets never contend.
type TrackingService struct {
	registry   AssetRegistry
	roles      *RoleService
	trackers   TrackerStore
	violations ViolationReader
	evaluator  *Evaluator
	publisher  events.Publisher
	capacity   int
	log        zerolog.Logger

	// locks holds one mutex per asset ever submitted; entries are never
	// freed, so memory grows with the fleet size, not with traffic. The
	// lock only serializes within this process — across replicas the
	// idx_asset_violation unique index makes racing commits fail rather
	// than interleave.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTrackingService(
	registry AssetRegistry,
	roles *RoleService,
	trackers TrackerStore,
	violations ViolationReader,
	evaluator *Evaluator,
	publisher events.Publisher,
	capacity int,
	log zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		registry:   registry,
		roles:      roles,
		trackers:   trackers,
		violations: violations,
		evaluator:  evaluator,
		publisher:  publisher,
		capacity:   capacity,
		log:        log,
		locks:      make(map[string]*sync.Mutex),
	}
}

// SubmitLocation records a position sample for an asset and returns the
// ids of any violations it produced. Validation runs fully before any
// write; a rejected submission leaves no trace.
func (s *TrackingService) SubmitLocation(ctx context.Context, caller model.Principal, assetID string, sample model.PositionSample) ([]int64, error) {
	asset, err := s.registry.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil || !asset.Active {
		return nil, ErrAssetNotFound
	}

	role, err := s.roles.Resolve(ctx, caller.Identity)
	if err != nil {
		return nil, err
	}
	if role == model.RoleNone {
		return nil, ErrNotAuthorized
	}

	if !geo.ValidCoordinates(sample.Latitude, sample.Longitude) {
		return nil, ErrInvalidCoordinates
	}
	if sample.Heading < 0 || sample.Heading > geo.MaxHeading {
		return nil, ErrInvalidCoordinates
	}
	if sample.Speed < 0 {
		return nil, ErrInvalidCoordinates
	}
	if sample.Timestamp < 0 {
		return nil, ErrInvalidTimestamp
	}

	lock := s.assetLock(assetID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.trackers.GetState(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &model.TrackerState{AssetID: assetID, LastTimestamp: -1}
	}
	if sample.Timestamp <= state.LastTimestamp {
		return nil, ErrInvalidTimestamp
	}

	candidates, err := s.evaluator.Evaluate(ctx, assetID, sample)
	if err != nil {
		return nil, err
	}

	violations := make([]model.Violation, 0, len(candidates))
	ids := make([]int64, 0, len(candidates))
	for i, candidate := range candidates {
		violationID := state.NextViolationID + int64(i)
		violations = append(violations, model.Violation{
			AssetID:          assetID,
			ViolationID:      violationID,
			BoundaryID:       candidate.BoundaryID,
			Latitude:         candidate.Latitude,
			Longitude:        candidate.Longitude,
			Timestamp:        candidate.Timestamp,
			DistanceExceeded: candidate.DistanceExceeded,
		})
		ids = append(ids, violationID)
	}

	slotIndex := state.Cursor

	current := &model.CurrentPosition{
		AssetID:   assetID,
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Altitude:  sample.Altitude,
		Timestamp: sample.Timestamp,
		Speed:     sample.Speed,
		Heading:   sample.Heading,
	}
	slot := &model.HistorySlot{
		AssetID:   assetID,
		SlotIndex: slotIndex,
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Altitude:  sample.Altitude,
		Timestamp: sample.Timestamp,
		Speed:     sample.Speed,
		Heading:   sample.Heading,
	}

	state.Cursor = (state.Cursor + 1) % s.capacity
	if state.Count < s.capacity {
		state.Count++
	}
	state.LastTimestamp = sample.Timestamp
	state.NextViolationID += int64(len(violations))

	if err := s.trackers.CommitSubmission(ctx, current, slot, state, violations); err != nil {
		return nil, err
	}

	for _, violation := range violations {
		if err := s.publisher.PublishViolation(violation); err != nil {
			s.log.Warn().Err(err).
				Str("asset_id", assetID).
				Int64("violation_id", violation.ViolationID).
				Msg("violation publish failed")
		}
		s.log.Info().
			Str("asset_id", assetID).
			Str("boundary_id", violation.BoundaryID).
			Int64("violation_id", violation.ViolationID).
			Int64("distance_exceeded", violation.DistanceExceeded).
			Msg("boundary violation recorded")
	}

	return ids, nil
}

func (s *TrackingService) GetCurrentPosition(ctx context.Context, assetID string) (*model.PositionSample, error) {
	current, err := s.trackers.GetCurrent(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrAssetNotFound
	}
	sample := current.Sample()
	return &sample, nil
}

// GetHistoryAt addresses the ring by physical slot index as written, not
// by recency. Callers wanting the most recent K samples derive offsets
// from the cursor and count themselves.
func (s *TrackingService) GetHistoryAt(ctx context.Context, assetID string, index int) (*model.PositionSample, error) {
	if index < 0 || index >= s.capacity {
		return nil, ErrNotFound
	}

	state, err := s.trackers.GetState(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if state == nil || index >= state.Count {
		return nil, ErrNotFound
	}

	slot, err := s.trackers.GetSlot(ctx, assetID, index)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	sample := slot.Sample()
	return &sample, nil
}

func (s *TrackingService) GetHistoryCount(ctx context.Context, assetID string) (int, error) {
	state, err := s.trackers.GetState(ctx, assetID)
	if err != nil {
		return 0, err
	}
	if state == nil {
		return 0, ErrAssetNotFound
	}
	return state.Count, nil
}

// GetHistoryState exposes cursor and count so clients can compute
// recency-relative offsets.
func (s *TrackingService) GetHistoryState(ctx context.Context, assetID string) (cursor, count int, err error) {
	state, err := s.trackers.GetState(ctx, assetID)
	if err != nil {
		return 0, 0, err
	}
	if state == nil {
		return 0, 0, ErrAssetNotFound
	}
	return state.Cursor, state.Count, nil
}

func (s *TrackingService) GetViolation(ctx context.Context, assetID string, violationID int64) (*model.Violation, error) {
	violation, err := s.violations.Get(ctx, assetID, violationID)
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, ErrNotFound
	}
	return violation, nil
}

func (s *TrackingService) ListViolations(ctx context.Context, assetID string) ([]model.Violation, error) {
	return s.violations.List(ctx, assetID, violationPageLimit)
}

func (s *TrackingService) assetLock(assetID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[assetID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[assetID] = lock
	}
	return lock
}
