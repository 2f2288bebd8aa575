package service

import (
	"context"
	"fmt"
	"sync"

	"tracking-service/internal/client"
	"tracking-service/internal/model"
)

type fakeRegistry struct {
	assets map[string]*client.AssetStatus
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{assets: make(map[string]*client.AssetStatus)}
}

func (r *fakeRegistry) add(assetID string, active bool) {
	r.assets[assetID] = &client.AssetStatus{ID: assetID, Active: active}
}

func (r *fakeRegistry) GetAsset(_ context.Context, assetID string) (*client.AssetStatus, error) {
	return r.assets[assetID], nil
}

type fakeRoleStore struct {
	owner    model.OwnerState
	managers map[string]bool
	devices  map[string]bool
}

func newFakeRoleStore(owner string) *fakeRoleStore {
	return &fakeRoleStore{
		owner:    model.OwnerState{ID: 1, Identity: owner},
		managers: make(map[string]bool),
		devices:  make(map[string]bool),
	}
}

func (s *fakeRoleStore) Owner(context.Context) (*model.OwnerState, error) {
	state := s.owner
	return &state, nil
}

func (s *fakeRoleStore) IsFleetManager(_ context.Context, identity string) (bool, error) {
	return s.managers[identity], nil
}

func (s *fakeRoleStore) IsAuthorizedDevice(_ context.Context, identity string) (bool, error) {
	return s.devices[identity], nil
}

func (s *fakeRoleStore) AddFleetManager(_ context.Context, identity string) error {
	s.managers[identity] = true
	return nil
}

func (s *fakeRoleStore) RemoveFleetManager(_ context.Context, identity string) error {
	delete(s.managers, identity)
	return nil
}

func (s *fakeRoleStore) AddAuthorizedDevice(_ context.Context, identity string) error {
	s.devices[identity] = true
	return nil
}

func (s *fakeRoleStore) RemoveAuthorizedDevice(_ context.Context, identity string) error {
	delete(s.devices, identity)
	return nil
}

func (s *fakeRoleStore) TransferOwner(_ context.Context, current, newOwner string, version int64) (bool, error) {
	if s.owner.Identity != current || s.owner.Version != version {
		return false, nil
	}
	s.owner.Identity = newOwner
	s.owner.Version = version + 1
	return true, nil
}

type fakeBoundaryStore struct {
	boundaries map[string]*model.Boundary
}

func newFakeBoundaryStore() *fakeBoundaryStore {
	return &fakeBoundaryStore{boundaries: make(map[string]*model.Boundary)}
}

func boundaryKey(assetID, boundaryID string) string {
	return assetID + "/" + boundaryID
}

func (s *fakeBoundaryStore) Create(_ context.Context, boundary *model.Boundary) error {
	copied := *boundary
	s.boundaries[boundaryKey(boundary.AssetID, boundary.BoundaryID)] = &copied
	return nil
}

func (s *fakeBoundaryStore) Get(_ context.Context, assetID, boundaryID string) (*model.Boundary, error) {
	boundary, ok := s.boundaries[boundaryKey(assetID, boundaryID)]
	if !ok {
		return nil, nil
	}
	copied := *boundary
	return &copied, nil
}

func (s *fakeBoundaryStore) Update(_ context.Context, boundary *model.Boundary) error {
	key := boundaryKey(boundary.AssetID, boundary.BoundaryID)
	if _, ok := s.boundaries[key]; !ok {
		return fmt.Errorf("boundary missing: %s", key)
	}
	copied := *boundary
	s.boundaries[key] = &copied
	return nil
}

func (s *fakeBoundaryStore) List(_ context.Context, assetID string, activeOnly bool, limit int) ([]model.Boundary, error) {
	var out []model.Boundary
	for _, boundary := range s.boundaries {
		if boundary.AssetID != assetID {
			continue
		}
		if activeOnly && !boundary.Active {
			continue
		}
		out = append(out, *boundary)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeBoundaryStore) CountForAsset(_ context.Context, assetID string) (int64, error) {
	var count int64
	for _, boundary := range s.boundaries {
		if boundary.AssetID == assetID {
			count++
		}
	}
	return count, nil
}

type slotKey struct {
	assetID string
	index   int
}

type fakeTrackerStore struct {
	mu         sync.Mutex
	states     map[string]model.TrackerState
	currents   map[string]model.CurrentPosition
	slots      map[slotKey]model.HistorySlot
	violations []model.Violation
	commits    int
}

func newFakeTrackerStore() *fakeTrackerStore {
	return &fakeTrackerStore{
		states:   make(map[string]model.TrackerState),
		currents: make(map[string]model.CurrentPosition),
		slots:    make(map[slotKey]model.HistorySlot),
	}
}

func (s *fakeTrackerStore) GetState(_ context.Context, assetID string) (*model.TrackerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[assetID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *fakeTrackerStore) GetCurrent(_ context.Context, assetID string) (*model.CurrentPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.currents[assetID]
	if !ok {
		return nil, nil
	}
	return &current, nil
}

func (s *fakeTrackerStore) GetSlot(_ context.Context, assetID string, index int) (*model.HistorySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotKey{assetID, index}]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (s *fakeTrackerStore) CommitSubmission(_ context.Context, current *model.CurrentPosition, slot *model.HistorySlot, state *model.TrackerState, violations []model.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currents[current.AssetID] = *current
	s.slots[slotKey{slot.AssetID, slot.SlotIndex}] = *slot
	s.states[state.AssetID] = *state
	s.violations = append(s.violations, violations...)
	s.commits++
	return nil
}

func (s *fakeTrackerStore) Get(_ context.Context, assetID string, violationID int64) (*model.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.violations {
		if s.violations[i].AssetID == assetID && s.violations[i].ViolationID == violationID {
			violation := s.violations[i]
			return &violation, nil
		}
	}
	return nil, nil
}

func (s *fakeTrackerStore) List(_ context.Context, assetID string, limit int) ([]model.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Violation
	for _, violation := range s.violations {
		if violation.AssetID != assetID {
			continue
		}
		out = append(out, violation)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []model.Violation
}

func (p *fakePublisher) PublishViolation(violation model.Violation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, violation)
	return nil
}

func (p *fakePublisher) Close() {}
