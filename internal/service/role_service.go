package service

import (
	"context"

	"tracking-service/internal/model"
)

// RoleStore is the injected authorization backend. The gorm
// implementation lives in internal/repository.
type RoleStore interface {
	Owner(ctx context.Context) (*model.OwnerState, error)
	IsFleetManager(ctx context.Context, identity string) (bool, error)
	IsAuthorizedDevice(ctx context.Context, identity string) (bool, error)
	AddFleetManager(ctx context.Context, identity string) error
	RemoveFleetManager(ctx context.Context, identity string) error
	AddAuthorizedDevice(ctx context.Context, identity string) error
	RemoveAuthorizedDevice(ctx context.Context, identity string) error
	TransferOwner(ctx context.Context, current, newOwner string, version int64) (bool, error)
}

// RoleService resolves caller identities to permission levels and
// guards every role-set mutation.
type RoleService struct {
	roles RoleStore
}

func NewRoleService(roles RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

// Resolve returns the highest-precedence role the identity holds:
// Owner > FleetManager > AuthorizedDevice > None.
func (s *RoleService) Resolve(ctx context.Context, identity string) (model.Role, error) {
	owner, err := s.roles.Owner(ctx)
	if err != nil {
		return model.RoleNone, err
	}
	if owner != nil && owner.Identity == identity {
		return model.RoleOwner, nil
	}

	isManager, err := s.roles.IsFleetManager(ctx, identity)
	if err != nil {
		return model.RoleNone, err
	}
	if isManager {
		return model.RoleFleetManager, nil
	}

	isDevice, err := s.roles.IsAuthorizedDevice(ctx, identity)
	if err != nil {
		return model.RoleNone, err
	}
	if isDevice {
		return model.RoleAuthorizedDevice, nil
	}

	return model.RoleNone, nil
}

// IsAuthorizedDevice reports device membership independently of the
// resolved role, for callers that hold several roles at once.
func (s *RoleService) IsAuthorizedDevice(ctx context.Context, identity string) (bool, error) {
	return s.roles.IsAuthorizedDevice(ctx, identity)
}

func (s *RoleService) AddFleetManager(ctx context.Context, caller model.Principal, identity string) error {
	if identity == "" {
		return ErrInvalidInput
	}
	if err := s.requireOwner(ctx, caller); err != nil {
		return err
	}
	return s.roles.AddFleetManager(ctx, identity)
}

func (s *RoleService) RemoveFleetManager(ctx context.Context, caller model.Principal, identity string) error {
	if identity == "" {
		return ErrInvalidInput
	}
	if err := s.requireOwner(ctx, caller); err != nil {
		return err
	}
	return s.roles.RemoveFleetManager(ctx, identity)
}

func (s *RoleService) AddAuthorizedDevice(ctx context.Context, caller model.Principal, identity string) error {
	if identity == "" {
		return ErrInvalidInput
	}
	if err := s.requireManager(ctx, caller); err != nil {
		return err
	}
	return s.roles.AddAuthorizedDevice(ctx, identity)
}

func (s *RoleService) RemoveAuthorizedDevice(ctx context.Context, caller model.Principal, identity string) error {
	if identity == "" {
		return ErrInvalidInput
	}
	if err := s.requireManager(ctx, caller); err != nil {
		return err
	}
	return s.roles.RemoveAuthorizedDevice(ctx, identity)
}

// TransferOwnership moves the owner slot to newOwner. The compare-and-set
// against the stored version means a concurrent transfer by the same
// owner can win at most once.
func (s *RoleService) TransferOwnership(ctx context.Context, caller model.Principal, newOwner string) error {
	if newOwner == "" {
		return ErrInvalidInput
	}

	owner, err := s.roles.Owner(ctx)
	if err != nil {
		return err
	}
	if owner == nil || owner.Identity != caller.Identity {
		return ErrNotAuthorized
	}

	ok, err := s.roles.TransferOwner(ctx, caller.Identity, newOwner, owner.Version)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthorized
	}
	return nil
}

func (s *RoleService) requireOwner(ctx context.Context, caller model.Principal) error {
	role, err := s.Resolve(ctx, caller.Identity)
	if err != nil {
		return err
	}
	if role != model.RoleOwner {
		return ErrNotAuthorized
	}
	return nil
}

func (s *RoleService) requireManager(ctx context.Context, caller model.Principal) error {
	role, err := s.Resolve(ctx, caller.Identity)
	if err != nil {
		return err
	}
	if role != model.RoleOwner && role != model.RoleFleetManager {
		return ErrNotAuthorized
	}
	return nil
}
