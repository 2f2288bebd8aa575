package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracking-service/internal/model"
)

func TestResolvePrecedence(t *testing.T) {
	store := newFakeRoleStore("owner-1")
	store.managers["manager-1"] = true
	store.devices["device-1"] = true
	// an identity can hold several roles; the highest one wins
	store.managers["owner-1"] = true
	store.devices["manager-1"] = true

	svc := NewRoleService(store)
	ctx := context.Background()

	role, err := svc.Resolve(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, role)

	role, err = svc.Resolve(ctx, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleFleetManager, role)

	role, err = svc.Resolve(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAuthorizedDevice, role)

	role, err = svc.Resolve(ctx, "stranger")
	require.NoError(t, err)
	assert.Equal(t, model.RoleNone, role)

	isDevice, err := svc.IsAuthorizedDevice(ctx, "manager-1")
	require.NoError(t, err)
	assert.True(t, isDevice, "device membership is visible independently of the resolved role")
}

func TestFleetManagerMutationOwnerOnly(t *testing.T) {
	store := newFakeRoleStore("owner-1")
	store.managers["manager-1"] = true
	svc := NewRoleService(store)
	ctx := context.Background()

	err := svc.AddFleetManager(ctx, model.Principal{Identity: "manager-1"}, "manager-2")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.AddFleetManager(ctx, model.Principal{Identity: "owner-1"}, "manager-2")
	require.NoError(t, err)
	assert.True(t, store.managers["manager-2"])

	err = svc.RemoveFleetManager(ctx, model.Principal{Identity: "manager-2"}, "manager-1")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.RemoveFleetManager(ctx, model.Principal{Identity: "owner-1"}, "manager-1")
	require.NoError(t, err)
	assert.False(t, store.managers["manager-1"])
}

func TestDeviceMutationOwnerOrManager(t *testing.T) {
	store := newFakeRoleStore("owner-1")
	store.managers["manager-1"] = true
	store.devices["device-1"] = true
	svc := NewRoleService(store)
	ctx := context.Background()

	err := svc.AddAuthorizedDevice(ctx, model.Principal{Identity: "device-1"}, "device-2")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.AddAuthorizedDevice(ctx, model.Principal{Identity: "manager-1"}, "device-2")
	require.NoError(t, err)
	assert.True(t, store.devices["device-2"])

	err = svc.RemoveAuthorizedDevice(ctx, model.Principal{Identity: "owner-1"}, "device-1")
	require.NoError(t, err)
	assert.False(t, store.devices["device-1"])
}

func TestTransferOwnership(t *testing.T) {
	store := newFakeRoleStore("owner-1")
	svc := NewRoleService(store)
	ctx := context.Background()

	err := svc.TransferOwnership(ctx, model.Principal{Identity: "stranger"}, "stranger")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.TransferOwnership(ctx, model.Principal{Identity: "owner-1"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.TransferOwnership(ctx, model.Principal{Identity: "owner-1"}, "owner-2")
	require.NoError(t, err)

	role, err := svc.Resolve(ctx, "owner-2")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, role)

	// the previous owner lost the slot
	err = svc.TransferOwnership(ctx, model.Principal{Identity: "owner-1"}, "owner-3")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
