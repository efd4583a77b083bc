package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusConfirmed.IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())

	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	//pendingから
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusDelivered))

	//confirmedから
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusPending))

	//shippedから
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))

	//終端からはどこへも行けない
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestDecideRemoval(t *testing.T) {
	//参照が残っていればソフトデリート
	assert.Equal(t, RemovalDeactivate, DecideRemoval(true))
	//参照が無ければ物理削除
	assert.Equal(t, RemovalHardDelete, DecideRemoval(false))
}

func TestProductUnit_IsValid(t *testing.T) {
	assert.True(t, UnitKG.IsValid())
	assert.True(t, UnitPiece.IsValid())
	assert.True(t, UnitBunch.IsValid())

	assert.False(t, ProductUnit("liter").IsValid())
	assert.False(t, ProductUnit("").IsValid())
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, RoleCustomer.IsStaff())
	assert.True(t, RoleStaff.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}
