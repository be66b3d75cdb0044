package usecase

import (
	"context"
	"errors"
	"testing"

	"service-booking/internal/data/entity"
	"service-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddListRemove(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	added, err := h.svc.Cart.AddItem(ctx, h.owner, &request.AddCartItemRequest{
		ServiceID:   "svc-clean",
		ServiceName: "Deep cleaning",
		UnitPrice:   1000,
		Quantity:    2,
	})
	require.NoError(t, err)

	cart, err := h.svc.Cart.GetCart(ctx, h.owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, entity.SourceCart, cart.Breakdown.Mode)
	assert.Equal(t, int64(2410), cart.Breakdown.Total)
	assert.Equal(t, int64(2410), cart.Breakdown.PayableNow)

	require.NoError(t, h.svc.Cart.RemoveItem(ctx, h.owner, added.ID))

	err = h.svc.Cart.RemoveItem(ctx, h.owner, added.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = h.svc.Cart.RemoveItem(ctx, h.owner, "not-a-uuid")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCartRemoveIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addCartItem(t, 1000, 1)

	items, err := h.cart.FindByUserID(ctx, h.owner)
	require.NoError(t, err)

	err = h.svc.Cart.RemoveItem(ctx, uuid.New(), items[0].ID.String())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, h.cart.count(h.owner))
}

func TestCartAddItemValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Cart.AddItem(context.Background(), h.owner, &request.AddCartItemRequest{ServiceName: "x", Quantity: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item", verr.Field)
	assert.Zero(t, h.cart.count(h.owner))
}

func TestDirectBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.svc.Cart.GetDirectBooking(ctx, h.owner)
	assert.True(t, errors.Is(err, ErrNotFound))

	set, err := h.svc.Cart.SetDirectBooking(ctx, h.owner, &request.DirectBookingRequest{
		Items: []request.DirectBookingItem{{ServiceID: "svc-ac", ServiceName: "AC repair", BookingCost: 500, InspectionCost: 200}},
	})
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.NotEmpty(t, set.Items[0].ID)
	assert.Equal(t, 1, set.Items[0].Quantity)
	assert.Equal(t, int64(500), set.Breakdown.PayableNow)
	assert.Equal(t, int64(200), set.Breakdown.PayableOnSite)

	got, err := h.svc.Cart.GetDirectBooking(ctx, h.owner)
	require.NoError(t, err)
	assert.Equal(t, set.Items, got.Items)

	require.NoError(t, h.svc.Cart.ClearDirectBooking(ctx, h.owner))
	_, err = h.svc.Cart.GetDirectBooking(ctx, h.owner)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDirectBookingRequiresItems(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Cart.SetDirectBooking(context.Background(), h.owner, &request.DirectBookingRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
}
