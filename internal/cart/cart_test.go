package cart

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"
	"time"

	"alhyra_organics/internal/coupon"
	"alhyra_organics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	abc     = models.Product{ID: "1", Name: "ABC Malt", Price: decimal.NewFromInt(225), Stock: 50}
	talbina = models.Product{ID: "6", Name: "Talbina", Price: decimal.NewFromInt(125), Stock: 40}
	now     = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	coupons = []models.Coupon{
		{Code: "ORGANIC10", DiscountPercentage: 10, ExpiryDate: time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Code: "HALF", DiscountPercentage: 50, ExpiryDate: time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Code: "OLD", DiscountPercentage: 20, ExpiryDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
)

func TestAddMergesLines(t *testing.T) {
	var c Cart
	c.Add(abc, 1)
	c.Add(talbina, 0)
	c.Add(abc, 2)

	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	var c Cart
	c.Add(abc, 2)

	assert.True(t, c.UpdateQuantity("1", -5))
	assert.Equal(t, 1, c.Items[0].Quantity)

	assert.True(t, c.UpdateQuantity("1", 3))
	assert.Equal(t, 4, c.Items[0].Quantity)

	assert.False(t, c.UpdateQuantity("missing", 1))
}

func TestQuantitiesStayBounded(t *testing.T) {
	var c Cart
	c.Add(abc, math.MaxInt)
	c.Add(abc, 1)
	require.Len(t, c.Items, 1)
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)
	assert.True(t, c.Quote().Subtotal.IsPositive())

	assert.True(t, c.UpdateQuantity("1", math.MaxInt))
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)

	assert.True(t, c.UpdateQuantity("1", math.MinInt))
	assert.Equal(t, 1, c.Items[0].Quantity)

	c.Add(abc, math.MinInt)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestRemove(t *testing.T) {
	var c Cart
	c.Add(abc, 1)
	c.Add(talbina, 1)
	c.Remove("1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "6", c.Items[0].ID)

	c.Remove("missing")
	assert.Len(t, c.Items, 1)
}

func TestApplyCouponReplacesPrevious(t *testing.T) {
	var c Cart
	c.Add(abc, 4)

	_, err := c.ApplyCoupon("organic10", coupons, now)
	require.NoError(t, err)
	_, err = c.ApplyCoupon("HALF", coupons, now)
	require.NoError(t, err)

	require.NotNil(t, c.Coupon)
	assert.Equal(t, "HALF", c.Coupon.Code)
	assert.True(t, c.Quote().Discount.Equal(decimal.NewFromInt(450)))
}

func TestApplyExpiredCouponLeavesCartUnchanged(t *testing.T) {
	var c Cart
	c.Add(abc, 1)
	_, err := c.ApplyCoupon("ORGANIC10", coupons, now)
	require.NoError(t, err)
	before := c.Quote()

	_, err = c.ApplyCoupon("OLD", coupons, now)
	assert.Equal(t, coupon.Expired, coupon.KindOf(err))
	assert.Equal(t, "ORGANIC10", c.Coupon.Code)
	assert.True(t, before.Total.Equal(c.Quote().Total))
	assert.Len(t, c.Items, 1)
}

func TestRemoveCouponIsIdempotent(t *testing.T) {
	var c Cart
	c.RemoveCoupon()
	assert.Nil(t, c.Coupon)

	_, _ = c.ApplyCoupon("ORGANIC10", coupons, now)
	c.RemoveCoupon()
	c.RemoveCoupon()
	assert.Nil(t, c.Coupon)
}

func TestClear(t *testing.T) {
	var c Cart
	c.Add(abc, 1)
	_, _ = c.ApplyCoupon("ORGANIC10", coupons, now)
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Coupon)
}

func TestSnapshotIsDetached(t *testing.T) {
	var c Cart
	c.Add(abc, 1)
	snap := c.Snapshot()
	c.UpdateQuantity("1", 5)
	c.Items[0].Name = "changed"
	assert.Equal(t, 1, snap[0].Quantity)
	assert.Equal(t, "ABC Malt", snap[0].Name)
}

func TestCartSurvivesGob(t *testing.T) {
	var c Cart
	c.Add(abc, 2)
	_, _ = c.ApplyCoupon("ORGANIC10", coupons, now)

	var buf bytes.Buffer
	var in any = c
	require.NoError(t, gob.NewEncoder(&buf).Encode(&in))

	var out any
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))
	got, ok := out.(Cart)
	require.True(t, ok)
	assert.True(t, c.Quote().Total.Equal(got.Quote().Total))
	assert.Equal(t, "ORGANIC10", got.Coupon.Code)
}
