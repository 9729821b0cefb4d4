package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProductMergesByID(t *testing.T) {
	cart := &Cart{}
	id := uuid.New()

	cart.AddProduct(id, "Crema protectora", 1, 50)
	cart.AddProduct(id, "Crema protectora", 2, 50)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestAddProductDifferentIDsStaySeparate(t *testing.T) {
	cart := &Cart{}

	cart.AddProduct(uuid.New(), "Crema protectora", 1, 50)
	cart.AddProduct(uuid.New(), "Cepillo premium", 1, 80)

	assert.Len(t, cart.Lines, 2)
}

func TestAddServiceWithoutShoeMergesByID(t *testing.T) {
	cart := &Cart{}
	id := uuid.New()

	require.NoError(t, cart.AddService(CartLine{ItemID: id, Name: "Limpieza básica", Quantity: 1, UnitPrice: 150}))
	require.NoError(t, cart.AddService(CartLine{ItemID: id, Name: "Limpieza básica", Quantity: 2, UnitPrice: 150}))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestAddServiceWithShoeNeverMerges(t *testing.T) {
	cart := &Cart{}
	id := uuid.New()

	require.NoError(t, cart.AddService(CartLine{
		ItemID: id, Name: "Limpieza premium", UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90",
	}))
	require.NoError(t, cart.AddService(CartLine{
		ItemID: id, Name: "Limpieza premium", UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 97",
	}))

	assert.Len(t, cart.Lines, 2)
}

func TestAddServiceRejectsDuplicatePair(t *testing.T) {
	cart := &Cart{}
	id := uuid.New()

	require.NoError(t, cart.AddService(CartLine{
		ItemID: id, Name: "Limpieza premium", UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90", ShoeDescription: "Blancos",
	}))

	// Same triple after trimming and lowercasing is the same pair.
	err := cart.AddService(CartLine{
		ItemID: id, Name: "Limpieza premium", UnitPrice: 200,
		ShoeBrand: "  nike ", ShoeModel: "AIR MAX 90", ShoeDescription: "blancos",
	})
	assert.ErrorIs(t, err, ErrDuplicatePair)
	assert.Len(t, cart.Lines, 1)
}

func TestAddServiceDifferentDescriptionIsNewLine(t *testing.T) {
	cart := &Cart{}
	id := uuid.New()

	require.NoError(t, cart.AddService(CartLine{
		ItemID: id, UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90", ShoeDescription: "Blancos",
	}))
	require.NoError(t, cart.AddService(CartLine{
		ItemID: id, UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90", ShoeDescription: "Negros",
	}))

	assert.Len(t, cart.Lines, 2)
}

func TestAddServiceShoePairAllowedOnDifferentService(t *testing.T) {
	cart := &Cart{}

	require.NoError(t, cart.AddService(CartLine{
		ItemID: uuid.New(), UnitPrice: 200,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90",
	}))
	require.NoError(t, cart.AddService(CartLine{
		ItemID: uuid.New(), UnitPrice: 350,
		ShoeBrand: "Nike", ShoeModel: "Air Max 90",
	}))

	assert.Len(t, cart.Lines, 2)
}

func TestHasService(t *testing.T) {
	cart := &Cart{}
	assert.False(t, cart.HasService())

	cart.AddProduct(uuid.New(), "Crema protectora", 1, 50)
	assert.False(t, cart.HasService())

	require.NoError(t, cart.AddService(CartLine{ItemID: uuid.New(), UnitPrice: 150}))
	assert.True(t, cart.HasService())
}

func TestTotalsSplitIVA(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddService(CartLine{ItemID: uuid.New(), Name: "Limpieza premium", Quantity: 1, UnitPrice: 200}))
	cart.AddProduct(uuid.New(), "Crema protectora", 2, 50)

	totals := cart.Totals()

	assert.InDelta(t, 300.0, totals.Total, 0.001)
	assert.InDelta(t, 258.62, totals.Subtotal, 0.01)
	assert.InDelta(t, 41.38, totals.IVA, 0.01)
	assert.InDelta(t, totals.Total, totals.Subtotal+totals.IVA, 0.0001)
}

func TestSplitIVAZero(t *testing.T) {
	totals := SplitIVA(0)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.IVA)
	assert.Zero(t, totals.Total)
}

func TestCashChange(t *testing.T) {
	assert.InDelta(t, 200.0, CashChange(300, 500), 0.001)
	assert.Zero(t, CashChange(300, 300))
	// Partial cash payments hand nothing back.
	assert.Zero(t, CashChange(300, 100))
}
