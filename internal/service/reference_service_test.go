package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-booking-backend/internal/repository/memory"
)

func TestCountryService(t *testing.T) {
	ctx := context.Background()
	svc := NewCountryService(memory.New().Countries())

	id, err := svc.CreateCountry(ctx, "Indonesia", "id")
	require.NoError(t, err)
	assert.Equal(t, "ID", id.Code)

	_, err = svc.CreateCountry(ctx, "Indonesia", "ID")
	assert.True(t, IsKind(err, KindConflict))

	_, err = svc.CreateCountry(ctx, "", "")
	assert.True(t, IsKind(err, KindValidation))

	updated, err := svc.UpdateCountry(ctx, id.ID, "Republic of Indonesia", "")
	require.NoError(t, err)
	assert.Equal(t, "Republic of Indonesia", updated.Name)
	assert.Equal(t, "ID", updated.Code)

	require.NoError(t, svc.DeleteCountry(ctx, id.ID))
	err = svc.DeleteCountry(ctx, id.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestCurrencyService(t *testing.T) {
	ctx := context.Background()
	svc := NewCurrencyService(memory.New().Currencies())

	eur, err := svc.CreateCurrency(ctx, "Euro", "eur", "€")
	require.NoError(t, err)
	assert.Equal(t, "EUR", eur.Code)

	_, err = svc.CreateCurrency(ctx, "Euro again", "EUR", "€")
	assert.True(t, IsKind(err, KindConflict))

	usd, err := svc.CreateCurrency(ctx, "US Dollar", "USD", "$")
	require.NoError(t, err)

	_, err = svc.UpdateCurrency(ctx, usd.ID, "", "EUR", "")
	assert.True(t, IsKind(err, KindConflict))

	all, err := svc.GetAllCurrencies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "EUR", all[0].Code)

	_, err = svc.GetCurrency(ctx, 999)
	assert.True(t, IsKind(err, KindNotFound))
}
