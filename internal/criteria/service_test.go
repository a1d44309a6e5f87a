package criteria

import (
	"context"
	"testing"

	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewRepository(openCriteriaTestDB(t)))
	ctx := context.Background()

	_, err := svc.Create(ctx, UpsertCriterionInput{Text: "", ApplicableBrands: "All"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, UpsertCriterionInput{Text: "Water damage?", ApplicableBrands: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(ctx, UpsertCriterionInput{
		Text:             "Water damage?",
		ApplicableBrands: "All",
		DiscountValue:    decimal.NewFromInt(-10),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceLifecycle(t *testing.T) {
	svc := NewService(NewRepository(openCriteriaTestDB(t)))
	ctx := context.Background()

	created, err := svc.Create(ctx, UpsertCriterionInput{
		Text:             "Is the device water damaged?",
		ApplicableBrands: "All",
		DiscountValue:    decimal.NewFromInt(50),
		Active:           true,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	updated, err := svc.Update(ctx, created.ID, UpsertCriterionInput{
		Text:             "Is the device water damaged?",
		ApplicableBrands: "Samsung",
		DiscountValue:    decimal.NewFromInt(60),
		Active:           false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Samsung", updated.ApplicableBrands)
	assert.False(t, updated.Active)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
