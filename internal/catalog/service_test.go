package catalog

import (
	"context"
	"testing"

	"github.com/mateovilla/tradein-backend/pkg/db"
	"github.com/mateovilla/tradein-backend/pkg/enums"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingFlusher struct {
	calls int
}

func (f *recordingFlusher) Flush(context.Context) error {
	f.calls++
	return nil
}

func newTestService(t *testing.T) (Service, *Repository, *recordingFlusher, *gorm.DB) {
	t.Helper()
	conn := openCatalogTestDB(t)
	repo := NewRepository(conn)
	flusher := &recordingFlusher{}
	svc := NewService(db.FromConn(conn), repo, flusher, nil)
	return svc, repo, flusher, conn
}

func TestCreateDeviceValidatesInput(t *testing.T) {
	svc, _, flusher, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateDevice(ctx, CreateDeviceInput{Name: "   ", BasePrice: decimal.NewFromInt(100)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.CreateDevice(ctx, CreateDeviceInput{Name: "iPhone 12", BasePrice: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	assert.Zero(t, flusher.calls)
}

func TestDeviceMutationsFlushSearchCache(t *testing.T) {
	svc, _, flusher, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateDevice(ctx, CreateDeviceInput{
		Name:      "iPhone 12",
		Brand:     "Apple",
		BasePrice: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, flusher.calls)

	newName := "iPhone 12 Pro"
	_, err = svc.UpdateDevice(ctx, created.ID, UpdateDeviceInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, 2, flusher.calls)

	require.NoError(t, svc.DeleteDevice(ctx, created.ID))
	assert.Equal(t, 3, flusher.calls)
}

func TestDeleteDeviceUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, flusher, _ := newTestService(t)

	err := svc.DeleteDevice(context.Background(), 424242)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Zero(t, flusher.calls)
}

func TestAttributeLifecycle(t *testing.T) {
	svc, repo, flusher, _ := newTestService(t)
	ctx := context.Background()

	device, err := svc.CreateDevice(ctx, CreateDeviceInput{
		Name:      "Galaxy S21",
		Brand:     "Samsung",
		BasePrice: decimal.NewFromInt(450),
	})
	require.NoError(t, err)

	attr, err := svc.CreateAttribute(ctx, device.ID, CreateAttributeInput{Name: "Screen Condition"})
	require.NoError(t, err)
	assert.Equal(t, enums.DiscountTypeFixed, attr.DiscountType)

	pct := enums.DiscountTypePercentage
	updated, err := svc.UpdateAttribute(ctx, attr.ID, UpdateAttributeInput{DiscountType: &pct})
	require.NoError(t, err)
	assert.Equal(t, enums.DiscountTypePercentage, updated.DiscountType)

	bad := enums.DiscountType("half-off")
	_, err = svc.UpdateAttribute(ctx, attr.ID, UpdateAttributeInput{DiscountType: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	opt, err := svc.CreateOption(ctx, attr.ID, CreateOptionInput{
		Label:         "Cracked",
		DiscountValue: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAttribute(ctx, attr.ID))
	_, err = repo.FindOption(ctx, opt.ID)
	assert.Error(t, err)

	// attribute and option writes never touch the search cache
	assert.Equal(t, 1, flusher.calls)
}

func TestCreateAttributeUnknownDevice(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateAttribute(context.Background(), 999, CreateAttributeInput{Name: "Screen"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateOptionValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	device, err := svc.CreateDevice(ctx, CreateDeviceInput{Name: "Pixel 6", Brand: "Google", BasePrice: decimal.NewFromInt(300)})
	require.NoError(t, err)
	attr, err := svc.CreateAttribute(ctx, device.ID, CreateAttributeInput{Name: "Back Glass"})
	require.NoError(t, err)

	_, err = svc.CreateOption(ctx, attr.ID, CreateOptionInput{Label: ""})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.CreateOption(ctx, attr.ID, CreateOptionInput{
		Label:         "Cracked",
		DiscountValue: decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
