package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/mateovilla/tradein-backend/pkg/db"
	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"github.com/mateovilla/tradein-backend/pkg/enums"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes admin catalog management operations.
type Service interface {
	GetDevice(ctx context.Context, id uint64) (*DeviceDTO, error)
	CreateDevice(ctx context.Context, input CreateDeviceInput) (*DeviceDTO, error)
	UpdateDevice(ctx context.Context, id uint64, input UpdateDeviceInput) (*DeviceDTO, error)
	DeleteDevice(ctx context.Context, id uint64) error

	CreateAttribute(ctx context.Context, deviceID uint64, input CreateAttributeInput) (*AttributeDTO, error)
	UpdateAttribute(ctx context.Context, attributeID uint64, input UpdateAttributeInput) (*AttributeDTO, error)
	DeleteAttribute(ctx context.Context, attributeID uint64) error

	CreateOption(ctx context.Context, attributeID uint64, input CreateOptionInput) (*OptionDTO, error)
	UpdateOption(ctx context.Context, optionID uint64, input UpdateOptionInput) (*OptionDTO, error)
	DeleteOption(ctx context.Context, optionID uint64) error
}

// CreateDeviceInput holds the validated payload to create a device.
type CreateDeviceInput struct {
	Name      string
	Brand     string
	BasePrice decimal.Decimal
}

// UpdateDeviceInput holds optional mutation values for a device.
type UpdateDeviceInput struct {
	Name      *string
	Brand     *string
	BasePrice *decimal.Decimal
}

// CreateAttributeInput holds the validated payload to create an attribute.
type CreateAttributeInput struct {
	Name         string
	DiscountType enums.DiscountType
}

// UpdateAttributeInput holds optional mutation values for an attribute.
type UpdateAttributeInput struct {
	Name         *string
	DiscountType *enums.DiscountType
}

// CreateOptionInput holds the validated payload to create an option.
type CreateOptionInput struct {
	Label         string
	DiscountValue decimal.Decimal
}

// UpdateOptionInput holds optional mutation values for an option.
type UpdateOptionInput struct {
	Label         *string
	DiscountValue *decimal.Decimal
}

// searchFlusher invalidates the cached device search results after a catalog
// mutation. Flush failures are logged and swallowed so stale cache entries
// never block a write.
type searchFlusher interface {
	Flush(ctx context.Context) error
}

type service struct {
	client  *db.Client
	repo    *Repository
	flusher searchFlusher
	logg    *logger.Logger
}

// NewService builds the catalog service.
func NewService(client *db.Client, repo *Repository, flusher searchFlusher, logg *logger.Logger) Service {
	return &service{client: client, repo: repo, flusher: flusher, logg: logg}
}

func (s *service) GetDevice(ctx context.Context, id uint64) (*DeviceDTO, error) {
	device, err := s.repo.FindDevice(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading device")
	}
	return toDeviceDTO(device), nil
}

func (s *service) CreateDevice(ctx context.Context, input CreateDeviceInput) (*DeviceDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Brand = strings.TrimSpace(input.Brand)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device name is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	device := &models.Device{
		Name:      input.Name,
		Brand:     input.Brand,
		BasePrice: input.BasePrice,
	}
	created, err := s.repo.CreateDevice(ctx, device)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating device")
	}

	s.flushSearch(ctx)
	return toDeviceDTO(created), nil
}

func (s *service) UpdateDevice(ctx context.Context, id uint64, input UpdateDeviceInput) (*DeviceDTO, error) {
	device, err := s.repo.FindDevice(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading device")
	}

	if input.Name != nil {
		device.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		device.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.BasePrice != nil {
		device.BasePrice = *input.BasePrice
	}
	if device.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device name is required")
	}
	if device.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price cannot be negative")
	}

	updated, err := s.repo.UpdateDevice(ctx, device)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating device")
	}

	s.flushSearch(ctx)
	return toDeviceDTO(updated), nil
}

func (s *service) DeleteDevice(ctx context.Context, id uint64) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteDeviceCascade(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting device")
	}

	s.flushSearch(ctx)
	return nil
}

func (s *service) CreateAttribute(ctx context.Context, deviceID uint64, input CreateAttributeInput) (*AttributeDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute name is required")
	}
	if input.DiscountType == "" {
		input.DiscountType = enums.DiscountTypeFixed
	}
	if !input.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}

	if _, err := s.repo.FindDevice(ctx, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading device")
	}

	attr := &models.Attribute{
		DeviceID:     deviceID,
		Name:         input.Name,
		DiscountType: input.DiscountType,
	}
	created, err := s.repo.CreateAttribute(ctx, attr)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating attribute")
	}
	return toAttributeDTO(created), nil
}

func (s *service) UpdateAttribute(ctx context.Context, attributeID uint64, input UpdateAttributeInput) (*AttributeDTO, error) {
	attr, err := s.repo.FindAttribute(ctx, attributeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attribute not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading attribute")
	}

	if input.Name != nil {
		attr.Name = strings.TrimSpace(*input.Name)
	}
	if input.DiscountType != nil {
		attr.DiscountType = *input.DiscountType
	}
	if attr.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute name is required")
	}
	if !attr.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}

	updated, err := s.repo.UpdateAttribute(ctx, attr)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating attribute")
	}
	return toAttributeDTO(updated), nil
}

func (s *service) DeleteAttribute(ctx context.Context, attributeID uint64) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteAttributeCascade(ctx, attributeID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "attribute not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting attribute")
	}
	return nil
}

func (s *service) CreateOption(ctx context.Context, attributeID uint64, input CreateOptionInput) (*OptionDTO, error) {
	input.Label = strings.TrimSpace(input.Label)
	if input.Label == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option label is required")
	}
	if input.DiscountValue.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}

	if _, err := s.repo.FindAttribute(ctx, attributeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attribute not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading attribute")
	}

	opt := &models.AttributeOption{
		AttributeID:   attributeID,
		Label:         input.Label,
		DiscountValue: input.DiscountValue,
	}
	created, err := s.repo.CreateOption(ctx, opt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating option")
	}
	return toOptionDTO(created), nil
}

func (s *service) UpdateOption(ctx context.Context, optionID uint64, input UpdateOptionInput) (*OptionDTO, error) {
	opt, err := s.repo.FindOption(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading option")
	}

	if input.Label != nil {
		opt.Label = strings.TrimSpace(*input.Label)
	}
	if input.DiscountValue != nil {
		opt.DiscountValue = *input.DiscountValue
	}
	if opt.Label == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option label is required")
	}
	if opt.DiscountValue.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}

	updated, err := s.repo.UpdateOption(ctx, opt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating option")
	}
	return toOptionDTO(updated), nil
}

func (s *service) DeleteOption(ctx context.Context, optionID uint64) error {
	if err := s.repo.DeleteOption(ctx, optionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "option not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting option")
	}
	return nil
}

func (s *service) flushSearch(ctx context.Context) {
	if s.flusher == nil {
		return
	}
	if err := s.flusher.Flush(ctx); err != nil && s.logg != nil {
		s.logg.Error(ctx, "flushing device search cache", err)
	}
}
