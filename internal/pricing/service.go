package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/pkg/db/models"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttributeSelection pairs a chosen option with its attribute.
type AttributeSelection struct {
	AttributeID uint64 `json:"attribute_id" validate:"required"`
	OptionID    uint64 `json:"option_id" validate:"required"`
}

// CriterionAnswer is a yes/no response to one evaluation criterion.
type CriterionAnswer struct {
	CriterionID uint64 `json:"criterion_id" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
}

// EstimateDTO is the computed trade-in quote.
type EstimateDTO struct {
	DeviceID   uint64          `json:"device_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// catalogLoader is the slice of the catalog repository the estimator needs.
type catalogLoader interface {
	FindDevice(ctx context.Context, id uint64) (*models.Device, error)
	FindAttribute(ctx context.Context, id uint64) (*models.Attribute, error)
	FindOption(ctx context.Context, id uint64) (*models.AttributeOption, error)
}

// criterionLoader resolves criterion ids to rows.
type criterionLoader interface {
	FindByID(ctx context.Context, id uint64) (*models.EvaluationCriterion, error)
}

// Service computes trade-in estimates.
type Service interface {
	EstimateByAttributes(ctx context.Context, deviceID uint64, selections []AttributeSelection) (*EstimateDTO, error)
	EstimateByCriteria(ctx context.Context, deviceID uint64, answers []CriterionAnswer) (*EstimateDTO, error)
}

type service struct {
	catalog  catalogLoader
	criteria criterionLoader
	logg     *logger.Logger
}

// NewService builds the pricing service.
func NewService(catalog catalogLoader, criteriaRepo criterionLoader, logg *logger.Logger) Service {
	return &service{catalog: catalog, criteria: criteriaRepo, logg: logg}
}

// EstimateByAttributes prices a device from attribute option selections.
// Selections referencing unknown attributes or options are skipped rather
// than failing the whole quote. An unknown device yields a zero estimate.
func (s *service) EstimateByAttributes(ctx context.Context, deviceID uint64, selections []AttributeSelection) (*EstimateDTO, error) {
	device, found, err := s.loadDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !found {
		return zeroEstimate(deviceID), nil
	}

	modifiers := make([]Modifier, 0, len(selections))
	for _, sel := range selections {
		attr, err := s.catalog.FindAttribute(ctx, sel.AttributeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.warn(ctx, "skipping selection with unknown attribute")
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading attribute")
		}
		opt, err := s.catalog.FindOption(ctx, sel.OptionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.warn(ctx, "skipping selection with unknown option")
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading option")
		}
		modifiers = append(modifiers, Modifier{
			Kind:   ModifierKind(attr.DiscountType),
			Amount: opt.DiscountValue,
		})
	}

	return estimate(device, modifiers), nil
}

// EstimateByCriteria prices a device from yes/no criterion answers. Only a
// "yes" answer (case-insensitive) to an active criterion whose brand list
// covers the device applies its discount; criteria discounts are always
// fixed amounts.
func (s *service) EstimateByCriteria(ctx context.Context, deviceID uint64, answers []CriterionAnswer) (*EstimateDTO, error) {
	device, found, err := s.loadDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !found {
		return zeroEstimate(deviceID), nil
	}

	modifiers := make([]Modifier, 0, len(answers))
	for _, ans := range answers {
		if !strings.EqualFold(strings.TrimSpace(ans.Answer), "yes") {
			continue
		}
		criterion, err := s.criteria.FindByID(ctx, ans.CriterionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.warn(ctx, "skipping answer with unknown criterion")
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading criterion")
		}
		if !criterion.Active {
			continue
		}
		if !criteria.BrandMatches(criterion.ApplicableBrands, device.Brand) {
			continue
		}
		modifiers = append(modifiers, Modifier{
			Kind:   ModifierFixed,
			Amount: criterion.DiscountValue,
		})
	}

	return estimate(device, modifiers), nil
}

func (s *service) loadDevice(ctx context.Context, deviceID uint64) (*models.Device, bool, error) {
	device, err := s.catalog.FindDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading device")
	}
	return device, true, nil
}

func (s *service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}

func estimate(device *models.Device, modifiers []Modifier) *EstimateDTO {
	return &EstimateDTO{
		DeviceID:   device.ID,
		BasePrice:  device.BasePrice,
		FinalPrice: Quote(device.BasePrice, modifiers),
	}
}

func zeroEstimate(deviceID uint64) *EstimateDTO {
	return &EstimateDTO{
		DeviceID:   deviceID,
		BasePrice:  decimal.Zero,
		FinalPrice: decimal.Zero,
	}
}
