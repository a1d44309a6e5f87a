package criteria

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CriterionDTO is the API shape of an evaluation criterion.
type CriterionDTO struct {
	ID               uint64          `json:"id"`
	Text             string          `json:"text"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	ApplicableBrands string          `json:"applicable_brands"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// UpsertCriterionInput holds the payload to create or replace a criterion.
type UpsertCriterionInput struct {
	Text             string
	DiscountValue    decimal.Decimal
	ApplicableBrands string
	Active           bool
}

// Service exposes evaluation criterion management operations.
type Service interface {
	List(ctx context.Context) ([]CriterionDTO, error)
	Create(ctx context.Context, input UpsertCriterionInput) (*CriterionDTO, error)
	Update(ctx context.Context, id uint64, input UpsertCriterionInput) (*CriterionDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type service struct {
	repo *Repository
}

// NewService builds the criteria service.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]CriterionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing criteria")
	}
	out := make([]CriterionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input UpsertCriterionInput) (*CriterionDTO, error) {
	row, err := rowFromInput(input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating criterion")
	}
	dto := toDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uint64, input UpsertCriterionInput) (*CriterionDTO, error) {
	row, err := rowFromInput(input)
	if err != nil {
		return nil, err
	}
	row.ID = id

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "criterion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating criterion")
	}
	dto := toDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "criterion not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting criterion")
	}
	return nil
}

func rowFromInput(input UpsertCriterionInput) (*models.EvaluationCriterion, error) {
	text := strings.TrimSpace(input.Text)
	brands := strings.TrimSpace(input.ApplicableBrands)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "criterion text is required")
	}
	if brands == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applicable brands is required")
	}
	if input.DiscountValue.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}
	return &models.EvaluationCriterion{
		Text:             text,
		DiscountValue:    input.DiscountValue,
		ApplicableBrands: brands,
		Active:           input.Active,
	}, nil
}

func toDTO(m *models.EvaluationCriterion) CriterionDTO {
	return CriterionDTO{
		ID:               m.ID,
		Text:             m.Text,
		DiscountValue:    m.DiscountValue,
		ApplicableBrands: m.ApplicableBrands,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
