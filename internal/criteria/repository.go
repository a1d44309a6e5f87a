package criteria

import (
	"context"
	"strings"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides persistence for evaluation criteria.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every criterion ordered by id ascending, active or not.
func (r *Repository) List(ctx context.Context) ([]models.EvaluationCriterion, error) {
	var rows []models.EvaluationCriterion
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForBrand returns active criteria applicable to the given brand: either
// the "All" sentinel or a brand list containing the brand as a substring.
func (r *Repository) ListForBrand(ctx context.Context, brand string) ([]models.EvaluationCriterion, error) {
	var rows []models.EvaluationCriterion
	pattern := "%" + strings.ToLower(strings.TrimSpace(brand)) + "%"
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("applicable_brands = ? OR LOWER(applicable_brands) LIKE ?", models.BrandSentinelAll, pattern).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single criterion.
func (r *Repository) FindByID(ctx context.Context, id uint64) (*models.EvaluationCriterion, error) {
	var row models.EvaluationCriterion
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new criterion row.
func (r *Repository) Create(ctx context.Context, row *models.EvaluationCriterion) (*models.EvaluationCriterion, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update persists all mutable fields of an existing criterion.
func (r *Repository) Update(ctx context.Context, row *models.EvaluationCriterion) (*models.EvaluationCriterion, error) {
	updates := map[string]any{
		"criteria_text":     row.Text,
		"discount_value":    row.DiscountValue,
		"applicable_brands": row.ApplicableBrands,
		"active":            row.Active,
	}
	res := r.db.WithContext(ctx).Model(&models.EvaluationCriterion{}).Where("id = ?", row.ID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, row.ID)
}

// Delete removes a criterion row.
func (r *Repository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.EvaluationCriterion{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
