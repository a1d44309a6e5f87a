package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrandSentinelAll marks a criterion as applicable to every brand.
const BrandSentinelAll = "All"

// EvaluationCriterion is a brand-scoped yes/no condition carrying a fixed
// discount. It has no device relation; it is matched against a device's brand
// when a price is computed.
type EvaluationCriterion struct {
	ID               uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Text             string          `gorm:"column:criteria_text;not null"`
	DiscountValue    decimal.Decimal `gorm:"column:discount_value;type:numeric(10,2);not null"`
	ApplicableBrands string          `gorm:"column:applicable_brands;not null"`
	Active           bool            `gorm:"column:active;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (EvaluationCriterion) TableName() string { return "evaluation_criteria" }
