package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttributeOption is one selectable answer to an Attribute. Its discount value
// is a unitless magnitude interpreted by the owning attribute's discount type.
type AttributeOption struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AttributeID   uint64          `gorm:"column:attribute_id;not null;index"`
	Label         string          `gorm:"column:option_label;not null"`
	DiscountValue decimal.Decimal `gorm:"column:discount_value;type:numeric(10,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
