package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Device represents a priceable catalog item with a base trade-in price.
type Device struct {
	ID         uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:device_name;not null"`
	Brand      string          `gorm:"column:brand;not null;default:''"`
	BasePrice  decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	Attributes []Attribute     `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
