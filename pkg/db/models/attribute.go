package models

import (
	"time"

	"github.com/mateovilla/tradein-backend/pkg/enums"
)

// Attribute is a device-scoped question whose options share one discount type.
type Attribute struct {
	ID           uint64             `gorm:"column:id;primaryKey;autoIncrement"`
	DeviceID     uint64             `gorm:"column:device_id;not null;index"`
	Name         string             `gorm:"column:attribute_name;not null"`
	DiscountType enums.DiscountType `gorm:"column:discount_type;not null;default:fixed"`
	Options      []AttributeOption  `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
