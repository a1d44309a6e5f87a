package catalog

import (
	"time"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"github.com/mateovilla/tradein-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DeviceDTO is the API shape of a catalog device.
type DeviceDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	BasePrice decimal.Decimal `json:"base_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AttributeDTO is the API shape of a device attribute with its options.
type AttributeDTO struct {
	ID           uint64             `json:"id"`
	DeviceID     uint64             `json:"device_id"`
	Name         string             `json:"name"`
	DiscountType enums.DiscountType `json:"discount_type"`
	Options      []OptionDTO        `json:"options"`
}

// OptionDTO is the API shape of an attribute option.
type OptionDTO struct {
	ID            uint64          `json:"id"`
	AttributeID   uint64          `json:"attribute_id"`
	Label         string          `json:"label"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

func toDeviceDTO(m *models.Device) *DeviceDTO {
	return &DeviceDTO{
		ID:        m.ID,
		Name:      m.Name,
		Brand:     m.Brand,
		BasePrice: m.BasePrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toAttributeDTO(m *models.Attribute) *AttributeDTO {
	dto := &AttributeDTO{
		ID:           m.ID,
		DeviceID:     m.DeviceID,
		Name:         m.Name,
		DiscountType: m.DiscountType,
		Options:      make([]OptionDTO, 0, len(m.Options)),
	}
	for i := range m.Options {
		dto.Options = append(dto.Options, *toOptionDTO(&m.Options[i]))
	}
	return dto
}

func toOptionDTO(m *models.AttributeOption) *OptionDTO {
	return &OptionDTO{
		ID:            m.ID,
		AttributeID:   m.AttributeID,
		Label:         m.Label,
		DiscountValue: m.DiscountValue,
	}
}
