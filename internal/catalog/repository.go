package catalog

import (
	"context"
	"strings"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together device, attribute and option persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListDevices returns devices whose name contains term (case-insensitive),
// ordered by name ascending. An empty term lists everything.
func (r *Repository) ListDevices(ctx context.Context, term string) ([]models.Device, error) {
	q := r.db.WithContext(ctx).Model(&models.Device{})
	term = strings.TrimSpace(term)
	if term != "" {
		q = q.Where("LOWER(device_name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	var devices []models.Device
	if err := q.Order("device_name ASC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// FindDevice loads a device without associations.
func (r *Repository) FindDevice(ctx context.Context, id uint64) (*models.Device, error) {
	var device models.Device
	if err := r.db.WithContext(ctx).First(&device, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

// FindDeviceByName loads the first device matching name exactly, lowest id
// first so repeated lookups stay deterministic when names collide.
func (r *Repository) FindDeviceByName(ctx context.Context, name string) (*models.Device, error) {
	var device models.Device
	if err := r.db.WithContext(ctx).
		Where("device_name = ?", name).
		Order("id ASC").
		First(&device).
		Error; err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice inserts a new device row.
func (r *Repository) CreateDevice(ctx context.Context, device *models.Device) (*models.Device, error) {
	if err := r.db.WithContext(ctx).Create(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// UpdateDevice persists name, brand and base price for an existing device.
func (r *Repository) UpdateDevice(ctx context.Context, device *models.Device) (*models.Device, error) {
	updates := map[string]any{
		"device_name": device.Name,
		"brand":       device.Brand,
		"base_price":  device.BasePrice,
	}
	res := r.db.WithContext(ctx).Model(&models.Device{}).Where("id = ?", device.ID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindDevice(ctx, device.ID)
}

// DeleteDeviceCascade removes a device together with its attributes and their
// options. Callers run it inside a transaction so a partial delete never
// leaves orphaned rows behind.
func (r *Repository) DeleteDeviceCascade(ctx context.Context, id uint64) error {
	tx := r.db.WithContext(ctx)

	var attributeIDs []uint64
	if err := tx.Model(&models.Attribute{}).
		Where("device_id = ?", id).
		Pluck("id", &attributeIDs).
		Error; err != nil {
		return err
	}
	if len(attributeIDs) > 0 {
		if err := tx.Where("attribute_id IN ?", attributeIDs).
			Delete(&models.AttributeOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", attributeIDs).
			Delete(&models.Attribute{}).Error; err != nil {
			return err
		}
	}

	res := tx.Delete(&models.Device{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AttributesForDevice loads a device's attributes with their options, both
// ordered by id ascending.
func (r *Repository) AttributesForDevice(ctx context.Context, deviceID uint64) ([]models.Attribute, error) {
	var attrs []models.Attribute
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("attribute_options.id ASC")
		}).
		Where("device_id = ?", deviceID).
		Order("id ASC").
		Find(&attrs).
		Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

// FindAttribute loads an attribute without its options.
func (r *Repository) FindAttribute(ctx context.Context, id uint64) (*models.Attribute, error) {
	var attr models.Attribute
	if err := r.db.WithContext(ctx).First(&attr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// FindAttributeByName loads the first attribute matching name, ordered by id
// so repeated lookups stay deterministic when names collide.
func (r *Repository) FindAttributeByName(ctx context.Context, name string) (*models.Attribute, error) {
	var attr models.Attribute
	if err := r.db.WithContext(ctx).
		Where("attribute_name = ?", name).
		Order("id ASC").
		First(&attr).
		Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// CreateAttribute inserts a new attribute row.
func (r *Repository) CreateAttribute(ctx context.Context, attr *models.Attribute) (*models.Attribute, error) {
	if err := r.db.WithContext(ctx).Create(attr).Error; err != nil {
		return nil, err
	}
	return attr, nil
}

// UpdateAttribute persists name and discount type for an existing attribute.
func (r *Repository) UpdateAttribute(ctx context.Context, attr *models.Attribute) (*models.Attribute, error) {
	updates := map[string]any{
		"attribute_name": attr.Name,
		"discount_type":  attr.DiscountType,
	}
	res := r.db.WithContext(ctx).Model(&models.Attribute{}).Where("id = ?", attr.ID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindAttribute(ctx, attr.ID)
}

// DeleteAttributeCascade removes an attribute and its options.
func (r *Repository) DeleteAttributeCascade(ctx context.Context, id uint64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("attribute_id = ?", id).Delete(&models.AttributeOption{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&models.Attribute{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOption loads a single attribute option.
func (r *Repository) FindOption(ctx context.Context, id uint64) (*models.AttributeOption, error) {
	var opt models.AttributeOption
	if err := r.db.WithContext(ctx).First(&opt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &opt, nil
}

// CreateOption inserts a new option row.
func (r *Repository) CreateOption(ctx context.Context, opt *models.AttributeOption) (*models.AttributeOption, error) {
	if err := r.db.WithContext(ctx).Create(opt).Error; err != nil {
		return nil, err
	}
	return opt, nil
}

// UpdateOption persists label and discount value for an existing option.
func (r *Repository) UpdateOption(ctx context.Context, opt *models.AttributeOption) (*models.AttributeOption, error) {
	updates := map[string]any{
		"option_label":   opt.Label,
		"discount_value": opt.DiscountValue,
	}
	res := r.db.WithContext(ctx).Model(&models.AttributeOption{}).Where("id = ?", opt.ID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindOption(ctx, opt.ID)
}

// DeleteOption removes a single option row.
func (r *Repository) DeleteOption(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&models.AttributeOption{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
