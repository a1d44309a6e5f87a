package lookup

import (
	"context"
	"errors"
	"html"
	"time"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"gorm.io/gorm"
)

// AttributeView is the public read shape of a device attribute. Discount
// amounts stay server-side; customers only see what they can pick.
type AttributeView struct {
	ID      uint64       `json:"id"`
	Name    string       `json:"name"`
	Options []OptionView `json:"options"`
}

// OptionView is the public read shape of an attribute option.
type OptionView struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// CriterionView is the public read shape of an evaluation criterion.
type CriterionView struct {
	ID   uint64 `json:"id"`
	Text string `json:"text"`
}

// deviceReader is the slice of the catalog repository the lookup paths need.
type deviceReader interface {
	ListDevices(ctx context.Context, term string) ([]models.Device, error)
	FindDevice(ctx context.Context, id uint64) (*models.Device, error)
	AttributesForDevice(ctx context.Context, deviceID uint64) ([]models.Attribute, error)
}

// criteriaReader lists active criteria for a brand.
type criteriaReader interface {
	ListForBrand(ctx context.Context, brand string) ([]models.EvaluationCriterion, error)
}

// Service exposes the customer-facing read operations.
type Service interface {
	SearchDevices(ctx context.Context, term string) []DeviceSummary
	DeviceAttributes(ctx context.Context, deviceID uint64) ([]AttributeView, error)
	CriteriaForBrand(ctx context.Context, brand string) ([]CriterionView, error)
}

type service struct {
	devices  deviceReader
	criteria criteriaReader
	cache    SearchCache
	timeout  time.Duration
	logg     *logger.Logger
}

// NewService builds the lookup service. timeout bounds a single search
// round-trip; when it elapses the search degrades to an empty result set.
func NewService(devices deviceReader, criteriaRepo criteriaReader, cache SearchCache, timeout time.Duration, logg *logger.Logger) Service {
	return &service{
		devices:  devices,
		criteria: criteriaRepo,
		cache:    cache,
		timeout:  timeout,
		logg:     logg,
	}
}

// SearchDevices returns devices matching term, serving from the cache when a
// fresh entry exists. Any failure, including the search timeout, degrades to
// an empty result set so the storefront never surfaces an error page.
func (s *service) SearchDevices(ctx context.Context, term string) []DeviceSummary {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, term); ok {
			return cached
		}
	}

	devices, err := s.devices.ListDevices(ctx, term)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "device search failed, serving empty results")
		}
		return []DeviceSummary{}
	}

	results := toSummaries(devices)
	if s.cache != nil {
		s.cache.Set(ctx, term, results)
	}
	return results
}

// DeviceAttributes lists a device's attributes with their options.
func (s *service) DeviceAttributes(ctx context.Context, deviceID uint64) ([]AttributeView, error) {
	if _, err := s.devices.FindDevice(ctx, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading device")
	}

	attrs, err := s.devices.AttributesForDevice(ctx, deviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attributes")
	}

	views := make([]AttributeView, 0, len(attrs))
	for i := range attrs {
		view := AttributeView{
			ID:      attrs[i].ID,
			Name:    attrs[i].Name,
			Options: make([]OptionView, 0, len(attrs[i].Options)),
		}
		for _, opt := range attrs[i].Options {
			view.Options = append(view.Options, OptionView{ID: opt.ID, Label: opt.Label})
		}
		views = append(views, view)
	}
	return views, nil
}

// CriteriaForBrand lists the active criteria applicable to a brand. Results
// are always read fresh; criteria change rarely but a stale activation flag
// would quote wrong prices.
func (s *service) CriteriaForBrand(ctx context.Context, brand string) ([]CriterionView, error) {
	rows, err := s.criteria.ListForBrand(ctx, brand)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing criteria")
	}
	views := make([]CriterionView, 0, len(rows))
	for i := range rows {
		views = append(views, CriterionView{ID: rows[i].ID, Text: rows[i].Text})
	}
	return views, nil
}

func toSummaries(devices []models.Device) []DeviceSummary {
	out := make([]DeviceSummary, 0, len(devices))
	for i := range devices {
		out = append(out, DeviceSummary{
			ID:    devices[i].ID,
			Name:  html.EscapeString(devices[i].Name),
			Brand: html.EscapeString(devices[i].Brand),
		})
	}
	return out
}
