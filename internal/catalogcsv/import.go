package catalogcsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mateovilla/tradein-backend/internal/catalog"
	"github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/pkg/db/models"
	"github.com/mateovilla/tradein-backend/pkg/enums"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// ImportResult summarizes a finished import run.
type ImportResult struct {
	Imported  int
	Skipped   int
	RowErrors error
}

type searchFlusher interface {
	Flush(ctx context.Context) error
}

// Importer loads catalog rows from the flat CSV exchange format.
type Importer struct {
	catalog  *catalog.Repository
	criteria *criteria.Repository
	flusher  searchFlusher
	logg     *logger.Logger
}

// NewImporter builds an Importer.
func NewImporter(catalogRepo *catalog.Repository, criteriaRepo *criteria.Repository, flusher searchFlusher, logg *logger.Logger) *Importer {
	return &Importer{catalog: catalogRepo, criteria: criteriaRepo, flusher: flusher, logg: logg}
}

// Import reads the CSV stream and inserts its rows. Malformed rows are
// skipped and collected into RowErrors without aborting the run; only an
// unreadable source fails the whole import with a zero count.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return &ImportResult{}, nil
		}
		return &ImportResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading import source")
	}

	result := &ImportResult{}
	line := 1
	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped++
				result.RowErrors = multierr.Append(result.RowErrors, fmt.Errorf("row %d: %w", line, err))
				continue
			}
			return &ImportResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading import source")
		}

		if err := im.importRow(ctx, padRow(row)); err != nil {
			if errors.Is(err, errSkipRow) {
				result.Skipped++
				continue
			}
			result.Skipped++
			result.RowErrors = multierr.Append(result.RowErrors, fmt.Errorf("row %d: %w", line, err))
			continue
		}
		result.Imported++
	}

	if result.Imported > 0 {
		im.flushSearch(ctx)
	}
	return result, nil
}

// errSkipRow marks rows that are ignored without being reported as failures:
// unknown row types and device rows with an empty name.
var errSkipRow = errors.New("row skipped")

func (im *Importer) importRow(ctx context.Context, row []string) error {
	switch strings.TrimSpace(row[colType]) {
	case rowTypeDevice:
		return im.importDevice(ctx, row)
	case rowTypeAttributeOption:
		return im.importAttributeOption(ctx, row)
	case rowTypeCriterion:
		return im.importCriterion(ctx, row)
	default:
		return errSkipRow
	}
}

func (im *Importer) importDevice(ctx context.Context, row []string) error {
	name := strings.TrimSpace(row[colDeviceName])
	if name == "" {
		return errSkipRow
	}

	basePrice, err := parsePrice(row[colBasePrice])
	if err != nil {
		return fmt.Errorf("base price: %w", err)
	}

	_, err = im.catalog.CreateDevice(ctx, &models.Device{
		Name:      name,
		Brand:     strings.TrimSpace(row[colBrand]),
		BasePrice: basePrice,
	})
	return err
}

func (im *Importer) importAttributeOption(ctx context.Context, row []string) error {
	attr, err := im.resolveAttribute(ctx, row)
	if err != nil {
		return err
	}

	label := strings.TrimSpace(row[colOptionLabel])
	if label == "" {
		return fmt.Errorf("option label is required")
	}
	value, err := parsePrice(row[colDiscountValue])
	if err != nil {
		return fmt.Errorf("discount value: %w", err)
	}

	_, err = im.catalog.CreateOption(ctx, &models.AttributeOption{
		AttributeID:   attr.ID,
		Label:         label,
		DiscountValue: value,
	})
	return err
}

// resolveAttribute finds the option's parent attribute: by explicit id when
// one is present, otherwise by name, creating the attribute under the row's
// device when the name is new.
func (im *Importer) resolveAttribute(ctx context.Context, row []string) (*models.Attribute, error) {
	if raw := strings.TrimSpace(row[colAttributeID]); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("attribute id %q is not numeric", raw)
		}
		attr, err := im.catalog.FindAttribute(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("attribute %d does not exist", id)
			}
			return nil, err
		}
		return attr, nil
	}

	name := strings.TrimSpace(row[colAttributeName])
	if name == "" {
		return nil, fmt.Errorf("attribute name or id is required")
	}

	attr, err := im.catalog.FindAttributeByName(ctx, name)
	if err == nil {
		return attr, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	deviceName := strings.TrimSpace(row[colDeviceName])
	if deviceName == "" {
		return nil, fmt.Errorf("device name is required to create attribute %q", name)
	}
	device, err := im.catalog.FindDeviceByName(ctx, deviceName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("device %q does not exist", deviceName)
		}
		return nil, err
	}

	discountType := enums.DiscountType(strings.TrimSpace(strings.ToLower(row[colDiscountType])))
	if discountType == "" {
		discountType = enums.DiscountTypeFixed
	}
	if !discountType.IsValid() {
		return nil, fmt.Errorf("invalid discount type %q", row[colDiscountType])
	}

	return im.catalog.CreateAttribute(ctx, &models.Attribute{
		DeviceID:     device.ID,
		Name:         name,
		DiscountType: discountType,
	})
}

func (im *Importer) importCriterion(ctx context.Context, row []string) error {
	text := strings.TrimSpace(row[colCriterionText])
	if text == "" {
		return fmt.Errorf("criterion text is required")
	}
	value, err := parsePrice(row[colCriterionValue])
	if err != nil {
		return fmt.Errorf("discount value: %w", err)
	}
	brands := strings.TrimSpace(row[colCriterionBrands])
	if brands == "" {
		brands = models.BrandSentinelAll
	}

	_, err = im.criteria.Create(ctx, &models.EvaluationCriterion{
		Text:             text,
		DiscountValue:    value,
		ApplicableBrands: brands,
		Active:           parseActive(row[colCriterionActive]),
	})
	return err
}

func (im *Importer) flushSearch(ctx context.Context) {
	if im.flusher == nil {
		return
	}
	if err := im.flusher.Flush(ctx); err != nil && im.logg != nil {
		im.logg.Error(ctx, "flushing device search cache after import", err)
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", raw)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%q is negative", raw)
	}
	return value, nil
}

func parseActive(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
