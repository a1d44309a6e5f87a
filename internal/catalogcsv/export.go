package catalogcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mateovilla/tradein-backend/internal/catalog"
	"github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/pkg/db/models"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
)

// Exporter streams the whole catalog into the flat CSV exchange format.
type Exporter struct {
	catalog  *catalog.Repository
	criteria *criteria.Repository
}

// NewExporter builds an Exporter.
func NewExporter(catalogRepo *catalog.Repository, criteriaRepo *criteria.Repository) *Exporter {
	return &Exporter{catalog: catalogRepo, criteria: criteriaRepo}
}

// ExportFilename returns the download name for an export started at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("device-price-export-%s.csv", now.Format("20060102-150405"))
}

// Export writes the header, every device, every attribute with its options
// (a bare attribute row when it has none) and every criterion. Rows are
// flushed through the csv writer so large catalogs stream instead of
// buffering.
func (ex *Exporter) Export(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headerRow()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing export header")
	}

	devices, err := ex.catalog.ListDevices(ctx, "")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing devices")
	}

	for i := range devices {
		if err := ex.writeDevice(ctx, writer, &devices[i]); err != nil {
			return err
		}
	}

	criteriaRows, err := ex.criteria.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing criteria")
	}
	for i := range criteriaRows {
		if err := writer.Write(criterionRow(&criteriaRows[i])); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing export row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flushing export")
	}
	return nil
}

func (ex *Exporter) writeDevice(ctx context.Context, writer *csv.Writer, device *models.Device) error {
	row := make([]string, columnCount)
	row[colType] = rowTypeDevice
	row[colDeviceName] = device.Name
	row[colBrand] = device.Brand
	row[colBasePrice] = device.BasePrice.StringFixed(2)
	if err := writer.Write(row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing export row")
	}

	attrs, err := ex.catalog.AttributesForDevice(ctx, device.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attributes")
	}

	for i := range attrs {
		attr := &attrs[i]
		if len(attr.Options) == 0 {
			if err := writer.Write(attributeRow(device, attr, nil)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing export row")
			}
			continue
		}
		for j := range attr.Options {
			if err := writer.Write(attributeRow(device, attr, &attr.Options[j])); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing export row")
			}
		}
	}
	return nil
}

func attributeRow(device *models.Device, attr *models.Attribute, opt *models.AttributeOption) []string {
	row := make([]string, columnCount)
	row[colDeviceName] = device.Name
	row[colAttributeName] = attr.Name
	row[colDiscountType] = attr.DiscountType.String()
	row[colAttributeID] = strconv.FormatUint(attr.ID, 10)
	if opt == nil {
		row[colType] = rowTypeAttribute
		return row
	}
	row[colType] = rowTypeAttributeOption
	row[colOptionLabel] = opt.Label
	row[colDiscountValue] = opt.DiscountValue.StringFixed(2)
	return row
}

func criterionRow(c *models.EvaluationCriterion) []string {
	row := make([]string, columnCount)
	row[colType] = rowTypeCriterion
	row[colCriterionText] = c.Text
	row[colCriterionValue] = c.DiscountValue.StringFixed(2)
	row[colCriterionBrands] = c.ApplicableBrands
	if c.Active {
		row[colCriterionActive] = "1"
	} else {
		row[colCriterionActive] = "0"
	}
	return row
}
