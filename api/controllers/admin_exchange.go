package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mateovilla/tradein-backend/api/responses"
	"github.com/mateovilla/tradein-backend/internal/catalogcsv"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"go.uber.org/multierr"
)

// 10 MiB cap on uploaded catalogs
const maxImportBytes = 10 << 20

type importResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// AdminImportCatalog ingests a CSV upload. The file arrives either as the
// "file" part of a multipart form or as the raw request body.
func AdminImportCatalog(importer *catalogcsv.Importer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if importer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "importer unavailable"))
			return
		}

		source, cleanup, err := importSource(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer cleanup()

		result, err := importer.Import(r.Context(), source)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := importResponse{
			Imported: result.Imported,
			Skipped:  result.Skipped,
		}
		for _, rowErr := range multierr.Errors(result.RowErrors) {
			payload.Errors = append(payload.Errors, rowErr.Error())
		}
		responses.WriteSuccess(w, payload)
	}
}

func importSource(r *http.Request) (io.Reader, func(), error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "missing file upload")
		}
		return file, func() { file.Close() }, nil
	}
	return r.Body, func() {}, nil
}

// AdminExportCatalog streams the whole catalog as a CSV download.
func AdminExportCatalog(exporter *catalogcsv.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if exporter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable"))
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", catalogcsv.ExportFilename(time.Now().UTC())))

		if err := exporter.Export(r.Context(), w); err != nil {
			// headers are already out; log instead of switching to a JSON error
			if logg != nil {
				logg.Error(r.Context(), "catalog export aborted", err)
			}
		}
	}
}
