package controllers

import (
	"net/http"
	"strings"

	"github.com/mateovilla/tradein-backend/api/responses"
	"github.com/mateovilla/tradein-backend/api/validators"
	lookupsvc "github.com/mateovilla/tradein-backend/internal/lookup"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
)

// SearchDevices serves the storefront device search. The term comes from the
// q query parameter; an empty term lists everything.
func SearchDevices(svc lookupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lookup service unavailable"))
			return
		}

		term := strings.TrimSpace(r.URL.Query().Get("q"))
		responses.WriteSuccess(w, svc.SearchDevices(r.Context(), term))
	}
}

// DeviceAttributes lists the selectable attributes for one device.
func DeviceAttributes(svc lookupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lookup service unavailable"))
			return
		}

		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.DeviceAttributes(r.Context(), deviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// CriteriaForBrand lists the active evaluation questions for a brand.
func CriteriaForBrand(svc lookupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lookup service unavailable"))
			return
		}

		brand := strings.TrimSpace(r.URL.Query().Get("brand"))
		if brand == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brand query parameter is required"))
			return
		}

		views, err := svc.CriteriaForBrand(r.Context(), brand)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
