package controllers

import (
	"net/http"

	"github.com/mateovilla/tradein-backend/api/responses"
	"github.com/mateovilla/tradein-backend/api/validators"
	pricingsvc "github.com/mateovilla/tradein-backend/internal/pricing"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/logger"
)

type estimateByAttributesRequest struct {
	Selections []pricingsvc.AttributeSelection `json:"selections" validate:"dive"`
}

type estimateByCriteriaRequest struct {
	Answers []pricingsvc.CriterionAnswer `json:"answers" validate:"dive"`
}

// EstimateByAttributes quotes a device from attribute option selections.
func EstimateByAttributes(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateByAttributesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.EstimateByAttributes(r.Context(), deviceID, payload.Selections)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}

// EstimateByCriteria quotes a device from yes/no criterion answers.
func EstimateByCriteria(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateByCriteriaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.EstimateByCriteria(r.Context(), deviceID, payload.Answers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}
