package controllers

import (
	"net/http"

	"github.com/mateovilla/tradein-backend/api/responses"
	"github.com/mateovilla/tradein-backend/api/validators"
	criteriasvc "github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type upsertCriterionRequest struct {
	Text             string          `json:"text" validate:"required"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	ApplicableBrands string          `json:"applicable_brands" validate:"required"`
	Active           bool            `json:"active"`
}

func (p upsertCriterionRequest) toInput() criteriasvc.UpsertCriterionInput {
	return criteriasvc.UpsertCriterionInput{
		Text:             p.Text,
		DiscountValue:    p.DiscountValue,
		ApplicableBrands: p.ApplicableBrands,
		Active:           p.Active,
	}
}

// AdminListCriteria returns every criterion, active or not.
func AdminListCriteria(svc criteriasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminCreateCriterion inserts a new evaluation criterion.
func AdminCreateCriterion(svc criteriasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertCriterionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateCriterion replaces an existing criterion's fields.
func AdminUpdateCriterion(svc criteriasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criterionID, err := validators.ParseURLID(r, "criterionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertCriterionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), criterionID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteCriterion removes a criterion.
func AdminDeleteCriterion(svc criteriasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criterionID, err := validators.ParseURLID(r, "criterionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), criterionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
