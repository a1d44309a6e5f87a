package controllers

import (
	"net/http"

	"github.com/mateovilla/tradein-backend/api/responses"
	"github.com/mateovilla/tradein-backend/api/validators"
	catalogsvc "github.com/mateovilla/tradein-backend/internal/catalog"
	"github.com/mateovilla/tradein-backend/pkg/enums"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type upsertDeviceRequest struct {
	Name      string          `json:"name" validate:"required"`
	Brand     string          `json:"brand"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type updateDeviceRequest struct {
	Name      *string          `json:"name,omitempty"`
	Brand     *string          `json:"brand,omitempty"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
}

type createAttributeRequest struct {
	Name         string `json:"name" validate:"required"`
	DiscountType string `json:"discount_type" validate:"omitempty,oneof=fixed percentage"`
}

type updateAttributeRequest struct {
	Name         *string `json:"name,omitempty"`
	DiscountType *string `json:"discount_type,omitempty" validate:"omitempty,oneof=fixed percentage"`
}

type createOptionRequest struct {
	Label         string          `json:"label" validate:"required"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

type updateOptionRequest struct {
	Label         *string          `json:"label,omitempty"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`
}

// AdminGetDevice returns one device by id.
func AdminGetDevice(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		device, err := svc.GetDevice(r.Context(), deviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, device)
	}
}

// AdminCreateDevice inserts a new device.
func AdminCreateDevice(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertDeviceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		device, err := svc.CreateDevice(r.Context(), catalogsvc.CreateDeviceInput{
			Name:      payload.Name,
			Brand:     payload.Brand,
			BasePrice: payload.BasePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, device)
	}
}

// AdminUpdateDevice applies a partial update to a device.
func AdminUpdateDevice(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDeviceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		device, err := svc.UpdateDevice(r.Context(), deviceID, catalogsvc.UpdateDeviceInput{
			Name:      payload.Name,
			Brand:     payload.Brand,
			BasePrice: payload.BasePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, device)
	}
}

// AdminDeleteDevice removes a device and everything attached to it.
func AdminDeleteDevice(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteDevice(r.Context(), deviceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminCreateAttribute adds an attribute to a device.
func AdminCreateAttribute(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID, err := validators.ParseURLID(r, "deviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attr, err := svc.CreateAttribute(r.Context(), deviceID, catalogsvc.CreateAttributeInput{
			Name:         payload.Name,
			DiscountType: enums.DiscountType(payload.DiscountType),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, attr)
	}
}

// AdminUpdateAttribute applies a partial update to an attribute.
func AdminUpdateAttribute(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attributeID, err := validators.ParseURLID(r, "attributeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAttributeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.UpdateAttributeInput{Name: payload.Name}
		if payload.DiscountType != nil {
			dt := enums.DiscountType(*payload.DiscountType)
			input.DiscountType = &dt
		}

		attr, err := svc.UpdateAttribute(r.Context(), attributeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, attr)
	}
}

// AdminDeleteAttribute removes an attribute and its options.
func AdminDeleteAttribute(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attributeID, err := validators.ParseURLID(r, "attributeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteAttribute(r.Context(), attributeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminCreateOption adds an option to an attribute.
func AdminCreateOption(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attributeID, err := validators.ParseURLID(r, "attributeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opt, err := svc.CreateOption(r.Context(), attributeID, catalogsvc.CreateOptionInput{
			Label:         payload.Label,
			DiscountValue: payload.DiscountValue,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, opt)
	}
}

// AdminUpdateOption applies a partial update to an option.
func AdminUpdateOption(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		optionID, err := validators.ParseURLID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opt, err := svc.UpdateOption(r.Context(), optionID, catalogsvc.UpdateOptionInput{
			Label:         payload.Label,
			DiscountValue: payload.DiscountValue,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, opt)
	}
}

// AdminDeleteOption removes one option.
func AdminDeleteOption(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		optionID, err := validators.ParseURLID(r, "optionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteOption(r.Context(), optionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
