package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	pricingsvc "github.com/mateovilla/tradein-backend/internal/pricing"
	"github.com/mateovilla/tradein-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePricingService struct {
	estimate       *pricingsvc.EstimateDTO
	lastDeviceID   uint64
	lastSelections []pricingsvc.AttributeSelection
	lastAnswers    []pricingsvc.CriterionAnswer
}

func (f *fakePricingService) EstimateByAttributes(_ context.Context, deviceID uint64, selections []pricingsvc.AttributeSelection) (*pricingsvc.EstimateDTO, error) {
	f.lastDeviceID = deviceID
	f.lastSelections = selections
	return f.estimate, nil
}

func (f *fakePricingService) EstimateByCriteria(_ context.Context, deviceID uint64, answers []pricingsvc.CriterionAnswer) (*pricingsvc.EstimateDTO, error) {
	f.lastDeviceID = deviceID
	f.lastAnswers = answers
	return f.estimate, nil
}

func estimateRouter(svc pricingsvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/devices/{deviceID}/estimate/attributes", EstimateByAttributes(svc, nil))
	r.Post("/devices/{deviceID}/estimate/criteria", EstimateByCriteria(svc, nil))
	return r
}

func TestEstimateByAttributesEndpoint(t *testing.T) {
	svc := &fakePricingService{
		estimate: &pricingsvc.EstimateDTO{
			DeviceID:   1,
			BasePrice:  decimal.NewFromInt(500),
			FinalPrice: decimal.NewFromInt(350),
		},
	}

	body := `{"selections":[{"attribute_id":10,"option_id":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/devices/1/estimate/attributes", strings.NewReader(body))
	w := httptest.NewRecorder()
	estimateRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, svc.lastDeviceID)
	require.Len(t, svc.lastSelections, 1)
	assert.EqualValues(t, 10, svc.lastSelections[0].AttributeID)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "350", data["final_price"])
}

func TestEstimateByAttributesRejectsUnknownFields(t *testing.T) {
	svc := &fakePricingService{estimate: &pricingsvc.EstimateDTO{}}

	body := `{"selections":[],"surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/devices/1/estimate/attributes", strings.NewReader(body))
	w := httptest.NewRecorder()
	estimateRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateByAttributesRejectsIncompleteSelection(t *testing.T) {
	svc := &fakePricingService{estimate: &pricingsvc.EstimateDTO{}}

	body := `{"selections":[{"attribute_id":10}]}`
	req := httptest.NewRequest(http.MethodPost, "/devices/1/estimate/attributes", strings.NewReader(body))
	w := httptest.NewRecorder()
	estimateRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateByCriteriaEndpoint(t *testing.T) {
	svc := &fakePricingService{
		estimate: &pricingsvc.EstimateDTO{
			DeviceID:   2,
			BasePrice:  decimal.NewFromInt(100),
			FinalPrice: decimal.NewFromInt(20),
		},
	}

	body := `{"answers":[{"criterion_id":20,"answer":"yes"}]}`
	req := httptest.NewRequest(http.MethodPost, "/devices/2/estimate/criteria", strings.NewReader(body))
	w := httptest.NewRecorder()
	estimateRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, svc.lastDeviceID)
	require.Len(t, svc.lastAnswers, 1)
	assert.Equal(t, "yes", svc.lastAnswers[0].Answer)
}
