package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	lookupsvc "github.com/mateovilla/tradein-backend/internal/lookup"
	pkgerrors "github.com/mateovilla/tradein-backend/pkg/errors"
	"github.com/mateovilla/tradein-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookupService struct {
	summaries []lookupsvc.DeviceSummary
	views     []lookupsvc.AttributeView
	criteria  []lookupsvc.CriterionView
	attrErr   error
	lastTerm  string
	lastBrand string
}

func (f *fakeLookupService) SearchDevices(_ context.Context, term string) []lookupsvc.DeviceSummary {
	f.lastTerm = term
	return f.summaries
}

func (f *fakeLookupService) DeviceAttributes(context.Context, uint64) ([]lookupsvc.AttributeView, error) {
	if f.attrErr != nil {
		return nil, f.attrErr
	}
	return f.views, nil
}

func (f *fakeLookupService) CriteriaForBrand(_ context.Context, brand string) ([]lookupsvc.CriterionView, error) {
	f.lastBrand = brand
	return f.criteria, nil
}

func lookupRouter(svc lookupsvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/devices", SearchDevices(svc, nil))
	r.Get("/devices/{deviceID}/attributes", DeviceAttributes(svc, nil))
	r.Get("/criteria", CriteriaForBrand(svc, nil))
	return r
}

func TestSearchDevicesPassesTerm(t *testing.T) {
	svc := &fakeLookupService{
		summaries: []lookupsvc.DeviceSummary{{ID: 1, Name: "iPhone 12", Brand: "Apple"}},
	}

	req := httptest.NewRequest(http.MethodGet, "/devices?q=iphone", nil)
	w := httptest.NewRecorder()
	lookupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "iphone", svc.lastTerm)

	var body types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	data, ok := body.Data.([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestDeviceAttributesRejectsBadID(t *testing.T) {
	svc := &fakeLookupService{}

	req := httptest.NewRequest(http.MethodGet, "/devices/abc/attributes", nil)
	w := httptest.NewRecorder()
	lookupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeviceAttributesMapsNotFound(t *testing.T) {
	svc := &fakeLookupService{attrErr: pkgerrors.New(pkgerrors.CodeNotFound, "device not found")}

	req := httptest.NewRequest(http.MethodGet, "/devices/42/attributes", nil)
	w := httptest.NewRecorder()
	lookupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCriteriaForBrandRequiresBrand(t *testing.T) {
	svc := &fakeLookupService{}

	req := httptest.NewRequest(http.MethodGet, "/criteria", nil)
	w := httptest.NewRecorder()
	lookupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/criteria?brand=Apple", nil)
	w = httptest.NewRecorder()
	lookupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Apple", svc.lastBrand)
}
