package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	response "repair_pricing/internal/adapter/http/dto/response"
	"repair_pricing/internal/adapter/http/handlers/mocks"
	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase"
	"repair_pricing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func derivedEstimate() entities.Estimate {
	c := 0.85
	return entities.Estimate{
		Key:               entities.PriceKey{DeviceModelID: 42, RepairTypeID: 7, PartQuality: entities.PartQualityOEM},
		TotalPrice:        decimal.RequireFromString("192.00"),
		IsEstimated:       true,
		ConfidenceScore:   &c,
		Source:            entities.EstimateSourceQualityFallback,
		ReferenceModelIDs: []uint{42},
	}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPriceEstimateHandler_Estimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*mocks.MockIPriceEstimationUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPriceEstimationUseCase(ctrl)
		h := NewPriceEstimateHandler(uc, 10)
		r := gin.New()
		r.POST("/v1/pricing/estimate", h.Estimate)
		return uc, r
	}

	t.Run("invalid json", func(t *testing.T) {
		_, r := setup(t)
		w := postJSON(r, "/v1/pricing/estimate", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing device model", func(t *testing.T) {
		_, r := setup(t)
		w := postJSON(r, "/v1/pricing/estimate", `{"repair_type_id":7,"part_quality":"OEM"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("estimate without save", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().
			Estimate(gomock.Any(), usecase.EstimateRequest{DeviceModelID: 42, RepairTypeID: 7, PartQuality: entities.PartQualityOEM}).
			Return(derivedEstimate(), nil)

		w := postJSON(r, "/v1/pricing/estimate", `{"device_model_id":42,"repair_type_id":7,"part_quality":"oem"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var body response.EstimateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.TotalPrice != "192.00" || body.Source != "QUALITY_FALLBACK" || body.Persisted != nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("estimate with save reports conflict", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().EstimateAndSave(gomock.Any(), gomock.Any()).
			Return(derivedEstimate(), entities.SaveResult{Conflict: true, Reason: usecase.SaveReasonAuthoritativeExists}, nil)

		w := postJSON(r, "/v1/pricing/estimate", `{"device_model_id":42,"repair_type_id":7,"part_quality":"OEM","save":true}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var body response.EstimateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Persisted == nil || *body.Persisted || body.PersistReason != usecase.SaveReasonAuthoritativeExists {
			t.Fatalf("unexpected persist fields: %+v", body)
		}
	})

	errCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid quality", fmt.Errorf("%w: %q", usecase.ErrInvalidPartQuality, "GOLD"), http.StatusBadRequest, "INVALID_REQUEST"},
		{"device model not found", usecase.ErrDeviceModelNotFound, http.StatusNotFound, "DEVICE_MODEL_NOT_FOUND"},
		{"repair type not found", usecase.ErrRepairTypeNotFound, http.StatusNotFound, "REPAIR_TYPE_NOT_FOUND"},
		{"no pricing data", usecase.ErrNoPricingData, http.StatusUnprocessableEntity, "NO_PRICING_DATA"},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, r := setup(t)
			uc.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, tc.err)

			w := postJSON(r, "/v1/pricing/estimate", `{"device_model_id":42,"repair_type_id":7,"part_quality":"GOLD"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			var body pkg.HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
			if strings.Contains(body.Message, "connection reset") {
				t.Fatalf("internal error leaked: %s", body.Message)
			}
		})
	}
}

func TestPriceEstimateHandler_EstimateBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T, limit int) (*mocks.MockIPriceEstimationUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPriceEstimationUseCase(ctrl)
		h := NewPriceEstimateHandler(uc, limit)
		r := gin.New()
		r.POST("/v1/pricing/estimate/batch", h.EstimateBatch)
		return uc, r
	}

	t.Run("empty items", func(t *testing.T) {
		_, r := setup(t, 10)
		w := postJSON(r, "/v1/pricing/estimate/batch", `{"items":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("too many items", func(t *testing.T) {
		_, r := setup(t, 1)
		w := postJSON(r, "/v1/pricing/estimate/batch",
			`{"items":[{"device_model_id":1,"repair_type_id":7,"part_quality":"OEM"},{"device_model_id":2,"repair_type_id":7,"part_quality":"OEM"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("per item results", func(t *testing.T) {
		uc, r := setup(t, 10)
		est := derivedEstimate()
		uc.EXPECT().
			EstimateBatch(gomock.Any(), []usecase.EstimateRequest{
				{DeviceModelID: 42, RepairTypeID: 7, PartQuality: entities.PartQualityOEM},
				{DeviceModelID: 99, RepairTypeID: 7, PartQuality: entities.PartQualityStandard},
			}, true).
			Return([]usecase.BatchItemResult{
				{Estimate: &est, Save: &entities.SaveResult{Persisted: true}},
				{Err: usecase.ErrNoPricingData},
			})

		w := postJSON(r, "/v1/pricing/estimate/batch",
			`{"save":true,"items":[{"device_model_id":42,"repair_type_id":7,"part_quality":"OEM"},{"device_model_id":99,"repair_type_id":7,"part_quality":"standard"}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var body response.BatchEstimateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Succeeded != 1 || body.Failed != 1 {
			t.Fatalf("unexpected summary: %+v", body)
		}
		if body.Results[0].Estimate == nil || body.Results[0].Estimate.Persisted == nil || !*body.Results[0].Estimate.Persisted {
			t.Fatalf("unexpected first item: %+v", body.Results[0])
		}
		if body.Results[1].ErrorCode != "NO_PRICING_DATA" || body.Results[1].Estimate != nil {
			t.Fatalf("unexpected second item: %+v", body.Results[1])
		}
	})
}
