package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "repair_pricing/internal/adapter/http/dto/request"
	response "repair_pricing/internal/adapter/http/dto/response"
	"repair_pricing/internal/adapter/http/middleware"
	"repair_pricing/internal/infrastructure/logger"
	"repair_pricing/internal/usecase"
	"repair_pricing/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid estimate payload", http.StatusBadRequest)
)

// PriceEstimateHandler serves price estimates over HTTP.
type PriceEstimateHandler struct {
	usecase      usecase.IPriceEstimationUseCase
	maxBatchSize int
}

func NewPriceEstimateHandler(uc usecase.IPriceEstimationUseCase, maxBatchSize int) *PriceEstimateHandler {
	return &PriceEstimateHandler{usecase: uc, maxBatchSize: maxBatchSize}
}

// Estimate godoc
// @Summary      Estimate a repair price
// @Description  Returns the exact stored price or a derived estimate. With save=true a derived estimate is persisted unless an authoritative price exists.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      request.EstimateRequest  true  "Estimate request"
// @Success      200      {object}  response.EstimateResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /pricing/estimate [post]
func (h *PriceEstimateHandler) Estimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	req := payload.ToUseCase()
	reqID := middleware.GetRequestID(c)

	if !payload.Save {
		est, err := h.usecase.Estimate(c.Request.Context(), req)
		if err != nil {
			h.writeError(c, reqID, err)
			return
		}
		c.JSON(http.StatusOK, response.FromEstimate(est))
		return
	}

	est, saved, err := h.usecase.EstimateAndSave(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, reqID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(est).WithSave(saved))
}

// EstimateBatch godoc
// @Summary      Estimate many repair prices
// @Description  Resolves every item independently; failures are reported per item in request order.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      request.BatchEstimateRequest  true  "Batch request"
// @Success      200      {object}  response.BatchEstimateResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /pricing/estimate/batch [post]
func (h *PriceEstimateHandler) EstimateBatch(c *gin.Context) {
	var payload request.BatchEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	if h.maxBatchSize > 0 && len(payload.Items) > h.maxBatchSize {
		appErr := pkg.NewDomainErrorSimple("BATCH_TOO_LARGE",
			fmt.Sprintf("Batch exceeds the limit of %d items", h.maxBatchSize), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	results := h.usecase.EstimateBatch(c.Request.Context(), payload.ToUseCase(), payload.Save)
	out := response.FromBatch(results, DescribeEstimateError)

	logger.Info("[pricing][handler] batch estimated",
		zap.Int("items", len(results)),
		zap.Int("failed", out.Failed),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	c.JSON(http.StatusOK, out)
}

func (h *PriceEstimateHandler) writeError(c *gin.Context, reqID string, err error) {
	appErr := mapPriceEstimateError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("[pricing][handler] estimate failed", zap.Error(err), zap.String("request_id", reqID))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// DescribeEstimateError gives the public code and message of an estimation error.
func DescribeEstimateError(err error) (string, string) {
	appErr := mapPriceEstimateError(err)
	return appErr.Code, appErr.Message
}

func mapPriceEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDeviceModelID), errors.Is(err, usecase.ErrInvalidRepairTypeID), errors.Is(err, usecase.ErrInvalidPartQuality):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDeviceModelNotFound):
		return pkg.NewDomainErrorSimple("DEVICE_MODEL_NOT_FOUND", "Device model not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRepairTypeNotFound):
		return pkg.NewDomainErrorSimple("REPAIR_TYPE_NOT_FOUND", "Repair type not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoPricingData):
		return pkg.NewDomainErrorSimple("NO_PRICING_DATA", "No pricing data available for this repair", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
