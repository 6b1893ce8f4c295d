package routes

import (
	"repair_pricing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPricing = "/pricing"
)

func addPricingRoutes(rg *gin.RouterGroup, h *handlers.PriceEstimateHandler) {
	pricing := rg.Group(PathPricing)
	{
		pricing.POST("/estimate", h.Estimate)
		pricing.POST("/estimate/batch", h.EstimateBatch)
	}
}
