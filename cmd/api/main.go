package main

import (
	_ "repair_pricing/docs"
	"repair_pricing/internal/adapter/http/routes"
	"repair_pricing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Repair Pricing API
// @version         1.0
// @description     Price estimation for device repairs: exact prices, quality fallback and similar-model analogy.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	if err := routes.Run(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
