package main

import (
	_ "pagos_xpto/docs"
	"pagos_xpto/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Payments Service API
// @version         1.0
// @description     Payment-gateway integration service (PayPal checkout sessions + webhook dispatch to NATS).
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000

// @BasePath  /

func main() {
	routes.Run()
}
