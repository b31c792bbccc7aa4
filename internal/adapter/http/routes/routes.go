package routes

import (
	"log"
	"strconv"

	_ "pagos_xpto/docs" // This will be auto-generated
	"pagos_xpto/internal/adapter/http/handlers"
	"pagos_xpto/internal/adapter/persistence/repository"
	"pagos_xpto/internal/config"
	"pagos_xpto/internal/infrastructure/database"
	"pagos_xpto/internal/infrastructure/messaging"
	"pagos_xpto/internal/infrastructure/paypal"
	"pagos_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg config.Config) {
	ddb := database.ConnectDynamoDB(cfg)
	processedRepo := repository.NewProcessedEventDynamoRepository(ddb, cfg.ProcessedEventsTable)

	paypalClient := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, cfg.APIBaseURL)
	verifier := paypal.NewSignatureVerifier(paypalClient, cfg.WebhookID, cfg.VerifySignaturePath)

	publisher, err := messaging.NewNatsEventPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to the message bus: %v", err)
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(paypalClient, cfg.SuccessURL, cfg.CancelURL, cfg.BrandName)
	webhookUseCase := usecase.NewWebhookUseCase(verifier, paypalClient, publisher, processedRepo)

	paymentsHandler := handlers.NewPaymentsHandler(checkoutUseCase, webhookUseCase)

	// Rutas publicas
	root := &router.RouterGroup
	addPingRoutes(root)
	addPaymentRoutes(root, paymentsHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
