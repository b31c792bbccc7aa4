package routes

import (
	"pagos_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentsHandler *handlers.PaymentsHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/create-payment-session", paymentsHandler.CreatePaymentSession)
		payments.GET("/success", paymentsHandler.Success)
		payments.GET("/cancel", paymentsHandler.Cancel)
		payments.POST("/webhook", paymentsHandler.Webhook)
	}
}
