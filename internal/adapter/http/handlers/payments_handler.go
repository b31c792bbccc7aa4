package handlers

import (
	"errors"
	"log"
	"net/http"

	"pagos_xpto/internal/adapter/http/dto/request"
	"pagos_xpto/internal/adapter/http/dto/response"
	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase"
	"pagos_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentsHandler handles HTTP requests for checkout sessions, the
// provider's success/cancel redirects and inbound webhooks.

type PaymentsHandler struct {
	checkout usecase.ICheckoutUseCase
	webhook  usecase.IWebhookUseCase
}

func NewPaymentsHandler(checkout usecase.ICheckoutUseCase, webhook usecase.IWebhookUseCase) *PaymentsHandler {
	return &PaymentsHandler{checkout: checkout, webhook: webhook}
}

// CreatePaymentSession turns a cart into a hosted checkout session.
//
// @Summary      Create payment session
// @Description  Creates a hosted checkout session at the payment provider and returns the approval URL.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckoutSessionRequest  true  "Cart"
// @Success      200      {object}  response.CheckoutSessionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /payments/create-payment-session [post]
func (h *PaymentsHandler) CreatePaymentSession(c *gin.Context) {
	var req request.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payments][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[payments][handler] create-session start order_id=%s", req.OrderID)
	session, err := h.checkout.CreateSession(c.Request.Context(), req.ToEntity())
	if err != nil {
		log.Printf("[payments][handler] create-session failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payments][handler] create-session success order_id=%s", req.OrderID)

	c.JSON(http.StatusOK, response.FromCheckoutSession(session))
}

// Success captures the order behind the provider's success redirect.
//
// @Summary      Success redirect
// @Description  Captures the approved order referenced by the redirect token.
// @Tags         payments
// @Produce      json
// @Param        token  query     string  true  "Capture token"
// @Success      200    {object}  response.RedirectResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      502    {object}  pkg.HTTPError
// @Router       /payments/success [get]
func (h *PaymentsHandler) Success(c *gin.Context) {
	token := c.Query("token")
	log.Printf("[payments][handler] success redirect token=%s", token)

	if err := h.checkout.CaptureApprovedOrder(c.Request.Context(), token); err != nil {
		log.Printf("[payments][handler] capture failed token=%s err=%v", token, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.RedirectResponse{OK: true, Message: "Payment successful"})
}

// Cancel acknowledges the provider's cancel redirect.
//
// @Summary      Cancel redirect
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.RedirectResponse
// @Router       /payments/cancel [get]
func (h *PaymentsHandler) Cancel(c *gin.Context) {
	log.Printf("[payments][handler] cancel redirect")
	c.JSON(http.StatusOK, response.RedirectResponse{OK: false, Message: "Payment cancelled"})
}

// Webhook verifies and dispatches an inbound provider notification.
//
// The webhook contract requires a 2xx for anything verified, including
// unrecognized event types and duplicate deliveries, so the provider stops
// retrying. 400 means the signature did not verify; 500 is the only place
// an error message reaches the caller as text.
//
// @Summary      Provider webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.WebhookAckResponse
// @Failure      400  {string}  string
// @Failure      500  {string}  string
// @Router       /payments/webhook [post]
func (h *PaymentsHandler) Webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[payments][handler] webhook body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	envelope := entities.WebhookEnvelope{
		TransmissionID: c.GetHeader("paypal-transmission-id"),
		Signature:      c.GetHeader("paypal-transmission-sig"),
		Timestamp:      c.GetHeader("paypal-transmission-time"),
		CertURL:        c.GetHeader("paypal-cert-url"),
		AuthAlgo:       c.GetHeader("paypal-auth-algo"),
		Body:           raw,
	}

	outcome, err := h.webhook.Handle(c.Request.Context(), envelope)
	if errors.Is(err, usecase.ErrVerificationFailed) {
		c.String(http.StatusBadRequest, "Invalid Signature")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Webhook Error: %s", err.Error())
		return
	}

	log.Printf("[payments][handler] webhook handled event_type=%s published=%t duplicate=%t", outcome.EventType, outcome.Published, outcome.Duplicate)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Sig: envelope.Signature})
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidCurrency),
		errors.Is(err, usecase.ErrNoItems),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidUnitPrice),
		errors.Is(err, usecase.ErrInvalidCaptureToken):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrApprovalLinkNotFound):
		return pkg.NewDomainErrorSimple("APPROVAL_LINK_NOT_FOUND", "Provider returned no approval link", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrSessionCreationFailed):
		return pkg.NewDomainErrorSimple("SESSION_CREATION_FAILED", "Payment session could not be created", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrCaptureFailed):
		return pkg.NewDomainErrorSimple("PAYMENT_CAPTURE_FAILED", "Payment could not be captured", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
