package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidCurrency       = errors.New("invalid currency code")
	ErrNoItems               = errors.New("checkout requires at least one item")
	ErrInvalidQuantity       = errors.New("item quantity must be at least 1")
	ErrInvalidUnitPrice      = errors.New("item unit price must not be negative")
	ErrInvalidCaptureToken   = errors.New("invalid capture token")
	ErrSessionCreationFailed = errors.New("payment session creation failed")
	ErrApprovalLinkNotFound  = errors.New("no approval link in provider response")
	ErrCaptureFailed         = errors.New("payment capture failed")
)

const linkRelApprove = "approve"

// ICheckoutUseCase turns a cart into a hosted checkout session and
// reconciles the success redirect.
type ICheckoutUseCase interface {
	CreateSession(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error)
	CaptureApprovedOrder(ctx context.Context, token string) error
}

type CheckoutUseCase struct {
	gateway    interfaces.IProviderGateway
	successURL string
	cancelURL  string
	brandName  string
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(gateway interfaces.IProviderGateway, successURL, cancelURL, brandName string) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: gateway, successURL: successURL, cancelURL: cancelURL, brandName: brandName}
}

// CreateSession validates the cart, computes provider amounts and delegates
// order creation.
//
// Amount math: each unit price is rounded to two decimals first, and the
// total is the sum of roundedUnit × quantity. The provider validates that
// the purchase-unit total equals the item breakdown, so rounding must
// happen per item, never on the aggregate.
func (u *CheckoutUseCase) CreateSession(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	orderID := strings.TrimSpace(req.OrderID)
	log.Printf("[checkout][usecase] create-session start order_id=%q currency=%s items=%d", orderID, req.Currency, len(req.Items))

	if orderID == "" {
		log.Printf("[checkout][usecase] invalid order id (empty)")
		return entities.CheckoutSession{}, ErrInvalidOrderID
	}
	currency, err := normalizeCurrency(req.Currency)
	if err != nil {
		log.Printf("[checkout][usecase] invalid currency order_id=%s currency=%q", orderID, req.Currency)
		return entities.CheckoutSession{}, err
	}
	if len(req.Items) == 0 {
		log.Printf("[checkout][usecase] no items order_id=%s", orderID)
		return entities.CheckoutSession{}, ErrNoItems
	}

	total := decimal.Zero
	orderItems := make([]entities.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			log.Printf("[checkout][usecase] invalid quantity order_id=%s item=%q quantity=%d", orderID, item.Name, item.Quantity)
			return entities.CheckoutSession{}, ErrInvalidQuantity
		}
		if item.Price < 0 {
			log.Printf("[checkout][usecase] invalid unit price order_id=%s item=%q price=%v", orderID, item.Name, item.Price)
			return entities.CheckoutSession{}, ErrInvalidUnitPrice
		}

		unit := decimal.NewFromFloat(item.Price).Round(2)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))

		orderItems = append(orderItems, entities.OrderItem{
			Name:      item.Name,
			Quantity:  strconv.Itoa(item.Quantity),
			UnitValue: unit.StringFixed(2),
		})
	}

	draft := entities.OrderDraft{
		CorrelationID:  orderID,
		Currency:       currency,
		TotalValue:     total.StringFixed(2),
		ItemTotalValue: total.StringFixed(2),
		Items:          orderItems,
		BrandName:      u.brandName,
		ReturnURL:      u.successURL,
		CancelURL:      u.cancelURL,
	}

	created, err := u.gateway.CreateOrder(ctx, draft)
	if err != nil {
		log.Printf("[checkout][usecase] provider order creation failed order_id=%s err=%v", orderID, err)
		return entities.CheckoutSession{}, ErrSessionCreationFailed
	}

	for _, link := range created.Links {
		if link.Rel == linkRelApprove {
			log.Printf("[checkout][usecase] create-session success order_id=%s provider_order_id=%s", orderID, created.ID)
			return entities.CheckoutSession{
				URL:        link.Href,
				SuccessURL: u.successURL,
				CancelURL:  u.cancelURL,
			}, nil
		}
	}

	log.Printf("[checkout][usecase] approval link not found order_id=%s provider_order_id=%s", orderID, created.ID)
	return entities.CheckoutSession{}, ErrApprovalLinkNotFound
}

// CaptureApprovedOrder finalizes collection of funds for the order behind
// the success-redirect token. A provider rejection surfaces as
// ErrCaptureFailed instead of a success-shaped response.
func (u *CheckoutUseCase) CaptureApprovedOrder(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		log.Printf("[checkout][usecase] capture with empty token")
		return ErrInvalidCaptureToken
	}

	result, err := u.gateway.CaptureOrder(ctx, token)
	if err != nil {
		log.Printf("[checkout][usecase] capture failed token=%s err=%v", token, err)
		return ErrCaptureFailed
	}
	log.Printf("[checkout][usecase] capture success token=%s provider_order_id=%s status=%s", token, result.ID, result.Status)
	return nil
}

func normalizeCurrency(raw string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return c, nil
}
