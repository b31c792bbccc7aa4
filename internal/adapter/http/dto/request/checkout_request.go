package request

import (
	"pagos_xpto/internal/domain/entities"
)

type LineItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// CheckoutSessionRequest is the payload for the create-payment-session
// route. Field names follow the callers of the original gateway
// (orderId/currency/items).
type CheckoutSessionRequest struct {
	OrderID  string            `json:"orderId" binding:"required"`
	Currency string            `json:"currency" binding:"required"`
	Items    []LineItemRequest `json:"items" binding:"required"`
}

func (r CheckoutSessionRequest) ToEntity() entities.CheckoutRequest {
	items := make([]entities.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.LineItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return entities.CheckoutRequest{
		OrderID:  r.OrderID,
		Currency: r.Currency,
		Items:    items,
	}
}
