package entities

// LineItem is a single cart line. Price is the unit price as received from
// the caller; rounding to two decimals happens per item at session creation,
// before aggregation.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CheckoutRequest is the cart to turn into a hosted checkout session.
//
// OrderID is an opaque caller identifier. The provider has no native
// metadata field, so it travels through the order's single custom id and
// comes back on webhook events (correlation token).
type CheckoutRequest struct {
	OrderID  string     `json:"orderId"`
	Currency string     `json:"currency"`
	Items    []LineItem `json:"items"`
}

// CheckoutSession is the created hosted-checkout session. Immutable once
// returned; the provider holds all server-side state.
type CheckoutSession struct {
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// OrderItem carries amounts already rounded and serialized with two
// decimals, the way the provider validates them.
type OrderItem struct {
	Name      string
	Quantity  string
	UnitValue string
}

// OrderDraft is the provider-neutral order creation payload assembled by the
// session orchestrator. TotalValue must equal the sum of the already-rounded
// per-item amounts, so it is carried pre-formatted rather than recomputed.
type OrderDraft struct {
	CorrelationID  string
	Currency       string
	TotalValue     string
	ItemTotalValue string
	Items          []OrderItem
	BrandName      string
	ReturnURL      string
	CancelURL      string
}

// OrderLink is a HATEOAS link from the provider's order response.
type OrderLink struct {
	Rel  string
	Href string
}

// CreatedOrder is the provider's view of a freshly created order.
type CreatedOrder struct {
	ID     string
	Status string
	Links  []OrderLink
}

// CaptureResult reports the outcome of capturing an approved order.
type CaptureResult struct {
	ID     string
	Status string
}
