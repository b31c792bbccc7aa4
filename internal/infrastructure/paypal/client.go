package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase/interfaces"
)

const (
	pathOAuthToken   = "/v1/oauth2/token"
	pathOrders       = "/v2/checkout/orders"
	pathCapturesBase = "/v2/payments/captures"
)

// Client is a REST client for PayPal's orders/payments API. Bearer tokens
// are exchanged per request via client credentials; there is no token cache.
type Client struct {
	clientID string
	secret   string
	baseURL  string
	httpc    *http.Client
}

var _ interfaces.IProviderGateway = (*Client)(nil)

func NewClient(clientID, secret, baseURL string) *Client {
	return &Client{
		clientID: clientID,
		secret:   secret,
		baseURL:  strings.TrimRight(baseURL, "/"),
		httpc:    &http.Client{},
	}
}

// CreateOrder creates a CAPTURE-intent order with a single purchase unit.
func (c *Client) CreateOrder(ctx context.Context, draft entities.OrderDraft) (entities.CreatedOrder, error) {
	items := make([]orderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, orderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			UnitAmount: money{
				CurrencyCode: draft.Currency,
				Value:        it.UnitValue,
			},
		})
	}

	body := orderRequest{
		Intent: intentCapture,
		PurchaseUnits: []purchaseUnit{
			{
				Items: items,
				Amount: purchaseUnitAmount{
					CurrencyCode: draft.Currency,
					Value:        draft.TotalValue,
					Breakdown: amountBreakdown{
						ItemTotal: money{
							CurrencyCode: draft.Currency,
							Value:        draft.ItemTotalValue,
						},
					},
				},
				CustomID: draft.CorrelationID,
			},
		},
		ApplicationContext: applicationContext{
			BrandName:   draft.BrandName,
			LandingPage: landingPageNoPreference,
			UserAction:  userActionPayNow,
			ReturnURL:   draft.ReturnURL,
			CancelURL:   draft.CancelURL,
		},
	}

	raw, err := c.doAuthorized(ctx, http.MethodPost, pathOrders, body)
	if err != nil {
		return entities.CreatedOrder{}, err
	}

	var resp orderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.CreatedOrder{}, fmt.Errorf("decoding order response: %w", err)
	}

	links := make([]entities.OrderLink, 0, len(resp.Links))
	for _, l := range resp.Links {
		links = append(links, entities.OrderLink{Rel: l.Rel, Href: l.Href})
	}
	return entities.CreatedOrder{ID: resp.ID, Status: resp.Status, Links: links}, nil
}

// CaptureOrder finalizes collection of funds for an approved order.
func (c *Client) CaptureOrder(ctx context.Context, token string) (entities.CaptureResult, error) {
	raw, err := c.doAuthorized(ctx, http.MethodPost, pathOrders+"/"+token+"/capture", nil)
	if err != nil {
		return entities.CaptureResult{}, err
	}

	var resp captureResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.CaptureResult{}, fmt.Errorf("decoding capture response: %w", err)
	}
	return entities.CaptureResult{ID: resp.ID, Status: resp.Status}, nil
}

// GetCaptureDetail fetches the full payment detail for a capture id. The
// body is returned raw; schemas vary between provider API versions and
// downstream consumers receive it as-is.
func (c *Client) GetCaptureDetail(ctx context.Context, captureID string) (json.RawMessage, error) {
	raw, err := c.doAuthorized(ctx, http.MethodGet, pathCapturesBase+"/"+captureID, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// requestToken exchanges client credentials for a bearer token.
func (c *Client) requestToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathOAuthToken, strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting oauth token: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading oauth token response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oauth token request returned %d: %s", res.StatusCode, truncate(raw))
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", fmt.Errorf("decoding oauth token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("oauth token response without access_token")
	}
	return tok.AccessToken, nil
}

// doAuthorized fetches a bearer token and performs one JSON request against
// the API. Non-2xx responses become errors carrying the response body.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body any) ([]byte, error) {
	token, err := c.requestToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.doJSON(ctx, method, path, token, body)
}

func (c *Client) doJSON(ctx context.Context, method, path, bearer string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of %s %s: %w", method, path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s returned %d: %s", method, path, res.StatusCode, truncate(raw))
	}
	return raw, nil
}

func truncate(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
