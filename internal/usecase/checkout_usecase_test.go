package usecase

import (
	"context"
	"errors"
	"testing"

	"pagos_xpto/internal/domain/entities"
	mock_interfaces "pagos_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func approvedOrder() entities.CreatedOrder {
	return entities.CreatedOrder{
		ID:     "ord-1",
		Status: "CREATED",
		Links: []entities.OrderLink{
			{Rel: "self", Href: "https://provider.test/orders/ord-1"},
			{Rel: "approve", Href: "https://provider.test/approve/ord-1"},
		},
	}
}

func TestCheckoutUseCase_CreateSession_Validations(t *testing.T) {
	uc := NewCheckoutUseCase(nil, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

	t.Run("empty order id", func(t *testing.T) {
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: " ", Currency: "USD", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("bad currency", func(t *testing.T) {
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "US", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency, got %v", err)
		}
		_, err = uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "U5D", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "USD"})
		if !errors.Is(err, ErrNoItems) {
			t.Fatalf("expected ErrNoItems, got %v", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "USD", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 0}}})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "USD", Items: []entities.LineItem{{Name: "A", Price: -0.01, Quantity: 1}}})
		if !errors.Is(err, ErrInvalidUnitPrice) {
			t.Fatalf("expected ErrInvalidUnitPrice, got %v", err)
		}
	})
}

func TestCheckoutUseCase_CreateSession_Rounding(t *testing.T) {
	t.Run("rounds per item before aggregation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		var draft entities.OrderDraft
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d entities.OrderDraft) (entities.CreatedOrder, error) {
				draft = d
				return approvedOrder(), nil
			})

		// 9.995 rounds up to 10.00 per item; 3 × 10.00 = 30.00.
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{
			OrderID:  "o1",
			Currency: "USD",
			Items:    []entities.LineItem{{Name: "A", Price: 9.995, Quantity: 3}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := draft.Items[0].UnitValue; got != "10.00" {
			t.Fatalf("expected unit 10.00, got %s", got)
		}
		if draft.TotalValue != "30.00" || draft.ItemTotalValue != "30.00" {
			t.Fatalf("expected total/item_total 30.00, got %s/%s", draft.TotalValue, draft.ItemTotalValue)
		}
	})

	t.Run("per-item rounding differs from aggregate rounding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		var draft entities.OrderDraft
		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d entities.OrderDraft) (entities.CreatedOrder, error) {
				draft = d
				return approvedOrder(), nil
			})

		// round(1.013) = 1.01, so the total must be 3.03; rounding the raw
		// aggregate (3.039) would give 3.04 and fail provider validation.
		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{
			OrderID:  "o2",
			Currency: "USD",
			Items:    []entities.LineItem{{Name: "B", Price: 1.013, Quantity: 3}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := draft.Items[0].UnitValue; got != "1.01" {
			t.Fatalf("expected unit 1.01, got %s", got)
		}
		if draft.TotalValue != "3.03" {
			t.Fatalf("expected total 3.03, got %s", draft.TotalValue)
		}
	})
}

func TestCheckoutUseCase_CreateSession_ProviderOutcomes(t *testing.T) {
	t.Run("provider error surfaces as session creation failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.CreatedOrder{}, errors.New("provider down"))

		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "USD", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if !errors.Is(err, ErrSessionCreationFailed) {
			t.Fatalf("expected ErrSessionCreationFailed, got %v", err)
		}
	})

	t.Run("missing approve link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.CreatedOrder{
			ID:    "ord-1",
			Links: []entities.OrderLink{{Rel: "self", Href: "https://provider.test/orders/ord-1"}},
		}, nil)

		_, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "USD", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if !errors.Is(err, ErrApprovalLinkNotFound) {
			t.Fatalf("expected ErrApprovalLinkNotFound, got %v", err)
		}
	})

	t.Run("session carries approval url and configured redirects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(approvedOrder(), nil)

		session, err := uc.CreateSession(context.Background(), entities.CheckoutRequest{OrderID: "o1", Currency: "usd", Items: []entities.LineItem{{Name: "A", Price: 1, Quantity: 1}}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.URL != "https://provider.test/approve/ord-1" {
			t.Fatalf("unexpected approval url: %s", session.URL)
		}
		if session.SuccessURL != "https://s.test/ok" || session.CancelURL != "https://s.test/no" {
			t.Fatalf("unexpected redirect urls: %+v", session)
		}
	})
}

func TestCheckoutUseCase_CaptureApprovedOrder(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, "https://s.test/ok", "https://s.test/no", "Mi Tienda")
		if err := uc.CaptureApprovedOrder(context.Background(), "  "); !errors.Is(err, ErrInvalidCaptureToken) {
			t.Fatalf("expected ErrInvalidCaptureToken, got %v", err)
		}
	})

	t.Run("provider rejection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		gateway.EXPECT().CaptureOrder(gomock.Any(), "tok-1").Return(entities.CaptureResult{}, errors.New("already captured"))

		if err := uc.CaptureApprovedOrder(context.Background(), "tok-1"); !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("expected ErrCaptureFailed, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIProviderGateway(ctrl)
		uc := NewCheckoutUseCase(gateway, "https://s.test/ok", "https://s.test/no", "Mi Tienda")

		gateway.EXPECT().CaptureOrder(gomock.Any(), "tok-1").Return(entities.CaptureResult{ID: "ord-1", Status: "COMPLETED"}, nil)

		if err := uc.CaptureApprovedOrder(context.Background(), "tok-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
