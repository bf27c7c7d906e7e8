package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"
)

func sampleOrderItems() cart.Cart {
	return cart.Cart{
		{ProductID: "p1", Name: "Taza", Price: "10.00", Quantity: 2},
		{ProductID: "p2", Name: "Plato", Price: "5.00", Quantity: 1},
	}
}

func TestOrderCreateStartsPending(t *testing.T) {
	env := newServiceTestEnv(t, "order_create")
	if _, err := env.settings.UpdateBusinessSetting(BusinessSetting{BusinessName: "Dulce Hogar", WhatsAppNumber: "+57 300 1234567"}); err != nil {
		t.Fatalf("save business setting failed: %v", err)
	}

	result, err := env.orders.Create(CreateOrderInput{
		Items:       sampleOrderItems(),
		TotalAmount: "25.00",
		Notes:       " sin prisa ",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	order := result.Order
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.TotalAmount.String() != "25.00" {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Taza" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if !strings.Contains(result.WhatsApp.Text, "Dulce Hogar") {
		t.Fatalf("whatsapp text missing business name: %s", result.WhatsApp.Text)
	}
	if !strings.HasPrefix(result.WhatsApp.Link, "https://wa.me/573001234567") {
		t.Fatalf("unexpected whatsapp link: %s", result.WhatsApp.Link)
	}

	stored, err := env.orders.Get(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.CustomerNotes != "sin prisa" || len(stored.Items) != 2 || stored.Items[1].ProductID != "p2" {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
}

func TestOrderTotalIsTrusted(t *testing.T) {
	env := newServiceTestEnv(t, "order_trusted_total")
	result, err := env.orders.Create(CreateOrderInput{Items: sampleOrderItems(), TotalAmount: "1.00"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.Order.TotalAmount.String() != "1.00" {
		t.Fatalf("total must not be recomputed, got %s", result.Order.TotalAmount.String())
	}
}

func TestOrderCreateValidation(t *testing.T) {
	env := newServiceTestEnv(t, "order_validation")

	if _, err := env.orders.Create(CreateOrderInput{TotalAmount: "10"}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected invalid item for empty cart, got %v", err)
	}
	bad := cart.Cart{{ProductID: "p1", Name: "Taza", Price: "x", Quantity: 1}}
	if _, err := env.orders.Create(CreateOrderInput{Items: bad, TotalAmount: "10"}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected invalid item for bad price, got %v", err)
	}
	for _, total := range []string{"", "abc", "-1"} {
		if _, err := env.orders.Create(CreateOrderInput{Items: sampleOrderItems(), TotalAmount: total}); !errors.Is(err, ErrInvalidOrderAmount) {
			t.Fatalf("expected invalid amount for %q, got %v", total, err)
		}
	}
}

func TestOrderCreateFromStoredCartAndClear(t *testing.T) {
	env := newServiceTestEnv(t, "order_from_cart")
	product := mustCreateProduct(t, env, ProductInput{Name: "Taza", BasePrice: "10"})
	if _, err := env.carts.Add("cart-1", product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := env.orders.Create(CreateOrderInput{CartKey: "cart-1", TotalAmount: "10.00", ClearCart: true})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if len(result.Order.Items) != 1 || result.Order.Items[0].ProductID != product.ID {
		t.Fatalf("expected cart snapshot in order: %+v", result.Order.Items)
	}
	stored, err := env.carts.Get("cart-1")
	if err != nil || len(stored) != 0 {
		t.Fatalf("cart should be cleared: %v %+v", err, stored)
	}
}

func TestOrderCreateKeepsCartByDefault(t *testing.T) {
	env := newServiceTestEnv(t, "order_keep_cart")
	product := mustCreateProduct(t, env, ProductInput{Name: "Taza", BasePrice: "10"})
	if _, err := env.carts.Add("cart-1", product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.orders.Create(CreateOrderInput{CartKey: "cart-1", TotalAmount: "10.00"}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	stored, err := env.carts.Get("cart-1")
	if err != nil || len(stored) != 1 {
		t.Fatalf("cart should be kept: %v %+v", err, stored)
	}
}

func TestOrderSetStatusIsPermissive(t *testing.T) {
	env := newServiceTestEnv(t, "order_status")
	result, err := env.orders.Create(CreateOrderInput{Items: sampleOrderItems(), TotalAmount: "25.00"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	id := result.Order.ID

	order, err := env.orders.SetStatus(id, constants.OrderStatusCompleted)
	if err != nil || order.Status != constants.OrderStatusCompleted {
		t.Fatalf("complete order failed: %v", err)
	}
	order, err = env.orders.SetStatus(id, constants.OrderStatusPending)
	if err != nil || order.Status != constants.OrderStatusPending {
		t.Fatalf("completed -> pending should be accepted: %v", err)
	}
	if _, err := env.orders.SetStatus(id, "shipped"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := env.orders.SetStatus("missing", constants.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderListAndSummary(t *testing.T) {
	env := newServiceTestEnv(t, "order_list")
	for i := 0; i < 3; i++ {
		if _, err := env.orders.Create(CreateOrderInput{Items: sampleOrderItems(), TotalAmount: "25.00"}); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	orders, total, err := env.orders.List(repository.OrderListFilter{Page: 1, PageSize: 2, Status: constants.OrderStatusPending})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 3 || len(orders) != 2 {
		t.Fatalf("expected 3 total and page of 2, got %d/%d", total, len(orders))
	}
	summary, err := env.orders.StatusSummary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary[constants.OrderStatusPending] != 3 || summary[constants.OrderStatusCompleted] != 0 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestPrepareStatusNotice(t *testing.T) {
	env := newServiceTestEnv(t, "order_status_notice")
	if _, err := env.settings.UpdateBusinessSetting(BusinessSetting{BusinessName: "Dulce Hogar", WhatsAppNumber: "+57 300 1234567"}); err != nil {
		t.Fatalf("save business setting failed: %v", err)
	}
	result, err := env.orders.Create(CreateOrderInput{Items: sampleOrderItems(), TotalAmount: "25.00", Currency: "USD"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	notice, err := env.orders.PrepareStatusNotice(queue.OrderStatusNotifyPayload{OrderID: result.Order.ID, Status: constants.OrderStatusCompleted})
	if err != nil {
		t.Fatalf("prepare notice failed: %v", err)
	}
	if !strings.Contains(notice.WhatsApp.Text, "Dulce Hogar") || !strings.Contains(notice.WhatsApp.Text, "completado") || !strings.Contains(notice.WhatsApp.Text, "$25.00") {
		t.Fatalf("unexpected notice text: %q", notice.WhatsApp.Text)
	}
	if !strings.HasPrefix(notice.WhatsApp.Link, "https://wa.me/573001234567?text=") {
		t.Fatalf("unexpected notice link: %q", notice.WhatsApp.Link)
	}

	if _, err := env.orders.PrepareStatusNotice(queue.OrderStatusNotifyPayload{OrderID: "missing"}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}
