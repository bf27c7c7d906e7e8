package repository

import (
	"testing"
	"time"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	db := openRepositoryTestDB(t, "order_create")
	repo := NewOrderRepository(db)

	order := &models.Order{
		ID:          "o1",
		Status:      constants.OrderStatusPending,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("25.50")),
		Currency:    constants.CurrencyUSD,
	}
	items := []models.OrderItem{
		{ProductID: "p2", Name: "Second", Price: "5.50", Quantity: 1},
		{ProductID: "p1", Name: "First", Price: "10.00", Quantity: 2},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := repo.GetByID("o1")
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.TotalAmount.String() != "25.50" {
		t.Fatalf("unexpected total: %s", got.TotalAmount.String())
	}
	if len(got.Items) != 2 || got.Items[0].ProductID != "p2" {
		t.Fatalf("items order not preserved: %+v", got.Items)
	}

	missing, err := repo.GetByID("missing")
	if err != nil || missing != nil {
		t.Fatalf("missing order should return nil,nil: %v %v", missing, err)
	}
}

func TestOrderRepositoryListAndStatus(t *testing.T) {
	db := openRepositoryTestDB(t, "order_list")
	repo := NewOrderRepository(db)
	base := time.Now().Add(-time.Hour)

	for idx, id := range []string{"o1", "o2", "o3"} {
		order := &models.Order{ID: id, Status: constants.OrderStatusPending, CreatedAt: base.Add(time.Duration(idx) * time.Minute)}
		if err := repo.Create(order, nil); err != nil {
			t.Fatalf("create order %s failed: %v", id, err)
		}
	}
	if affected, err := repo.UpdateStatus("o2", constants.OrderStatusCompleted); err != nil || affected != 1 {
		t.Fatalf("update status failed: affected=%d err=%v", affected, err)
	}

	orders, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 3 || len(orders) != 2 || orders[0].ID != "o3" {
		t.Fatalf("unexpected page: total=%d orders=%+v", total, orders)
	}

	pending, total, err := repo.List(OrderListFilter{Status: constants.OrderStatusPending})
	if err != nil || total != 2 || len(pending) != 2 {
		t.Fatalf("status filter failed: total=%d err=%v", total, err)
	}

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.OrderStatusPending] != 2 || counts[constants.OrderStatusCompleted] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
