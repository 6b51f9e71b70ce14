package services

import (
	"errors"
	"testing"

	"github.com/ombahiwal/tabme-min/models"
)

func TestCreateOrderSnapshots(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	r := createRestaurant(t, db, "The Golden Fork")
	table := createTable(t, db, r.ID, 1)
	itemX := createMenuItem(t, db, r.ID, "Margherita", 10.00)
	itemY := createMenuItem(t, db, r.ID, "Lemonade", 5.50)

	order, err := orders.Create(r.ID, table.ID, []LineRequest{
		{MenuItemID: itemX.ID, Quantity: 2},
		{MenuItemID: itemY.ID, Quantity: 1},
	}, "", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.Total != 25.50 {
		t.Fatalf("expected total 25.50, got %v", order.Total)
	}
	if order.Status != models.StatusCreated {
		t.Fatalf("expected status created, got %s", order.Status)
	}
	if len(order.History) != 1 || order.History[0].Status != models.StatusCreated {
		t.Fatalf("expected a single created history entry, got %+v", order.History)
	}
	if order.PublicID == "" {
		t.Fatal("order has no public id")
	}

	// Editing the catalog afterwards must not touch the snapshots
	if err := db.Model(itemX).Update("price", 12.00).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if err := db.Model(itemX).Update("name", "Margherita Deluxe").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}

	fetched, err := orders.GetByPublicID(order.PublicID)
	if err != nil {
		t.Fatalf("GetByPublicID: %v", err)
	}
	if fetched.Total != 25.50 {
		t.Fatalf("total drifted after catalog edit: %v", fetched.Total)
	}
	for _, line := range fetched.Lines {
		if line.MenuItemID == itemX.ID {
			if line.PriceSnapshot != 10.00 {
				t.Fatalf("price snapshot drifted: %v", line.PriceSnapshot)
			}
			if line.NameSnapshot != "Margherita" {
				t.Fatalf("name snapshot drifted: %q", line.NameSnapshot)
			}
		}
	}
}

func TestCreateOrderRejections(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	r := createRestaurant(t, db, "The Golden Fork")
	other := createRestaurant(t, db, "Elsewhere")
	table := createTable(t, db, r.ID, 1)
	inactiveTable := createTable(t, db, r.ID, 2)
	if err := db.Model(inactiveTable).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	item := createMenuItem(t, db, r.ID, "Margherita", 10.00)
	foreignItem := createMenuItem(t, db, other.ID, "Foreign Dish", 7.00)
	offMenu := createMenuItem(t, db, r.ID, "Seasonal Special", 9.00)
	if err := db.Model(offMenu).Update("is_available", false).Error; err != nil {
		t.Fatalf("hide item: %v", err)
	}

	oneLine := []LineRequest{{MenuItemID: item.ID, Quantity: 1}}

	tests := []struct {
		name    string
		restID  uint
		tableID uint
		lines   []LineRequest
		wantErr error
	}{
		{name: "empty line set", restID: r.ID, tableID: table.ID, lines: nil, wantErr: ErrEmptyOrder},
		{name: "unknown table", restID: r.ID, tableID: 999, lines: oneLine, wantErr: ErrNotFound},
		{name: "inactive table", restID: r.ID, tableID: inactiveTable.ID, lines: oneLine, wantErr: ErrNotFound},
		{name: "cross-tenant table", restID: other.ID, tableID: table.ID, lines: oneLine, wantErr: ErrNotFound},
		{name: "foreign item", restID: r.ID, tableID: table.ID,
			lines: []LineRequest{{MenuItemID: foreignItem.ID, Quantity: 1}}, wantErr: ErrUnavailableItem},
		{name: "unavailable item", restID: r.ID, tableID: table.ID,
			lines: []LineRequest{{MenuItemID: offMenu.ID, Quantity: 1}}, wantErr: ErrUnavailableItem},
		{name: "one bad line aborts all", restID: r.ID, tableID: table.ID,
			lines: []LineRequest{{MenuItemID: item.ID, Quantity: 2}, {MenuItemID: offMenu.ID, Quantity: 1}},
			wantErr: ErrUnavailableItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.Create(tt.restID, tt.tableID, tt.lines, "", "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// No partial orders were persisted by any rejected creation
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted orders, found %d", count)
	}
	db.Model(&models.OrderLine{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted lines, found %d", count)
	}
}

func TestTransitionHappyPath(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	r := createRestaurant(t, db, "The Golden Fork")
	table := createTable(t, db, r.ID, 1)
	item := createMenuItem(t, db, r.ID, "Margherita", 10.00)

	order, err := orders.Create(r.ID, table.ID, []LineRequest{{MenuItemID: item.ID, Quantity: 1}}, "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	path := []models.OrderStatus{
		models.StatusAccepted,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusServed,
		models.StatusPaid,
	}
	for i, next := range path {
		updated, err := orders.Transition(r.ID, order.PublicID, next, "")
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected status %s, got %s", next, updated.Status)
		}
		// Exactly one entry per transition, plus the initial created entry
		if len(updated.History) != i+2 {
			t.Fatalf("expected %d history entries, got %d", i+2, len(updated.History))
		}
		if last := updated.History[len(updated.History)-1]; last.Status != next {
			t.Fatalf("last history entry is %s, want %s", last.Status, next)
		}
	}
}

func TestTransitionRejections(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	r := createRestaurant(t, db, "The Golden Fork")
	other := createRestaurant(t, db, "Elsewhere")
	table := createTable(t, db, r.ID, 1)
	item := createMenuItem(t, db, r.ID, "Margherita", 10.00)

	newOrder := func() *models.Order {
		o, err := orders.Create(r.ID, table.ID, []LineRequest{{MenuItemID: item.ID, Quantity: 1}}, "", "")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return o
	}

	t.Run("unknown order", func(t *testing.T) {
		_, err := orders.Transition(r.ID, "no-such-order", models.StatusAccepted, "")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("tenant mismatch", func(t *testing.T) {
		o := newOrder()
		_, err := orders.Transition(other.ID, o.PublicID, models.StatusAccepted, "")
		if !errors.Is(err, ErrTenantMismatch) {
			t.Fatalf("expected ErrTenantMismatch, got %v", err)
		}
	})

	t.Run("backwards edge", func(t *testing.T) {
		o := newOrder()
		for _, s := range []models.OrderStatus{models.StatusAccepted, models.StatusPreparing, models.StatusReady} {
			if _, err := orders.Transition(r.ID, o.PublicID, s, ""); err != nil {
				t.Fatalf("advance to %s: %v", s, err)
			}
		}
		_, err := orders.Transition(r.ID, o.PublicID, models.StatusAccepted, "")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		fetched, _ := orders.GetByPublicID(o.PublicID)
		if fetched.Status != models.StatusReady {
			t.Fatalf("status moved despite rejection: %s", fetched.Status)
		}
	})

	t.Run("terminal states are dead ends", func(t *testing.T) {
		cancelled := newOrder()
		if _, err := orders.Transition(r.ID, cancelled.PublicID, models.StatusCancelled, "changed my mind"); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		_, err := orders.Transition(r.ID, cancelled.PublicID, models.StatusAccepted, "")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition out of cancelled, got %v", err)
		}

		fetched, _ := orders.GetByPublicID(cancelled.PublicID)
		if fetched.Status != models.StatusCancelled {
			t.Fatalf("terminal status moved: %s", fetched.Status)
		}
		if len(fetched.History) != 2 {
			t.Fatalf("history grew on rejected transition: %d entries", len(fetched.History))
		}
	})

	t.Run("cancel after acceptance", func(t *testing.T) {
		o := newOrder()
		if _, err := orders.Transition(r.ID, o.PublicID, models.StatusAccepted, ""); err != nil {
			t.Fatalf("accept: %v", err)
		}
		_, err := orders.Transition(r.ID, o.PublicID, models.StatusCancelled, "")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestListForRestaurant(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	r := createRestaurant(t, db, "The Golden Fork")
	other := createRestaurant(t, db, "Elsewhere")
	table := createTable(t, db, r.ID, 1)
	otherTable := createTable(t, db, other.ID, 1)
	item := createMenuItem(t, db, r.ID, "Margherita", 10.00)
	otherItem := createMenuItem(t, db, other.ID, "Foreign Dish", 7.00)

	if _, err := orders.Create(r.ID, table.ID, []LineRequest{{MenuItemID: item.ID, Quantity: 1}}, "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := orders.Create(r.ID, table.ID, []LineRequest{{MenuItemID: item.ID, Quantity: 2}}, "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := orders.Create(other.ID, otherTable.ID, []LineRequest{{MenuItemID: otherItem.ID, Quantity: 1}}, "", ""); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	if _, err := orders.Transition(r.ID, second.PublicID, models.StatusAccepted, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}

	all, err := orders.ListForRestaurant(r.ID, nil, 0)
	if err != nil {
		t.Fatalf("ListForRestaurant: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected the tenant's 2 orders, got %d", len(all))
	}

	accepted, err := orders.ListForRestaurant(r.ID, []models.OrderStatus{models.StatusAccepted}, 0)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(accepted) != 1 || accepted[0].PublicID != second.PublicID {
		t.Fatalf("status filter returned wrong orders: %+v", accepted)
	}

	both, err := orders.ListForRestaurant(r.ID, []models.OrderStatus{models.StatusCreated, models.StatusAccepted}, 0)
	if err != nil {
		t.Fatalf("multi-status list: %v", err)
	}
	if len(both) != 2 {
		t.Fatalf("expected 2 orders for created+accepted, got %d", len(both))
	}
}

func TestGetByPublicIDNotFound(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)

	if _, err := orders.GetByPublicID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
