package orders

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catashop/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSummarize(t *testing.T) {
	results := []models.StockResult{
		{ProductID: "p1", Outcome: "decremented"},
		{ProductID: "p2", Outcome: "decremented"},
		{ProductID: "p3", Outcome: "missing"},
		{ProductID: "p4", Outcome: "failed"},
	}
	counts := summarize(results)
	if counts["decremented"] != 2 || counts["missing"] != 1 || counts["failed"] != 1 {
		t.Fatalf("unexpected summary: %v", counts)
	}
	if len(summarize(nil)) != 0 {
		t.Fatal("empty results should summarize to an empty map")
	}
}

func TestClaimFilterExcludesSoldOrders(t *testing.T) {
	filter := claimFilter("o1")

	if filter["orderid"] != "o1" {
		t.Fatalf("filter should match the order id, got %v", filter["orderid"])
	}
	status, ok := filter["status"].(bson.M)
	if !ok {
		t.Fatalf("status clause missing: %v", filter)
	}
	if status["$ne"] != models.OrderStatusSold {
		t.Fatalf("status clause must exclude already-sold orders, got %v", status)
	}
}

func TestBulkFilterMatchesRequestedIDs(t *testing.T) {
	filter := bulkFilter([]string{"o1", "o2"})

	clause, ok := filter["orderid"].(bson.M)
	if !ok {
		t.Fatalf("orderid clause missing: %v", filter)
	}
	ids, ok := clause["$in"].([]string)
	if !ok || len(ids) != 2 || ids[0] != "o1" || ids[1] != "o2" {
		t.Fatalf("unexpected $in clause: %v", clause)
	}
}

func TestDeleteOrdersUnconfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/orders", strings.NewReader(`{"orderIds":["o1"]}`))
	rec := httptest.NewRecorder()
	DeleteOrders(rec, req, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured delete status = %d, want 503", rec.Code)
	}
}

func TestOrderRef(t *testing.T) {
	withReadable := models.Order{OrderID: "0a1b2c3d-4e5f", ReadableID: "A1B2C3"}
	if got := orderRef(withReadable); got != "A1B2C3" {
		t.Errorf("orderRef = %q, want readable id", got)
	}

	withoutReadable := models.Order{OrderID: "0a1b2c3d-4e5f-6789"}
	if got := orderRef(withoutReadable); got != "0a1b2c3d" {
		t.Errorf("orderRef = %q, want first 8 chars of order id", got)
	}

	short := models.Order{OrderID: "abc"}
	if got := orderRef(short); got != "abc" {
		t.Errorf("orderRef = %q, want full short id", got)
	}
}

func TestWhatsAppURLUsesOrderSnapshot(t *testing.T) {
	order := models.Order{
		OrderID:    "x",
		ReadableID: "Z9Y8X7",
		Items:      []models.CartItem{{Name: "Taza", Price: 2000, Quantity: 2}},
		Total:      4000,
	}
	url := whatsAppURL(order)
	if !strings.HasPrefix(url, "https://wa.me/56932422471?text=") {
		t.Fatalf("unexpected link: %s", url)
	}
	if !strings.Contains(url, "Z9Y8X7") {
		t.Fatalf("link should embed the readable id: %s", url)
	}
}
