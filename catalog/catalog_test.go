package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterModes(t *testing.T) {
	if f := buildFilter(ModeAll, ""); len(f) != 0 {
		t.Errorf("all mode should produce an empty filter, got %v", f)
	}
	if f := buildFilter(ModeFeatured, ""); f["is_featured"] != true {
		t.Errorf("featured filter missing, got %v", f)
	}
	if f := buildFilter(ModeOffers, ""); f["is_offer"] != true {
		t.Errorf("offers filter missing, got %v", f)
	}
}

func TestBuildFilterSearch(t *testing.T) {
	f := buildFilter(ModeAll, "taza (roja)")
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3-branch $or, got %v", f)
	}
	first := or[0].(bson.M)
	re := first["name"].(primitive.Regex)
	if re.Options != "i" {
		t.Errorf("search should be case-insensitive, got options %q", re.Options)
	}
	// regex metacharacters must be quoted
	if re.Pattern == "taza (roja)" {
		t.Errorf("pattern should be regex-quoted, got %q", re.Pattern)
	}
}

func TestGetProductsUnconfigured(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/products", GetProducts)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 without a database", rec.Code)
	}
}
