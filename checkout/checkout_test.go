package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"catashop/cart"
	"catashop/models"

	"github.com/julienschmidt/httprouter"
)

func validForm() CustomerForm {
	return CustomerForm{
		Name:    "Juan Pérez",
		RUT:     "12.345.678-9",
		Address: "Calle Principal 123, Santiago",
		Email:   "juan@ejemplo.com",
		Phone:   "+56 9 1234 5678",
		Agency:  "Chilexpress",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	f := validForm()
	if errs := f.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	f := CustomerForm{Agency: "Starken"}
	errs := f.Validate()
	if len(errs) != 5 {
		t.Fatalf("expected 5 field errors, got %d: %+v", len(errs), errs)
	}

	seen := make(map[string]bool)
	for _, e := range errs {
		seen[e.Field] = true
	}
	for _, field := range []string{"name", "rut", "address", "email", "phone"} {
		if !seen[field] {
			t.Errorf("missing error for %s", field)
		}
	}
}

func TestValidateWhitespaceOnlyIsEmpty(t *testing.T) {
	f := validForm()
	f.Name = "   "
	errs := f.Validate()
	if len(errs) != 1 || errs[0].Field != "name" {
		t.Fatalf("expected single name error, got %+v", errs)
	}
}

func TestValidateUnknownAgency(t *testing.T) {
	f := validForm()
	f.Agency = "Fedex"
	errs := f.Validate()
	if len(errs) != 1 || errs[0].Field != "agency" {
		t.Fatalf("expected agency error, got %+v", errs)
	}
}

// End-to-end over the HTTP surface, without a database: the order is still
// generated and the WhatsApp link produced, with the message_only outcome.
func TestSubmitCheckoutFlow(t *testing.T) {
	manager := cart.NewManager()
	ch := NewHandlers(manager, "+56932422471")
	carth := cart.NewHandlers(manager)

	router := httprouter.New()
	router.POST("/api/cart/items", carth.AddItem)
	router.POST("/api/checkout", ch.Submit)

	// seed the cart
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId":"p1","name":"Taza","category":"Cocina","price":2000,"stock":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	session := rec.Header().Get(cart.SessionHeader)
	if session == "" {
		t.Fatal("no session minted")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId":"p1","name":"Taza","category":"Cocina","price":2000,"stock":5}`))
	req.Header.Set(cart.SessionHeader, session)
	router.ServeHTTP(httptest.NewRecorder(), req)

	body, _ := json.Marshal(validForm())
	req = httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(string(body)))
	req.Header.Set(cart.SessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}

	if resp.Order.Status != models.OrderStatusNew {
		t.Errorf("order status = %q, want new", resp.Order.Status)
	}
	if resp.Order.Total != 4000 {
		t.Errorf("order total = %d, want 4000", resp.Order.Total)
	}
	if len(resp.Order.Items) != 1 || resp.Order.Items[0].Quantity != 2 {
		t.Errorf("unexpected order items: %+v", resp.Order.Items)
	}
	if resp.Outcome != OutcomeMessageOnly {
		t.Errorf("outcome = %q, want message_only without a database", resp.Outcome)
	}
	if !regexp.MustCompile(`^[A-Z0-9]{6}$`).MatchString(resp.Order.ReadableID) {
		t.Errorf("readable id %q not 6 uppercase alphanumerics", resp.Order.ReadableID)
	}
	if !strings.Contains(resp.Message, "• Taza x2 ($4.000)") {
		t.Errorf("message missing item line:\n%s", resp.Message)
	}
	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/56932422471?text=") {
		t.Errorf("unexpected wa.me link: %s", resp.WhatsAppURL)
	}

	// cart cleared after checkout
	reqCart := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(string(body)))
	reqCart.Header.Set(cart.SessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, reqCart)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second checkout on emptied cart: status = %d", rec.Code)
	}
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	manager := cart.NewManager()
	ch := NewHandlers(manager, "+56932422471")
	carth := cart.NewHandlers(manager)

	router := httprouter.New()
	router.POST("/api/cart/items", carth.AddItem)
	router.POST("/api/checkout", ch.Submit)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
		strings.NewReader(`{"productId":"p1","name":"Taza","price":2000,"stock":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	session := rec.Header().Get(cart.SessionHeader)

	req = httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"name":"Juan"}`))
	req.Header.Set(cart.SessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fields") {
		t.Fatalf("expected field errors in body: %s", rec.Body.String())
	}
}
