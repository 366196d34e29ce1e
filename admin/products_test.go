package admin

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestProductForm(t *testing.T) {
	values := url.Values{
		"name":        {"  Taza gato  "},
		"category":    {"Tazas"},
		"detail":      {"Cerámica 350ml"},
		"code":        {"TZ-01"},
		"price":       {"4990"},
		"stock":       {"12"},
		"is_featured": {"true"},
		"is_offer":    {"0"},
	}
	req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := productForm(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Taza gato" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if p.Price != 4990 || p.Stock != 12 {
		t.Errorf("unexpected price/stock: %d/%d", p.Price, p.Stock)
	}
	if !p.IsFeatured || p.IsOffer {
		t.Errorf("unexpected flags: featured=%v offer=%v", p.IsFeatured, p.IsOffer)
	}
}

func TestProductFormRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{"category": {"Tazas"}, "price": {"1000"}, "stock": {"1"}}},
		{"missing category", url.Values{"name": {"Taza"}, "price": {"1000"}, "stock": {"1"}}},
		{"negative price", url.Values{"name": {"Taza"}, "category": {"Tazas"}, "price": {"-5"}, "stock": {"1"}}},
		{"non-numeric stock", url.Values{"name": {"Taza"}, "category": {"Tazas"}, "price": {"1000"}, "stock": {"dos"}}},
		{"long name", url.Values{"name": {strings.Repeat("x", 101)}, "category": {"Tazas"}, "price": {"1000"}, "stock": {"1"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(tc.values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if _, err := productForm(req); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "on", "yes", "TRUE"} {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) = false", v)
		}
	}
	for _, v := range []string{"", "false", "0", "off", "no"} {
		if parseBool(v) {
			t.Errorf("parseBool(%q) = true", v)
		}
	}
}
