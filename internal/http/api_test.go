package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"swiftkart/internal/cart"
	"swiftkart/internal/catalog"
	"swiftkart/internal/delivery"
	"swiftkart/internal/domain"
	"swiftkart/internal/http/handlers"
	"swiftkart/internal/kv"
)

// Minimal app setup mirroring the real route table.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	src := catalog.NewSource(
		[]domain.Product{
			{ID: "p-001", Name: "Wireless Earbuds", Price: 49.99},
			{ID: "p-002", Name: "Smart Watch", Price: 89},
		},
		[]domain.StockRecord{{ProductID: "p-001", Available: "TRUE"}},
	)
	pages := catalog.NewPaginator(src, 20)

	store, err := kv.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	cartStore := cart.NewStore(store, "")

	dcfg := &delivery.Config{
		PinRange:  delivery.PinRange{Min: 100000, Max: 999999},
		Providers: []delivery.Policy{{Name: "NationWide Logistics", Estimate: "2-5 business days"}},
		Directory: map[string][]string{"400015": {"NationWide Logistics"}},
	}
	ticker := delivery.NewTicker()
	resolver := delivery.NewResolver(dcfg, ticker)

	app := fiber.New()
	app.Use(requestid.New())
	deps := handlers.NewDeps(pages, cartStore, resolver, ticker)
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/remove", deps.CartHandler.Remove)
	api.Post("/delivery/check", deps.DeliveryHandler.Check)
	api.Get("/delivery/countdown", deps.DeliveryHandler.Countdown)
	return app
}

func form(body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestProductListAndDetail(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?loaded=0", nil))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Products []domain.Product `json:"products"`
		Loaded   int              `json:"loaded"`
	}
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("bad body %s: %v", b, err)
	}
	if len(out.Products) != 2 || out.Loaded != 2 {
		t.Fatalf("want full 2-product page, got %+v", out)
	}
	if !out.Products[0].InStock || out.Products[1].InStock {
		t.Fatalf("stock overlay wrong in page: %+v", out.Products)
	}

	// deep link to a product that cannot be resolved
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/ghost", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: want 404, got %d", resp.StatusCode)
	}
}

func TestCartAddViewRemoveFlow(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(form("productId=p-001"))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("add: want 204, got %d", resp.StatusCode)
		}
	}

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	var view struct {
		Items []domain.CartItem `json:"items"`
	}
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &view); err != nil {
		t.Fatalf("bad body %s: %v", b, err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("want p-001 x2, got %+v", view.Items)
	}

	// adding an unknown product is a 404, not a cart mutation
	resp, _ = app.Test(form("productId=ghost"))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product add: want 404, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("POST", "/api/v1/cart/remove", strings.NewReader("productId=p-001"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove: want 204, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	b, _ = io.ReadAll(resp.Body)
	view.Items = nil
	_ = json.Unmarshal(b, &view)
	if len(view.Items) != 0 {
		t.Fatalf("want empty cart, got %+v", view.Items)
	}
}

func TestDeliveryCheckValidation(t *testing.T) {
	app := newTestApp(t)

	post := func(body string) *http.Response {
		req := httptest.NewRequest("POST", "/api/v1/delivery/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("pincode=12345"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("5-digit pincode: want 400, got %d", resp.StatusCode)
	}

	resp := post("pincode=999999")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("undirected pincode: want 200, got %d", resp.StatusCode)
	}
	var res domain.DeliveryResult
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("bad body %s: %v", b, err)
	}
	if res.Available {
		t.Fatalf("999999 must report no delivery, got %+v", res)
	}

	resp = post("pincode=400015")
	b, _ = io.ReadAll(resp.Body)
	res = domain.DeliveryResult{}
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("bad body %s: %v", b, err)
	}
	if !res.Available || len(res.Options) != 1 || res.Options[0].Provider != "NationWide Logistics" {
		t.Fatalf("400015 must list its configured provider, got %+v", res)
	}
}

func TestCountdownEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/delivery/countdown", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("countdown: want 200, got %d", resp.StatusCode)
	}
	var out struct {
		Countdowns []domain.Countdown `json:"countdowns"`
	}
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("bad body %s: %v", b, err)
	}
	if len(out.Countdowns) != 0 {
		t.Fatalf("no cutoffs registered yet, got %+v", out.Countdowns)
	}
}
