package market

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newApp(svc *Service) *fiber.App {
	app := fiber.New()
	pass := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app.Group("/products"), app.Group("/categories"), svc, pass)
	return app
}

func TestMarketHandlers(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`FROM products\s+ORDER BY`).
		WillReturnRows(productRow("product-1", "user-1"))
	mock.ExpectQuery(`FROM products WHERE id`).
		WithArgs("product-1").
		WillReturnRows(productRow("product-1", "user-1"))

	app := newApp(NewService(mock))

	body, _ := json.Marshal(Product{Title: "Bike", Price: 150, Description: "d", Category: "vehicles", UserID: "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/products/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/products/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/products/product-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}
}

func TestMarketHandlersValidation(t *testing.T) {
	app := newApp(NewService(nil))

	req := httptest.NewRequest(http.MethodPost, "/products/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty product")
	}

	req = httptest.NewRequest(http.MethodPost, "/categories/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty category")
	}
}

func TestMarketHandlersDeleteForbidden(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM products WHERE id`).
		WithArgs("product-1").
		WillReturnRows(productRow("product-1", "owner"))

	app := newApp(NewService(mock))
	body, _ := json.Marshal(map[string]string{"user_id": "intruder"})
	req := httptest.NewRequest(http.MethodDelete, "/products/product-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %d", resp.StatusCode)
	}
}
