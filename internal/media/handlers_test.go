package media

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
	fakeAuth := func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	}
	RegisterRoutes(app.Group("/media"), svc, fakeAuth)
	return app
}

func TestMediaUpload(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "https://cdn/pic.jpg", "image").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	app := newApp(NewService(mock))
	body, _ := json.Marshal(UploadRequest{URL: "https://cdn/pic.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/media/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status: %v", err)
	}

	var obj Object
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if obj.URL != "https://cdn/pic.jpg" || obj.UserID != "user-1" || obj.ID == "" {
		t.Fatalf("unexpected object: %+v", obj)
	}
}

func TestMediaUploadRequiresURL(t *testing.T) {
	app := newApp(NewService(nil))
	req := httptest.NewRequest(http.MethodPost, "/media/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestMediaGetNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM media_objects WHERE id`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "url", "kind", "created_at"}))

	app := newApp(NewService(mock))
	req := httptest.NewRequest(http.MethodGet, "/media/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}
