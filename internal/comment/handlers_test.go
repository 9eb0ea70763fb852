package comment

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
	RegisterPostRoutes(app.Group("/posts"), svc, pass)
	RegisterRoutes(app.Group("/comments"), svc, pass)
	return app
}

func TestCommentHandlersCreateAndList(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`UPDATE posts SET comments_count`).
		WithArgs("post-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`FROM comments WHERE post_id`).
		WithArgs("post-1").
		WillReturnRows(commentRow("comment-1", []string{}, []Reply{}))

	app := newApp(NewService(mock))

	body, _ := json.Marshal(Comment{UserID: "user-1", UserName: "nick", Text: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/posts/post-1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/posts/post-1/comments", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
}

func TestCommentHandlersValidation(t *testing.T) {
	app := newApp(NewService(nil))

	req := httptest.NewRequest(http.MethodPost, "/posts/post-1/comments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty comment")
	}

	req = httptest.NewRequest(http.MethodPost, "/comments/comment-1/like", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for like without user")
	}
}

func TestCommentHandlersReplyLike(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	replies := []Reply{{ID: "reply-1", UserID: "user-2", Text: "agreed", Likes: []string{}, CreatedAt: now}}
	mock.ExpectQuery(`FROM comments WHERE id`).
		WithArgs("comment-1").
		WillReturnRows(commentRow("comment-1", []string{}, replies))
	mock.ExpectQuery(`UPDATE comments SET likes`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	app := newApp(NewService(mock))
	body, _ := json.Marshal(map[string]string{"user_id": "user-3"})
	req := httptest.NewRequest(http.MethodPost, "/comments/comment-1/replies/reply-1/like", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("reply like status: %v", err)
	}
}
