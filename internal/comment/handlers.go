package comment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterPostRoutes mounts the post-scoped comment endpoints on the
// /posts group.
func RegisterPostRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id/comments", func(c *fiber.Ctx) error {
		comments, err := svc.ListForPost(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(comments)
	})

	r.Post("/:id/comments", authMiddleware, func(c *fiber.Ctx) error {
		var req Comment
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" || req.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id and text required")
		}
		req.PostID = c.Params("id")
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		updated, err := svc.ToggleLike(c.Context(), c.Params("id"), body.UserID)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(updated)
	})

	r.Post("/:id/replies", authMiddleware, func(c *fiber.Ctx) error {
		var req Reply
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" || req.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id and text required")
		}
		updated, err := svc.AddReply(c.Context(), c.Params("id"), req)
		if err != nil {
			return serviceError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(updated)
	})

	r.Post("/:id/replies/:replyID/like", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		updated, err := svc.ToggleReplyLike(c.Context(), c.Params("id"), c.Params("replyID"), body.UserID)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(updated)
	})
}

func serviceError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "comment not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
