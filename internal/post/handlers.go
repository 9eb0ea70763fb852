package post

import (
	"errors"

	"backend-broadcast/internal/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		sel, err := geo.ParseSelector(c.Query("levelType"), c.Query("levelValue"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		posts, err := svc.List(c.Context(), sel)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if req.LevelType != "" && !geo.ValidLevel(req.LevelType) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown level type")
		}
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return serviceError(err, "user not found")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		updated, err := svc.ToggleLike(c.Context(), c.Params("id"), body.UserID)
		if err != nil {
			return serviceError(err, "post not found")
		}
		return c.JSON(updated)
	})

	r.Post("/:id/recast", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID    string `json:"user_id"`
			Nickname  string `json:"nickname"`
			QuoteText string `json:"quote_text"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		updated, err := svc.ToggleRecast(c.Context(), c.Params("id"), body.UserID, body.Nickname, body.QuoteText)
		if err != nil {
			return serviceError(err, "post not found")
		}
		return c.JSON(updated)
	})

	r.Post("/:id/view", func(c *fiber.Ctx) error {
		updated, err := svc.IncrementViews(c.Context(), c.Params("id"))
		if err != nil {
			return serviceError(err, "post not found")
		}
		return c.JSON(updated)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.SoftDelete(c.Context(), c.Params("id"), body.UserID); err != nil {
			return serviceError(err, "post not found")
		}
		return c.JSON(fiber.Map{"message": "post hidden", "post_id": c.Params("id")})
	})

	r.Put("/restore/:id", authMiddleware, func(c *fiber.Ctx) error {
		restored, err := svc.Restore(c.Context(), c.Params("id"))
		if err != nil {
			return serviceError(err, "post not found")
		}
		return c.JSON(restored)
	})
}

func serviceError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(fiber.StatusForbidden, "not allowed to delete this post")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
