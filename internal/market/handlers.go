package market

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(products, categories fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	products.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.Products(c.Context(), c.Query("category"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(list)
	})

	products.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Product
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.Price <= 0 || req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title, price and user_id required")
		}
		created, err := svc.CreateProduct(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	products.Get("/:id", func(c *fiber.Ctx) error {
		p, err := svc.GetProduct(c.Context(), c.Params("id"))
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(p)
	})

	products.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Product
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		updated, err := svc.UpdateProduct(c.Context(), c.Params("id"), req.UserID, req)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(updated)
	})

	products.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.DeleteProduct(c.Context(), c.Params("id"), body.UserID); err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{"message": "product removed"})
	})

	categories.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.Categories(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(list)
	})

	categories.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Category
		if err := c.BodyParser(&req); err != nil || req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		created, err := svc.CreateCategory(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(fiber.StatusForbidden, "not allowed to modify this product")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
