package market

import (
	"context"
	"errors"

	"backend-broadcast/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrNotOwner = errors.New("not the product owner")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateProduct(ctx context.Context, input Product) (Product, error) {
	input.ID = uuid.NewString()
	if input.Images == nil {
		input.Images = []string{}
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO products (id, title, price, description, images, category, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.Title, input.Price, input.Description, input.Images, input.Category, input.UserID)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Product{}, err
	}
	return input, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, price, description, images, category, user_id, created_at, updated_at
		FROM products WHERE id=$1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.Images, &p.Category,
		&p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// Products lists the marketplace, optionally filtered to one category.
func (s *Service) Products(ctx context.Context, category string) ([]Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = s.db.Query(ctx, `
		SELECT id, title, price, description, images, category, user_id, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`)
	} else {
		rows, err = s.db.Query(ctx, `
		SELECT id, title, price, description, images, category, user_id, created_at, updated_at
		FROM products WHERE category=$1
		ORDER BY created_at DESC
	`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.Images, &p.Category,
			&p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Service) UpdateProduct(ctx context.Context, id, userID string, patch Product) (Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if p.UserID != userID {
		return Product{}, ErrNotOwner
	}

	if patch.Title != "" {
		p.Title = patch.Title
	}
	if patch.Price != 0 {
		p.Price = patch.Price
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	if patch.Category != "" {
		p.Category = patch.Category
	}

	_, err = s.db.Exec(ctx, `
		UPDATE products
		SET title=$2, price=$3, description=$4, images=$5, category=$6, updated_at = now()
		WHERE id=$1
	`, p.ID, p.Title, p.Price, p.Description, p.Images, p.Category)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id, userID string) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotOwner
	}
	_, err = s.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func (s *Service) CreateCategory(ctx context.Context, input Category) (Category, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1,$2,$3)
		ON CONFLICT (name) DO UPDATE SET description=EXCLUDED.description
		RETURNING id, created_at
	`, input.ID, input.Name, input.Description)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Category{}, err
	}
	return input, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
