package news

import (
	"context"

	"backend-broadcast/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Article) (Article, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO news (id, title, content, image)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Title, input.Content, input.Image)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Article{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context) ([]Article, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, content, image, created_at
		FROM news
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []Article{}
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Image, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
