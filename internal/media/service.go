package media

import (
	"context"
	"errors"

	"backend-broadcast/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("media object not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Save records an uploaded asset for a user. Kind defaults to "image"
// when the client omits it.
func (s *Service) Save(ctx context.Context, userID, url, kind string) (Object, error) {
	if kind == "" {
		kind = "image"
	}
	obj := Object{
		ID:     uuid.NewString(),
		UserID: userID,
		URL:    url,
		Kind:   kind,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO media_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err := row.Scan(&obj.CreatedAt); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) Get(ctx context.Context, id string) (Object, error) {
	var obj Object
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM media_objects WHERE id = $1
	`, id)
	err := row.Scan(&obj.ID, &obj.UserID, &obj.URL, &obj.Kind, &obj.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Object{}, ErrNotFound
	}
	if err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM media_objects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objects := []Object{}
	for rows.Next() {
		var obj Object
		if err := rows.Scan(&obj.ID, &obj.UserID, &obj.URL, &obj.Kind, &obj.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}
