package comment

import (
	"context"
	"errors"
	"time"

	"backend-broadcast/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("comment not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const commentColumns = `id, post_id, user_id, user_name, text, likes, replies, created_at, updated_at`

func (s *Service) ListForPost(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments WHERE post_id=$1
		ORDER BY created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Service) Create(ctx context.Context, input Comment) (Comment, error) {
	input.ID = uuid.NewString()
	input.Likes = []string{}
	input.Replies = []Reply{}

	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, user_id, user_name, text, likes, replies)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.PostID, input.UserID, input.UserName, input.Text, input.Likes, input.Replies)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Comment{}, err
	}

	// Denormalized counter read by feed clients.
	if _, err := s.db.Exec(ctx, `
		UPDATE posts SET comments_count = comments_count + 1 WHERE id=$1
	`, input.PostID); err != nil {
		return Comment{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Comment, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM comments WHERE id=$1
	`, id)
	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func (s *Service) ToggleLike(ctx context.Context, id, userID string) (Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	c.Likes = toggle(c.Likes, userID)
	if err := s.save(ctx, &c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) AddReply(ctx context.Context, id string, reply Reply) (Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Comment{}, err
	}

	reply.ID = uuid.NewString()
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	if reply.Likes == nil {
		reply.Likes = []string{}
	}
	c.Replies = append(c.Replies, reply)
	if err := s.save(ctx, &c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) ToggleReplyLike(ctx context.Context, id, replyID, userID string) (Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Comment{}, err
	}

	found := false
	for i := range c.Replies {
		if c.Replies[i].ID == replyID {
			c.Replies[i].Likes = toggle(c.Replies[i].Likes, userID)
			found = true
			break
		}
	}
	if !found {
		return Comment{}, ErrNotFound
	}

	if err := s.save(ctx, &c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c *Comment) error {
	row := s.db.QueryRow(ctx, `
		UPDATE comments SET likes=$2, replies=$3, updated_at = now()
		WHERE id=$1
		RETURNING updated_at
	`, c.ID, c.Likes, c.Replies)
	return row.Scan(&c.UpdatedAt)
}

func toggle(ids []string, userID string) []string {
	for i, id := range ids {
		if id == userID {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, userID)
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.Text, &c.Likes,
		&c.Replies, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
