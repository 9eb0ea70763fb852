package post

import (
	"context"
	"errors"
	"time"

	"backend-broadcast/internal/db"
	"backend-broadcast/internal/geo"
	"backend-broadcast/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("post not found")
	ErrNotOwner = errors.New("not the post owner")
)

type Service struct {
	db   db.Querier
	tree *geo.Tree
	hub  *stream.Hub

	// unrestrictedHome preserves the historical behavior where the home
	// feed returns every post regardless of level.
	unrestrictedHome bool
}

func NewService(db db.Querier, tree *geo.Tree, hub *stream.Hub, unrestrictedHome bool) *Service {
	return &Service{db: db, tree: tree, hub: hub, unrestrictedHome: unrestrictedHome}
}

const postColumns = `id, user_id, caption, media, level_type, level_value, link_preview,
	       likes, recasts, views, comments_count, author, is_deleted, created_at, updated_at`

// List returns the non-deleted posts visible at the given scope, newest
// first. Scoped queries exclude home-tagged posts; an unknown location
// resolves to an empty feed rather than an error.
func (s *Service) List(ctx context.Context, sel geo.Selector) ([]Post, error) {
	names, unrestricted := s.tree.Resolve(sel)

	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case unrestricted && s.unrestrictedHome:
		rows, err = s.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE NOT is_deleted
		ORDER BY created_at DESC
	`)
	case unrestricted:
		rows, err = s.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE NOT is_deleted AND level_type = 'home'
		ORDER BY created_at DESC
	`)
	default:
		rows, err = s.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE NOT is_deleted AND level_value = ANY($1) AND level_type <> 'home'
		ORDER BY created_at DESC
	`, names)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) Create(ctx context.Context, input Post) (Post, error) {
	author, err := s.lookupAuthor(ctx, input.UserID)
	if err != nil {
		return Post{}, err
	}

	input.ID = uuid.NewString()
	input.Author = author
	if input.LevelType == "" {
		input.LevelType = string(geo.LevelHome)
	}
	if input.Media == nil {
		input.Media = []string{}
	}
	input.Likes = []string{}
	input.Recasts = []Recast{}

	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, caption, media, level_type, level_value, link_preview, likes, recasts, author)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`, input.ID, input.UserID, input.Caption, input.Media, input.LevelType, input.LevelValue,
		input.LinkPreview, input.Likes, input.Recasts, input.Author)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Post{}, err
	}

	s.publish(input.LevelType, input.LevelValue, stream.EventNewPost, input)
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts WHERE id=$1
	`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

// ToggleLike adds the user to the post's likes, or removes them when
// already present.
func (s *Service) ToggleLike(ctx context.Context, id, userID string) (Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Post{}, err
	}

	liked := false
	for i, likerID := range p.Likes {
		if likerID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			liked = true
			break
		}
	}
	if !liked {
		p.Likes = append(p.Likes, userID)
	}

	if err := s.saveEngagement(ctx, &p); err != nil {
		return Post{}, err
	}
	s.publish(p.LevelType, p.LevelValue, stream.EventUpdatePost, p)
	return p, nil
}

// ToggleRecast removes the user's plain recast when one exists and no quote
// is supplied; otherwise it appends a new recast entry.
func (s *Service) ToggleRecast(ctx context.Context, id, userID, nickname, quote string) (Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Post{}, err
	}

	removed := false
	if quote == "" {
		for i, r := range p.Recasts {
			if r.UserID == userID && r.Quote == "" {
				p.Recasts = append(p.Recasts[:i], p.Recasts[i+1:]...)
				removed = true
				break
			}
		}
	}
	if !removed {
		if nickname == "" {
			nickname = "Anonymous"
		}
		p.Recasts = append(p.Recasts, Recast{
			UserID:     userID,
			Nickname:   nickname,
			Quote:      quote,
			RecastedAt: time.Now(),
		})
	}

	if err := s.saveEngagement(ctx, &p); err != nil {
		return Post{}, err
	}
	s.publish(p.LevelType, p.LevelValue, stream.EventUpdatePost, p)
	return p, nil
}

// IncrementViews bumps the view counter. No event is published; view counts
// only need to be fresh on the next fetch.
func (s *Service) IncrementViews(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE posts SET views = views + 1, updated_at = now()
		WHERE id=$1
		RETURNING `+postColumns+`
	`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

// SoftDelete hides a post. Only the author may delete; nothing is published
// when the caller is not the owner.
func (s *Service) SoftDelete(ctx context.Context, id, userID string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotOwner
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE posts SET is_deleted = true, updated_at = now() WHERE id=$1
	`, id); err != nil {
		return err
	}

	s.publish(p.LevelType, p.LevelValue, stream.EventDeletePost, p.ID)
	return nil
}

func (s *Service) Restore(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE posts SET is_deleted = false, updated_at = now()
		WHERE id=$1
		RETURNING `+postColumns+`
	`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (s *Service) saveEngagement(ctx context.Context, p *Post) error {
	row := s.db.QueryRow(ctx, `
		UPDATE posts SET likes=$2, recasts=$3, updated_at = now()
		WHERE id=$1
		RETURNING updated_at
	`, p.ID, p.Likes, p.Recasts)
	return row.Scan(&p.UpdatedAt)
}

func (s *Service) lookupAuthor(ctx context.Context, userID string) (Author, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, nickname, full_name, avatar_url FROM users WHERE id=$1
	`, userID)
	var a Author
	if err := row.Scan(&a.UserID, &a.Nickname, &a.FullName, &a.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}
	return a, nil
}

func (s *Service) publish(levelType, levelValue, event string, data any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(stream.RoomKey(levelType, levelValue), event, data)
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.Caption, &p.Media, &p.LevelType, &p.LevelValue,
		&p.LinkPreview, &p.Likes, &p.Recasts, &p.Views, &p.CommentsCount, &p.Author,
		&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
