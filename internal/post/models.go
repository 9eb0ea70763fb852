package post

import "time"

type Post struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Caption       string         `json:"caption"`
	Media         []string       `json:"media"`
	LevelType     string         `json:"level_type"`
	LevelValue    string         `json:"level_value"`
	LinkPreview   map[string]any `json:"link_preview,omitempty"`
	Likes         []string       `json:"likes"`
	Recasts       []Recast       `json:"recasts"`
	Views         int            `json:"views"`
	CommentsCount int            `json:"comments_count"`
	Author        Author         `json:"author"`
	IsDeleted     bool           `json:"is_deleted"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Recast is a reshare of a post, optionally carrying a quote.
type Recast struct {
	UserID     string    `json:"user_id"`
	Nickname   string    `json:"nickname"`
	Quote      string    `json:"quote"`
	RecastedAt time.Time `json:"recasted_at"`
}

// Author is the profile snapshot denormalized onto a post at creation time.
type Author struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	FullName string `json:"full_name"`
	Image    string `json:"image"`
}
