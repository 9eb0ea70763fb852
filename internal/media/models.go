package media

import "time"

// Object is a stored reference to an uploaded asset. The bytes live on the
// CDN; we only keep the URL and enough metadata to audit uploads.
type Object struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadRequest struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}
