package entity

import "time"

// Post is read from the feed tables; this service never writes posts.
type Post struct {
	ID        int64
	UserID    string
	MediaURL  string
	Caption   string
	CreatedAt time.Time
}
