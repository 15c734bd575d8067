package entity

// ProfileStats is recomputed on every read and never stored.
type ProfileStats struct {
	Posts     int64
	Followers int64
	Following int64
	Likes     int64
}

// ProfileView is the aggregated, read-only projection of a user's profile
// relative to an optional viewer.
type ProfileView struct {
	User        User
	IsFollowing bool
	Stats       ProfileStats
	Posts       []Post
}
