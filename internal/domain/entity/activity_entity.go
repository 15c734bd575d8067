package entity

import "time"

type ActivityType string

const ActivityFollow ActivityType = "follow"

// Activity is a notification shown to UserID about something ActorID did.
type Activity struct {
	ID        int64
	UserID    string
	ActorID   string
	ActorName string
	Type      ActivityType
	CreatedAt time.Time
}
