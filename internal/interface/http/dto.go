package handlers

import (
	"time"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

type userSummaryDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type profileUserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type statsDTO struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Likes     int64 `json:"likes"`
}

type postDTO struct {
	ID        int64     `json:"id"`
	MediaURL  string    `json:"media_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type profileDTO struct {
	User        profileUserDTO `json:"user"`
	IsFollowing bool           `json:"is_following"`
	Stats       statsDTO       `json:"stats"`
	Posts       []postDTO      `json:"posts"`
}

type activityDTO struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toSummaries(in []entity.UserSummary) []userSummaryDTO {
	out := make([]userSummaryDTO, 0, len(in))
	for _, u := range in {
		out = append(out, userSummaryDTO{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			CreatedAt: u.CreatedAt,
		})
	}
	return out
}

func toProfile(v *entity.ProfileView) profileDTO {
	posts := make([]postDTO, 0, len(v.Posts))
	for _, p := range v.Posts {
		posts = append(posts, postDTO{ID: p.ID, MediaURL: p.MediaURL, Caption: p.Caption, CreatedAt: p.CreatedAt})
	}
	return profileDTO{
		User: profileUserDTO{
			ID:        v.User.ID,
			Email:     v.User.Email,
			Name:      v.User.DisplayName(),
			Bio:       v.User.Bio,
			AvatarURL: v.User.AvatarURL,
			CreatedAt: v.User.CreatedAt,
		},
		IsFollowing: v.IsFollowing,
		Stats: statsDTO{
			Posts:     v.Stats.Posts,
			Followers: v.Stats.Followers,
			Following: v.Stats.Following,
			Likes:     v.Stats.Likes,
		},
		Posts: posts,
	}
}

func toActivities(in []entity.Activity) []activityDTO {
	out := make([]activityDTO, 0, len(in))
	for _, a := range in {
		out = append(out, activityDTO{
			ID:        a.ID,
			Type:      string(a.Type),
			ActorID:   a.ActorID,
			ActorName: a.ActorName,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}
