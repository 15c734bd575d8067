package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/nexstu/socialgraph/config"
	pginfra "github.com/nexstu/socialgraph/internal/infrastructure/postgres"
	"github.com/nexstu/socialgraph/internal/infrastructure/search"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

type demoUser struct {
	email string
	name  string
	bio   string
	posts []string
}

var demoUsers = []demoUser{
	{email: "amara.okeke@unn.edu.ng", name: "Amara Okeke", bio: "Computer Science, 300L", posts: []string{"First day back on campus", "Library grind"}},
	{email: "bola.adeyemi@unn.edu.ng", name: "Bola Adeyemi", bio: "Microbiology", posts: []string{"Lab coat season"}},
	{email: "chidi.eze@unn.edu.ng", name: "", bio: "Mech Eng", posts: []string{"Workshop day", "Final year project sketch", "Match day at the stadium"}},
	{email: "dami.ola@unn.edu.ng", name: "Dami Ola", bio: "", posts: nil},
}

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.SettingsFromConfig(cfg))
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(demoPassword, helpers.DemoPasswordCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ids := make([]string, 0, len(demoUsers))
	postIDs := make([]int64, 0)
	for _, u := range demoUsers {
		id, err := upsertUser(ctx, pool, u, hash)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		ids = append(ids, id)

		created, err := seedPosts(ctx, pool, id, u.posts)
		if err != nil {
			log.Fatalf("failed to seed posts for %s: %v", u.email, err)
		}
		postIDs = append(postIDs, created...)
	}

	// everyone likes every post that is not their own
	if _, err := pool.Exec(ctx, `
		INSERT INTO likes (user_id, post_id)
		SELECT u.id, p.id FROM users u CROSS JOIN posts p
		WHERE p.id = ANY($1) AND p.user_id <> u.id AND u.id = ANY($2::uuid[])
		ON CONFLICT DO NOTHING
	`, postIDs, ids); err != nil {
		log.Fatalf("failed to seed likes: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addresses:  addrs,
			Username:   cfg.ElasticsearchUser,
			Password:   cfg.ElasticsearchPass,
			MaxRetries: cfg.ESMaxRetries,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		if err := helpers.PingES(ctx, es); err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index := search.NewUserIndex(es, cfg.ESUsersIndex)
		if err := index.EnsureIndex(ctx); err != nil {
			log.Fatalf("ensure index: %v", err)
		}
		for _, id := range ids {
			u, err := users.GetByID(ctx, id)
			if err != nil {
				log.Fatalf("reload user %s: %v", id, err)
			}
			if err := index.IndexUser(ctx, u); err != nil {
				logger.WithError(err).WithField("user_id", id).Warn("index user failed")
			}
		}
		fmt.Printf("indexed %d users into %s\n", len(ids), cfg.ESUsersIndex)
	}

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.JWTIssuer)
	for i, id := range ids {
		tok, exp, err := jwt.GenerateAccessToken(id)
		if err != nil {
			log.Fatalf("sign token: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n  token (expires %s): %s\n",
			id, demoUsers[i].email, demoPassword, exp.Format("2006-01-02 15:04"), tok)
	}
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u demoUser, hash string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, bio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, bio = EXCLUDED.bio
		RETURNING id::text
	`, u.email, hash, u.name, u.bio).Scan(&id)
	return id, err
}

// seedPosts only writes posts for users that have none yet.
func seedPosts(ctx context.Context, pool *pgxpool.Pool, userID string, captions []string) ([]int64, error) {
	var existing int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return nil, err
	}
	if existing > 0 {
		rows, err := pool.Query(ctx, `SELECT id FROM posts WHERE user_id = $1`, userID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var out []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		return out, rows.Err()
	}

	out := make([]int64, 0, len(captions))
	for i, caption := range captions {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO posts (user_id, media_url, caption, created_at)
			VALUES ($1, $2, $3, now() - make_interval(hours => $4::int))
			RETURNING id
		`, userID, fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", userID[:8], i), caption, len(captions)-i).Scan(&id)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
