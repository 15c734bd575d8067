package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nexstu/socialgraph/config"
	"github.com/nexstu/socialgraph/pkg/graphclient"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

var (
	apiURL  string
	token   string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "graphctl",
	Short:         "Developer CLI for the social graph API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Sign a dev access token with JWT_ACCESS_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.AccessTTL
		}
		tok, exp, err := helpers.NewJWTManager(cfg.JWTAccessSecret, ttl, cfg.JWTIssuer).GenerateAccessToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Toggle following a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTo(cmd)(client().Follow(args[0]))
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [user-id]",
	Short: "Show a profile (your own when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return printTo(cmd)(client().Profile(id))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by email substring or exact id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTo(cmd)(client().Search(args[0]))
	},
}

var connectionsCmd = &cobra.Command{
	Use:   "connections <user-id>",
	Short: "List a user's followers or following",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		return printTo(cmd)(client().Connections(args[0], kind, limit, offset))
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show your recent follow activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTo(cmd)(client().Activity())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("GRAPH_API_URL", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GRAPH_TOKEN"), "bearer token")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to JWT_ACCESS_TTL)")
	connectionsCmd.Flags().StringP("type", "t", "followers", "followers or following")
	connectionsCmd.Flags().IntP("limit", "l", 0, "page size")
	connectionsCmd.Flags().IntP("offset", "o", 0, "page offset")

	rootCmd.AddCommand(tokenCmd, followCmd, profileCmd, searchCmd, connectionsCmd, activityCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func client() *graphclient.Client {
	return graphclient.New(apiURL, token, timeout)
}

// printTo pretty-prints the data of a successful envelope.
func printTo(cmd *cobra.Command) func(*graphclient.Envelope, error) error {
	return func(env *graphclient.Envelope, err error) error {
		return printEnvelope(cmd, env, err)
	}
}

func printEnvelope(cmd *cobra.Command, env *graphclient.Envelope, err error) error {
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, env.Data, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.String())
	if len(env.Meta) > 0 && string(env.Meta) != "null" {
		fmt.Fprintf(cmd.ErrOrStderr(), "meta: %s\n", env.Meta)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
