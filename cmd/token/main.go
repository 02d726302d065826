// Command token signs a bearer token for local development against the journal API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/tradejournal-backend/internal/auth"
	"github.com/simaogato/tradejournal-backend/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("TJ_CONFIG"), "optional YAML config file")
	user := flag.String("user", "", "user UUID (random when empty)")
	email := flag.String("email", "", "email claim")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *user != "" {
		userID, err = uuid.Parse(*user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
			os.Exit(1)
		}
	}

	token, expiresAt, err := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer).IssueForUser(userID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "user %s, expires %s\n", userID, expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}
