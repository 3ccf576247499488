package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"rentfolio-backend/internal/config"
	"rentfolio-backend/internal/security"
)

// tokengen mints API tokens from the configured signing secret, for handing
// out to clients of a deployment that runs with auth enabled.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	userID := flag.Int("user-id", 1, "Subject user id embedded in the token")
	email := flag.String("email", "", "Subject email embedded in the token")
	roles := flag.String("roles", "", "Comma-separated roles claim (e.g. 'admin,landlord')")
	refresh := flag.Bool("refresh", false, "Also print a refresh token")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret is not configured; refusing to sign tokens")
	}

	var roleList []string
	if *roles != "" {
		roleList = strings.Split(*roles, ",")
	}

	tokens := security.NewTokenManager(cfg.Auth.Secret)
	access, err := tokens.GenerateAccessToken(int32(*userID), *email, roleList)
	if err != nil {
		log.Fatalf("Failed to generate access token: %v", err)
	}
	fmt.Printf("access_token: %s\n", access)

	if *refresh {
		refreshToken, err := tokens.GenerateRefreshToken(int32(*userID), *email)
		if err != nil {
			log.Fatalf("Failed to generate refresh token: %v", err)
		}
		fmt.Printf("refresh_token: %s\n", refreshToken)
	}
}
