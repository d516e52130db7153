// Command devtoken mints an access token signed with JWT_SECRET for local testing.
// Production tokens are issued by the identity provider.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/inkhouse/tattoo-booking-backend/internal/auth"
	"github.com/inkhouse/tattoo-booking-backend/internal/config"
)

func main() {
	subject := flag.String("sub", "", "subject (client id); a random UUID when empty")
	email := flag.String("email", "dev@example.com", "email claim")
	admin := flag.Bool("admin", false, "issue an admin token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *subject == "" {
		*subject = uuid.NewString()
	}
	role := auth.RoleClient
	if *admin {
		role = auth.RoleAdmin
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL).GenerateAccessToken(*subject, *email, role)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
