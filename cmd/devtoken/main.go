// Command devtoken mints a bearer token signed with JWT_SECRET for local use.
package main

import (
	"flag"
	"fmt"

	"github.com/Dias221467/SkillSharing_Backend/internal/config"
	jwtutil "github.com/Dias221467/SkillSharing_Backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	userID := flag.String("user", "", "user id to put in the token")
	email := flag.String("email", "", "optional email claim")
	role := flag.String("role", "user", "role claim")
	expiry := flag.Duration("expiry", cfg.TokenExpiry, "token lifetime")
	flag.Parse()

	if *userID == "" {
		logrus.Fatal("-user is required")
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	token, err := jwtutil.GenerateToken(*userID, *email, *role, cfg.JWTSecret, *expiry)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to sign token")
	}
	fmt.Println(token)
}
