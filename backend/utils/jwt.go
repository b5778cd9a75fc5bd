package utils

import (
	"time"

	"evolv/backend/config"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken mints the session token returned on login. Routes are not
// gated on it; the front end sends it back for future use.
func GenerateToken(username string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
