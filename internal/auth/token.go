package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saulo-duarte/testsafe/internal/config"
)

var jwtSecret []byte

type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Init loads the cookie signing secret from SESSION_SECRET. Without it
// a random ephemeral secret is generated, which means every running
// session dies with the process.
func Init() {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		jwtSecret = []byte(secret)
		return
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("auth: cannot generate session secret: " + err.Error())
	}
	jwtSecret = buf
	config.Logger().Warn("SESSION_SECRET não definido, usando segredo efêmero; as sessões não sobrevivem a um restart")
}

func GenerateSessionToken(sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateSessionToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token is invalid: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.SessionID == "" {
		return nil, errors.New("token is invalid: no session id")
	}
	return claims, nil
}
