package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

const sessionIssuer = "learnhub"

// SessionClaims is the payload of the session cookie.
// AuthHash binds the session to the password hash it was issued against.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	AuthHash string `json:"auth_hash"`
	jwt.RegisteredClaims
}

// SessionAuthHash fingerprints a password hash so it can be embedded in a token
// without exposing the hash itself.
func SessionAuthHash(passwordHash, secret string) string {
	mac := hmac.New(sha256.New, []byte("learnhub.session.auth-hash:"+secret))
	mac.Write([]byte(passwordHash))
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionAuthHashMatches compares fingerprints in constant time.
func SessionAuthHashMatches(expected, actual string) bool {
	return hmac.Equal([]byte(expected), []byte(actual))
}

// GenerateSessionToken signs a new session for the user.
func GenerateSessionToken(userID uint, username, authHash, secret string, expiry time.Duration) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		AuthHash: authHash,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateSessionToken parses and verifies a session token.
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
