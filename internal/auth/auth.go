// Package auth issues and verifies the HS256 tokens carried in the "token"
// cookie. Tokens hold the user id and role; everything else about the user
// lives in Postgres.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID string
	Role   string
}

// JWT wraps a signing secret for issuing/verifying tokens.
type JWT struct{ secret []byte }

func New(secret string) *JWT { return &JWT{secret: []byte(secret)} }

// Sign creates a token for the identity with the given TTL.
func (j *JWT) Sign(userID, role string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(j.secret)
}

// Verify checks a token and returns the identity claims.
func (j *JWT) Verify(tok string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	uid, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if uid == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: uid, Role: role}, nil
}
