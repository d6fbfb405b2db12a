package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserClaimsKey is the fiber Locals key holding the caller's *UserClaims.
const UserClaimsKey = "user_claims"

const tokenIssuer = "vfx-dashboard"

var (
	jwtSecret   = []byte("secret")
	tokenExpiry = 24 * time.Hour
)

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// SetExpiry sets the lifetime of newly issued tokens.
func SetExpiry(d time.Duration) {
	if d > 0 {
		tokenExpiry = d
	}
}

type UserClaims struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	IsAdmin      bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// ObjectID returns the caller's user id as an ObjectID.
func (c *UserClaims) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.UserID)
}

func GenerateToken(userID primitive.ObjectID, email, organization string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:       userID.Hex(),
		Email:        email,
		Organization: organization,
		IsAdmin:      isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.UserID == "" || claims.Organization == "" {
		return nil, errors.New("token is missing user or organization")
	}
	return claims, nil
}
