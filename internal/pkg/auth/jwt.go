package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed token.
const CookieName = "auth_token"

// DefaultTokenExpiration is how long a login stays valid.
const DefaultTokenExpiration = 24 * time.Hour

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and validates the auth cookie token.
type TokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, expiration time.Duration) *TokenService {
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}
	return &TokenService{secret: []byte(secret), expiration: expiration, now: time.Now}
}

func (s *TokenService) Expiration() time.Duration { return s.expiration }

// GenerateToken generates a new JWT token
func (s *TokenService) GenerateToken(userID, email string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user id")
	}

	return claims, nil
}
