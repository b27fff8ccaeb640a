package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tutorlane/assess-backend/internal/config"
)

// ErrTokenInvalid indicates a token that failed signature or claim checks.
var ErrTokenInvalid = errors.New("invalid token")

// TokenRole distinguishes author (teacher) from respondent (student) tokens.
type TokenRole string

const (
	RoleAuthor     TokenRole = "author"
	RoleRespondent TokenRole = "respondent"
)

// Claims extends JWT standard claims with app-specific fields. Identity
// issuance lives outside this service: tokens are minted by the surrounding
// platform (or the dev tool) and only validated here.
type Claims struct {
	jwt.RegisteredClaims
	Role        TokenRole `json:"role"`
	UserID      string    `json:"user_id"`
	OwnerID     string    `json:"owner_id,omitempty"` // Respondent only: their author's ID
	DisplayName string    `json:"display_name,omitempty"`
}

// AuthService validates and (for tooling) signs HS256 JWTs.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// GenerateToken signs a token for the given identity. Respondent tokens must
// carry the owning author's ID so exam lookups resolve without ambient state.
func (s *AuthService) GenerateToken(role TokenRole, userID, ownerID, displayName string) (string, error) {
	if role == RoleRespondent && ownerID == "" {
		return "", errors.New("respondent tokens require an owner id")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:        role,
		UserID:      userID,
		OwnerID:     ownerID,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
