// file: service/token_service.go

package service

import (
	"fmt"
	"go-task-api/config"
	"go-task-api/logger"
	"go-task-api/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ITokenService defines the contract for issuing and verifying tokens.
type ITokenService interface {
	CreateAccessToken(user *model.User) (string, error)
	CreateRefreshToken(user *model.User) (string, error)
	Decode(tokenString string) jwt.MapClaims
	ExtractUserID(tokenString string) (int, bool)
	ExtractEmail(tokenString string) (string, bool)
	ValidateCredentials(scheme, tokenString string) (string, error)
}

// TokenService signs and verifies JWTs with the signing contract it was
// constructed with. It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	cfg    config.JWTConfig
	method jwt.SigningMethod
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}
	return &TokenService{cfg: cfg, method: method}, nil
}

// CreateAccessToken issues a short-lived token carrying the user's id, email
// and name.
func (s *TokenService) CreateAccessToken(user *model.User) (string, error) {
	return s.sign(&model.AppClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.cfg.AccessTTLMinutes) * time.Minute)),
		},
	})
}

// CreateRefreshToken issues a longer-lived token with a reduced claim set
// (no name).
func (s *TokenService) CreateRefreshToken(user *model.User) (string, error) {
	return s.sign(&model.AppClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.cfg.RefreshTTLMinutes) * time.Minute)),
		},
	})
}

func (s *TokenService) sign(claims *model.AppClaims) (string, error) {
	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		logger.Log.WithError(err).WithField("subject", claims.Subject).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// Decode verifies the token's signature and expiry and returns its claims.
// Invalid signature, elapsed expiry and malformed payload all collapse to a
// nil result; callers cannot tell the reasons apart.
func (s *TokenService) Decode(tokenString string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{s.cfg.Algorithm}))
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// ExtractUserID decodes the token and parses its subject claim as an integer.
func (s *TokenService) ExtractUserID(tokenString string) (int, bool) {
	claims := s.Decode(tokenString)
	if claims == nil {
		return 0, false
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(subject)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ExtractEmail decodes the token and returns its email claim.
func (s *TokenService) ExtractEmail(tokenString string) (string, bool) {
	claims := s.Decode(tokenString)
	if claims == nil {
		return "", false
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", false
	}
	return email, true
}

// ValidateCredentials is the single choke point for inbound bearer
// credentials: the scheme must be exactly "Bearer" and the token must decode.
// It never resolves the identity against storage; that is the caller's job.
func (s *TokenService) ValidateCredentials(scheme, tokenString string) (string, error) {
	if scheme != "Bearer" {
		return "", ErrInvalidToken
	}
	if s.Decode(tokenString) == nil {
		return "", ErrInvalidToken
	}
	return tokenString, nil
}
