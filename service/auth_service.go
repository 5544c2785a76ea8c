package service

import (
	"database/sql"
	"errors"
	"go-task-api/logger"
	"go-task-api/model"
	"go-task-api/repository"

	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the access/refresh pair returned by every session flow.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

// CheckPasswordHash reports whether the password matches the digest. A
// malformed digest verifies as false, it never fails loudly.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IAuthService defines the contract for the session flows.
type IAuthService interface {
	Register(req model.RegisterRequest) (*TokenPair, error)
	Login(req model.LoginRequest) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
	Revoke(tokenString string) error
}

// AuthService orchestrates registration, login, refresh and revoke over the
// user store and the token service.
type AuthService struct {
	users  repository.IUserRepository
	tokens ITokenService
}

func NewAuthService(users repository.IUserRepository, tokens ITokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// issueTokens creates a fresh access/refresh pair and persists the refresh
// token into the user's slot, invalidating whatever was stored before.
func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}
	return &TokenPair{Token: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a new user and opens a session for it.
func (s *AuthService) Register(req model.RegisterRequest) (*TokenPair, error) {
	exists, err := s.users.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return s.issueTokens(user)
}

// Login verifies the credentials and opens a new session. An unknown email
// and a wrong password yield the same error so callers cannot probe for
// registered addresses.
func (s *AuthService) Login(req model.LoginRequest) (*TokenPair, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidLogin
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return s.issueTokens(user)
}

// Refresh exchanges a refresh token for a new pair. The presented token must
// decode, its subject must resolve, and it must equal the stored slot value,
// so a token superseded by rotation or cleared by revoke is rejected even if
// it has not expired yet.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, ok := s.tokens.ExtractUserID(refreshToken)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(user)
}

// Revoke clears the refresh token slot of the identity named by the access
// token, ending the session. Access tokens already issued stay valid until
// their own expiry.
func (s *AuthService) Revoke(tokenString string) error {
	userID, ok := s.tokens.ExtractUserID(tokenString)
	if !ok {
		return ErrInvalidToken
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	logger.Log.WithField("user_id", user.ID).Info("User session revoked")
	return s.users.SetRefreshToken(user.ID, "")
}
