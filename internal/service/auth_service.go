package service

import (
	"context"
	"errors"
	"time"

	"stockbook/internal/config"
	"stockbook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is deliberately uniform: a wrong username and a
// wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the result of a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Username    string `json:"username"`
}

// AuthService gates the app behind the single stored credential.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}

type authService struct {
	repo repository.AuthRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.AuthRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	cred, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoCredential) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistErr(err)
	}

	if username != cred.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"username": cred.Username,
		"exp":      time.Now().Add(expiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Username:    cred.Username,
	}, nil
}
