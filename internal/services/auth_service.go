package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donation-api/internal/models"
	"donation-api/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
)

// AuthService handles registration, login and bearer token verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. Tokens live for tokenTTL, or 24
// hours when tokenTTL is not positive.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// RegisterUser creates an ordinary user. The email must not belong to any
// existing user, deactivated ones included.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.createUser(ctx, name, email, password, models.RoleOrdinary)
}

// EnsureAdmin creates an admin account for email unless a user with that
// email already exists. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := s.createUser(ctx, name, email, password, models.RoleAdmin)
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email '%s' already registered", ErrConflict, email)
	}
	if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: email '%s' already registered", ErrConflict, email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates an active user and returns a signed JWT.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetActiveByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if !passwordMatches(user.Password, password) {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT and returns the caller it identifies.
func (s *AuthService) ValidateToken(tokenString string) (models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return models.Principal{}, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID < 1 {
		return models.Principal{}, fmt.Errorf("%w: invalid token: missing user_id", ErrUnauthorized)
	}
	role, _ := claims["role"].(string)

	return models.Principal{UserID: uint(userID), Role: models.Role(role)}, nil
}

// Authenticate validates a bearer token and confirms that the account it
// names is still active. Tokens outlive deactivation, so this is what keeps a
// deactivated user from acting until the token expires.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (models.Principal, error) {
	principal, err := s.ValidateToken(tokenString)
	if err != nil {
		return models.Principal{}, err
	}
	if _, err := s.userRepo.GetActiveByID(ctx, principal.UserID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return models.Principal{}, fmt.Errorf("%w: account %d is not active", ErrUnauthorized, principal.UserID)
		}
		return models.Principal{}, err
	}
	return principal, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
