package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"
	"adventureworks/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// AuthService handles account creation, sign-in (password and Google)
// and session-token issue/verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	googleAud string
	tokenTTL  time.Duration

	// verifyIDToken is swappable so tests can stub Google verification.
	verifyIDToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewAuthService creates a new AuthService. googleClientID is the
// expected audience of incoming Google ID tokens; empty skips the
// audience check.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, googleClientID string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		googleAud:     googleClientID,
		tokenTTL:      7 * 24 * time.Hour,
		verifyIDToken: idtoken.Validate,
	}
}

// SignUp creates an account, hashes the password, and issues a session
// token. The first account ever created is granted admin rights.
func (s *AuthService) SignUp(email, password, name string) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("signup %s: %w", email, apperrors.ErrEmailTaken)
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, "", fmt.Errorf("failed to count users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Hash:      string(hash),
		IsAdmin:   count == 0,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn authenticates by email and password and issues a session
// token. Every failure mode reports the same invalid-credentials error.
func (s *AuthService) SignIn(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if user.Hash == "" {
		// Google-provisioned accounts have no password.
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignInWithGoogle verifies a Google ID token, fetches or creates the
// matching account, and issues a session token. Accounts created this
// way carry no password hash and are never admins.
func (s *AuthService) SignInWithGoogle(ctx context.Context, rawIDToken string) (*models.User, string, error) {
	payload, err := s.verifyIDToken(ctx, rawIDToken, s.googleAud)
	if err != nil {
		log.Printf("Google ID token verification failed: %v", err)
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrGoogleVerification, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", apperrors.ErrTokenNoEmail
	}
	name, _ := payload.Claims["name"].(string)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", err
		}
		user = &models.User{
			ID:        uuid.New().String(),
			Email:     email,
			Name:      name,
			Provider:  "google",
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUserByID retrieves an account by its ID.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers returns every account. Hashes are stripped at the JSON
// boundary by the model's field tags.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// DeleteUser removes a non-admin account. Admin accounts can never be
// deleted through this operation.
func (s *AuthService) DeleteUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("delete %s: %w", id, apperrors.ErrUserNotFound)
		}
		return err
	}
	if user.IsAdmin {
		return fmt.Errorf("delete %s: %w", id, apperrors.ErrAdminUndeletable)
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

// issueToken signs a session token binding the account's ID and email,
// valid for seven days.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token, returning the
// subject ID and email it binds.
func (s *AuthService) ValidateToken(tokenString string) (sub, email string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	sub, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if sub == "" {
		return "", "", errors.New("invalid token: missing subject")
	}
	return sub, email, nil
}
