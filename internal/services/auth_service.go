package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rishanreddy/habitmind/internal/auth"
	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/repository"
	"github.com/rishanreddy/habitmind/internal/storage"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrNameRequired         = errors.New("name is required")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrInvalidImage         = errors.New("file must be an image")
	ErrImageTooLarge        = errors.New("image too large")
)

const avatarURLTTL = time.Hour

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	storage   storage.ObjectStorage
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// WithStorage enables avatar uploads.
func (s *AuthService) WithStorage(store storage.ObjectStorage) *AuthService {
	s.storage = store
	return s
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Signup creates a new user.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(input.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// IssueToken returns a signed bearer token for the user.
func (s *AuthService) IssueToken(userID string) (string, time.Time, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, time.Now().Add(s.tokenTTL), nil
}

// ParseToken returns the user id carried by a bearer token.
func (s *AuthService) ParseToken(token string) (string, error) {
	return auth.UserIDFromToken(token, s.jwtSecret)
}

// AvatarUpload describes an uploaded profile image.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SetAvatar stores a new profile image for the user.
func (s *AuthService) SetAvatar(ctx context.Context, userID string, upload AvatarUpload) (*models.User, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, ErrInvalidImage
	}
	if upload.Size > constants.MaxAvatarBytes {
		return nil, ErrImageTooLarge
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := storage.AvatarKey(userID, upload.Filename)
	if err := s.storage.Put(ctx, key, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user.ImageKey = key
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// AvatarURL returns a short-lived URL for the user's profile image, or an
// empty string when there is none.
func (s *AuthService) AvatarURL(ctx context.Context, user *models.User) string {
	if s.storage == nil || user.ImageKey == "" {
		return ""
	}
	url, err := s.storage.PresignGet(ctx, user.ImageKey, avatarURLTTL)
	if err != nil {
		logger.Warn("Failed to presign avatar URL", "user", user.ID, "key", user.ImageKey, "err", err)
		return ""
	}
	return url
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
