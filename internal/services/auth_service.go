package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vocabulariojapones/backend/internal/models"
	"github.com/vocabulariojapones/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is filled in on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If a user with such username does not exist, repositories.ErrNotFound
	// will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If a user with such ID does not exist, repositories.ErrNotFound
	// will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionRepository is the interface that wraps methods for Session table data access
type SessionRepository interface {
	// Method Create inserts a new session into the database.
	Create(ctx context.Context, session *models.Session) error
	// Method GetByToken retrieves a session by token string.
	//
	// If a session with such token does not exist, repositories.ErrNotFound
	// will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// Method DeleteByToken deletes a session by token string.
	// Deleting a token that does not exist is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpired deletes all sessions that expired before "now"
	// and returns the number of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

const minPasswordLength = 6

// authService implements authentication and session management
type authService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Register creates a new user account and logs it in.
// Returns the created user and the session token for the cookie.
func (s *authService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("%w: username already taken", ErrAlreadyExists)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and creates a session.
// Unknown username and wrong password produce the same error, so a caller
// cannot probe which usernames exist.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout destroys the session behind the token. Logging out an already
// missing session succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// CurrentUser resolves the user behind a session token.
// Returns ErrNotFound when the session is absent or expired.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: session", ErrNotFound)
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired session rows are removed lazily on first use
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: session expired", ErrNotFound)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

// createSession stores a fresh session row and returns its opaque token
func (s *authService) createSession(ctx context.Context, userID int) (string, error) {
	// Opportunistic cleanup; a failure here must not block the login
	if _, err := s.sessionRepo.DeleteExpired(ctx, time.Now()); err != nil {
		s.logger.Warn("failed to purge expired sessions", zap.Error(err))
	}

	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return session.Token, nil
}
