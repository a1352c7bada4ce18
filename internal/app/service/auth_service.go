package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"
	"inkwell/internal/platform/session"
)

// AuthService covers identity creation and the anonymous -> authenticated ->
// anonymous session life cycle.
type AuthService struct {
	userRepo   repository.UserRepository
	sessions   session.Store
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store, bcryptCost int) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions, bcryptCost: bcryptCost}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func validateUsername(username string) error {
	if l := len(username); l < 2 || l > 30 {
		return fmt.Errorf("username must be 2-30 characters: %w", common.ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address: %w", common.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", common.ErrValidation)
	}
	return nil
}

// Register creates a new user. The plaintext password is hashed immediately
// and never stored or logged. Duplicate usernames or emails surface as
// common.ErrConflict.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		AvatarFile:     model.DefaultAvatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate username/email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate looks a user up by email and verifies the password. An
// unknown email yields ErrNotFound, a wrong password ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// Login authenticates and opens a session. The remember flag selects the
// long-lived expiry horizon. Callers get a generic ErrUnauthorized whether
// the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, *session.Session, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrUnauthorized) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, err
	}
	sess, err := s.sessions.Create(ctx, user.ID, req.Remember)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return user, sess, nil
}

// Logout destroys the session. Unknown session IDs are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// Current resolves a session ID to the authenticated user. Expired or
// unknown sessions come back as ErrUnauthorized, leaving the caller
// anonymous.
func (s *AuthService) Current(ctx context.Context, sessionID string) (*model.User, error) {
	sess, err := s.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}
