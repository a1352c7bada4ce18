package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"
	"inkwell/internal/platform/mail"
)

// AccountService handles profile maintenance and the password-reset flow.
type AccountService struct {
	userRepo    repository.UserRepository
	resetTokens *security.ResetTokens
	mailer      mail.Mailer
	bcryptCost  int
	baseURL     string
}

func NewAccountService(
	userRepo repository.UserRepository,
	resetTokens *security.ResetTokens,
	mailer mail.Mailer,
	bcryptCost int,
	baseURL string,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		mailer:      mailer,
		bcryptCost:  bcryptCost,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

type UpdateProfileRequest struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	AvatarFile *string `json:"-"`
}

// UpdateProfile applies only the provided fields. The password is never
// touched here.
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.AvatarFile != nil {
		user.AvatarFile = *req.AvatarFile
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword rewrites the stored hash after verifying the current
// password.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.CheckPasswordHash(current, user.HashedPassword) {
		return common.ErrUnauthorized
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := security.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// RequestPasswordReset emails a time-limited reset link. Unknown addresses
// are not reported back to the caller, so the endpoint cannot be used to
// probe which emails have accounts. Delivery is fire-and-forget.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := s.resetTokens.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	body := fmt.Sprintf(`To reset your password, visit the following link:
%s/reset_password/%s

If you did not request a password reset, ignore this message and no changes will be made to your account.
`, s.baseURL, token)

	if err := s.mailer.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		// Not retried; the user can request another link.
		log.Printf("failed to send reset mail: %v", err)
	}
	return nil
}

// ResetPassword verifies the token and replaces the stored hash. The token
// itself is not revoked afterwards; it simply expires.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.resetTokens.Verify(token)
	if err != nil {
		return common.ErrInvalidToken
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := security.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidToken
		}
		return err
	}
	return nil
}
