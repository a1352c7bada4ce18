package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/common"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/model"
)

func newAccountFixture(t *testing.T) (*AccountService, *AuthService, *fakeUserRepo, *fakeMailer, *security.ResetTokens) {
	t.Helper()
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	tokens := security.NewResetTokens([]byte("test-secret"), 30*time.Minute)
	account := NewAccountService(users, tokens, mailer, bcrypt.MinCost, "http://localhost:8080/")
	auth := NewAuthService(users, nil, bcrypt.MinCost)
	return account, auth, users, mailer, tokens
}

func registerUser(t *testing.T, auth *AuthService, username, email, password string) *model.User {
	t.Helper()
	user, err := auth.Register(context.Background(), RegisterRequest{Username: username, Email: email, Password: password})
	require.NoError(t, err)
	return user
}

func TestAccountService_UpdateProfile_PartialFields(t *testing.T) {
	t.Parallel()

	account, auth, users, _, _ := newAccountFixture(t)
	ctx := context.Background()
	user := registerUser(t, auth, "alice", "a@x.com", "secret1")
	hashBefore := user.HashedPassword

	newEmail := "alice@x.com"
	updated, err := account.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username, "username untouched")
	assert.Equal(t, newEmail, updated.Email)

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hashBefore, stored.HashedPassword, "password never touched by profile update")
}

func TestAccountService_UpdateProfile_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	account, auth, _, _, _ := newAccountFixture(t)
	ctx := context.Background()
	registerUser(t, auth, "alice", "a@x.com", "secret1")
	bob := registerUser(t, auth, "bob", "b@x.com", "secret1")

	taken := "alice"
	_, err := account.UpdateProfile(ctx, bob.ID, UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestAccountService_UpdateProfile_Avatar(t *testing.T) {
	t.Parallel()

	account, auth, _, _, _ := newAccountFixture(t)
	ctx := context.Background()
	user := registerUser(t, auth, "alice", "a@x.com", "secret1")

	avatar := "3f2a9c.png"
	updated, err := account.UpdateProfile(ctx, user.ID, UpdateProfileRequest{AvatarFile: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.AvatarFile)
}

func TestAccountService_ChangePassword(t *testing.T) {
	t.Parallel()

	account, auth, _, _, _ := newAccountFixture(t)
	ctx := context.Background()
	user := registerUser(t, auth, "alice", "a@x.com", "secret1")

	err := account.ChangePassword(ctx, user.ID, "wrongpass", "newsecret")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	require.NoError(t, account.ChangePassword(ctx, user.ID, "secret1", "newsecret"))

	_, err = auth.Authenticate(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	_, err = auth.Authenticate(ctx, "a@x.com", "newsecret")
	assert.NoError(t, err)
}

func TestAccountService_PasswordResetFlow(t *testing.T) {
	t.Parallel()

	account, auth, _, mailer, tokens := newAccountFixture(t)
	ctx := context.Background()
	user := registerUser(t, auth, "alice", "a@x.com", "secret1")

	require.NoError(t, account.RequestPasswordReset(ctx, "a@x.com"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@x.com", mailer.sent[0].To)

	// The mail body carries the reset link; the token is its last segment.
	body := mailer.sent[0].Body
	idx := strings.Index(body, "/reset_password/")
	require.GreaterOrEqual(t, idx, 0)
	token := strings.Fields(body[idx+len("/reset_password/"):])[0]

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	require.NoError(t, account.ResetPassword(ctx, token, "resetpass"))

	_, err = auth.Authenticate(ctx, "a@x.com", "resetpass")
	assert.NoError(t, err)
	_, err = auth.Authenticate(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAccountService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	account, _, _, mailer, _ := newAccountFixture(t)

	// No account enumeration: unknown addresses succeed without sending.
	require.NoError(t, account.RequestPasswordReset(context.Background(), "nobody@x.com"))
	assert.Empty(t, mailer.sent)
}

func TestAccountService_ResetPassword_InvalidToken(t *testing.T) {
	t.Parallel()

	account, auth, _, _, tokens := newAccountFixture(t)
	ctx := context.Background()
	user := registerUser(t, auth, "alice", "a@x.com", "secret1")

	err := account.ResetPassword(ctx, "garbage-token", "resetpass")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	expired, err := tokens.IssueWithTTL(user.ID, -time.Second)
	require.NoError(t, err)
	err = account.ResetPassword(ctx, expired, "resetpass")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	// Old password still works after the rejected attempts.
	_, err = auth.Authenticate(ctx, "a@x.com", "secret1")
	assert.NoError(t, err)
}
