package security

import (
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"inkwell/internal/common"
)

// DefaultResetTTL is the validity horizon of an emailed reset link.
const DefaultResetTTL = 30 * time.Minute

// ResetTokens issues and verifies signed, time-limited password-reset tokens.
// Verification is stateless: nothing is stored server-side, so a token stays
// verifiable until its expiry regardless of how often it is checked.
type ResetTokens struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

func NewResetTokens(secret []byte, ttl time.Duration) *ResetTokens {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &ResetTokens{
		tokenAuth: jwtauth.New("HS256", secret, nil),
		ttl:       ttl,
	}
}

// Issue returns a token authorizing a password reset for the given user,
// expiring after the configured default TTL.
func (r *ResetTokens) Issue(userID int64) (string, error) {
	return r.IssueWithTTL(userID, r.ttl)
}

func (r *ResetTokens) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	_, tokenString, err := r.tokenAuth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry and returns the user id the token was
// issued for. Expired and tampered tokens both come back as ErrInvalidToken;
// callers cannot tell the two apart.
func (r *ResetTokens) Verify(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(r.tokenAuth, tokenString)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	raw, ok := token.Get("uid")
	if !ok {
		return 0, common.ErrInvalidToken
	}
	uid, ok := raw.(string)
	if !ok {
		return 0, common.ErrInvalidToken
	}
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}
