package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
)

const (
	// DefaultResetTokenTimeout is how long a reset link stays valid.
	DefaultResetTokenTimeout = 72 * time.Hour

	resetTokenKeySalt = "learnhub.password-reset.token"
	resetTokenMACLen  = 16 // bytes of the MAC kept in the token
)

// resetTokenEpoch keeps timestamps short in base 36.
var resetTokenEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// ResetTokenGenerator mints and checks stateless password reset tokens.
//
// A token is "<timestamp base36>-<hex MAC>". The MAC covers the user ID, the current
// password hash, the last login time, the timestamp and the email, so the token stops
// verifying as soon as any of them changes. Nothing is stored server side.
type ResetTokenGenerator struct {
	key     []byte
	timeout time.Duration
	now     func() time.Time
}

func NewResetTokenGenerator(secret string, timeout time.Duration) *ResetTokenGenerator {
	if timeout <= 0 {
		timeout = DefaultResetTokenTimeout
	}
	key := sha256.Sum256([]byte(resetTokenKeySalt + secret))
	return &ResetTokenGenerator{
		key:     key[:],
		timeout: timeout,
		now:     time.Now,
	}
}

// Timeout reports the validity window of issued tokens.
func (g *ResetTokenGenerator) Timeout() time.Duration {
	return g.timeout
}

// MakeToken returns a token for the user's current state.
func (g *ResetTokenGenerator) MakeToken(user *model.User) string {
	return g.makeTokenWithTimestamp(user, g.secondsSinceEpoch(g.now()))
}

// CheckToken reports whether token was issued for user in its current state and
// has not expired. It never fails loudly; every problem is just false.
func (g *ResetTokenGenerator) CheckToken(user *model.User, token string) bool {
	if user == nil || token == "" {
		return false
	}

	tsPart, macPart, ok := strings.Cut(token, "-")
	if !ok || tsPart == "" || macPart == "" || strings.Contains(macPart, "-") {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil || ts < 0 {
		return false
	}

	expected := g.makeTokenWithTimestamp(user, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return false
	}

	now := g.secondsSinceEpoch(g.now())
	if ts > now {
		return false
	}
	return now-ts <= int64(g.timeout/time.Second)
}

func (g *ResetTokenGenerator) makeTokenWithTimestamp(user *model.User, ts int64) string {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(g.hashValue(user, ts)))
	sum := mac.Sum(nil)
	return strconv.FormatInt(ts, 36) + "-" + hex.EncodeToString(sum[:resetTokenMACLen])
}

func (g *ResetTokenGenerator) hashValue(user *model.User, ts int64) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = strconv.FormatInt(user.LastLogin.UTC().Unix(), 10)
	}

	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(user.ID), 10))
	b.WriteByte('|')
	b.WriteString(user.PasswordHash)
	b.WriteByte('|')
	b.WriteString(lastLogin)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(ts, 10))
	b.WriteByte('|')
	b.WriteString(model.NormalizeEmail(user.Email))
	return b.String()
}

func (g *ResetTokenGenerator) secondsSinceEpoch(t time.Time) int64 {
	return int64(t.Sub(resetTokenEpoch) / time.Second)
}
