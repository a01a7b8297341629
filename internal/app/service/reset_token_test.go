package service

import (
	"strings"
	"testing"
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokenGenerator(timeout time.Duration) (*ResetTokenGenerator, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)}
	g := NewResetTokenGenerator("test-secret", timeout)
	g.now = clock.Now
	return g, clock
}

func tokenUser() *model.User {
	return &model.User{
		ID:           7,
		Username:     "u1",
		Email:        "u1@example.com",
		PasswordHash: "$2a$04$oldhash",
	}
}

func TestResetTokenGenerator_RoundTrip(t *testing.T) {
	g, _ := newTestTokenGenerator(DefaultResetTokenTimeout)
	user := tokenUser()

	token := g.MakeToken(user)

	parts := strings.Split(token, "-")
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 32)
	assert.True(t, g.CheckToken(user, token))
	assert.Equal(t, token, g.MakeToken(user), "tokens are deterministic within a second")
}

func TestResetTokenGenerator_InvalidatedByStateChange(t *testing.T) {
	g, _ := newTestTokenGenerator(DefaultResetTokenTimeout)

	tests := []struct {
		name   string
		mutate func(u *model.User)
	}{
		{name: "password hash changed", mutate: func(u *model.User) { u.PasswordHash = "$2a$04$newhash" }},
		{name: "logged in since", mutate: func(u *model.User) {
			at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
			u.LastLogin = &at
		}},
		{name: "email changed", mutate: func(u *model.User) { u.Email = "other@example.com" }},
		{name: "different user", mutate: func(u *model.User) { u.ID = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tokenUser()
			token := g.MakeToken(user)
			tt.mutate(user)
			assert.False(t, g.CheckToken(user, token))
		})
	}
}

func TestResetTokenGenerator_EmailCaseDoesNotMatter(t *testing.T) {
	g, _ := newTestTokenGenerator(DefaultResetTokenTimeout)
	user := tokenUser()
	token := g.MakeToken(user)

	user.Email = "U1@Example.COM"
	assert.True(t, g.CheckToken(user, token))
}

func TestResetTokenGenerator_Expiry(t *testing.T) {
	g, clock := newTestTokenGenerator(time.Hour)
	user := tokenUser()
	token := g.MakeToken(user)

	clock.Advance(time.Hour)
	assert.True(t, g.CheckToken(user, token), "valid at the edge of the window")

	clock.Advance(time.Second)
	assert.False(t, g.CheckToken(user, token))
}

func TestResetTokenGenerator_RejectsFutureTimestamp(t *testing.T) {
	g, clock := newTestTokenGenerator(DefaultResetTokenTimeout)
	user := tokenUser()
	token := g.MakeToken(user)

	clock.Advance(-time.Minute)
	assert.False(t, g.CheckToken(user, token))
}

func TestResetTokenGenerator_ForeignSecret(t *testing.T) {
	g, clock := newTestTokenGenerator(DefaultResetTokenTimeout)
	other := NewResetTokenGenerator("another-secret", DefaultResetTokenTimeout)
	other.now = clock.Now

	user := tokenUser()
	assert.False(t, g.CheckToken(user, other.MakeToken(user)))
}

func TestResetTokenGenerator_Malformed(t *testing.T) {
	g, _ := newTestTokenGenerator(DefaultResetTokenTimeout)
	user := tokenUser()
	valid := g.MakeToken(user)
	ts, mac, _ := strings.Cut(valid, "-")

	tests := []struct {
		name  string
		user  *model.User
		token string
	}{
		{name: "nil user", user: nil, token: valid},
		{name: "empty", user: user, token: ""},
		{name: "no separator", user: user, token: ts + mac},
		{name: "empty timestamp", user: user, token: "-" + mac},
		{name: "empty mac", user: user, token: ts + "-"},
		{name: "bad base36", user: user, token: "!!-" + mac},
		{name: "negative timestamp", user: user, token: "-1-" + mac},
		{name: "extra segment", user: user, token: valid + "-abc"},
		{name: "truncated mac", user: user, token: ts + "-" + mac[:10]},
		{name: "flipped mac", user: user, token: ts + "-" + strings.Repeat("0", len(mac))},
		{name: "huge timestamp", user: user, token: "zzzzzzzzzzzzzzzzzzzz-" + mac},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, g.CheckToken(tt.user, tt.token))
			})
		})
	}
}

func TestNewResetTokenGenerator_DefaultTimeout(t *testing.T) {
	g := NewResetTokenGenerator("s", 0)
	assert.Equal(t, DefaultResetTokenTimeout, g.Timeout())
}
