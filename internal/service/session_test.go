package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

func signSession(t *testing.T, secret, playerID string, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.StandardClaims{
		Subject:   playerID,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestSessionService(t *testing.T) {
	sessions := NewSessionService("secret")

	t.Run("Issued tokens parse back to the player", func(t *testing.T) {
		token, err := sessions.Issue("p1")
		require.NoError(t, err)

		session, err := sessions.Parse(token)

		require.NoError(t, err)
		assert.Equal(t, "p1", session.PlayerID)
		assert.Equal(t, SessionTTL, session.ExpiresAt.Sub(session.IssuedAt))
		assert.False(t, session.NeedsRenewal(time.Now()))
	})

	t.Run("Tokens signed with another key are rejected", func(t *testing.T) {
		token, err := NewSessionService("other").Issue("p1")
		require.NoError(t, err)

		_, err = sessions.Parse(token)

		require.ErrorIs(t, err, apperror.ErrInvalidSession)
	})

	t.Run("Recently expired tokens still parse for renewal", func(t *testing.T) {
		// Given: a token that expired an hour ago
		now := time.Now()
		token := signSession(t, "secret", "p1", now.Add(-SessionTTL-time.Hour), now.Add(-time.Hour))

		// When: it is parsed
		session, err := sessions.Parse(token)

		// Then: the player is kept and the session asks for a new token
		require.NoError(t, err)
		assert.Equal(t, "p1", session.PlayerID)
		assert.True(t, session.NeedsRenewal(now))
	})

	t.Run("Tokens expired beyond the grace period are rejected", func(t *testing.T) {
		now := time.Now()
		token := signSession(t, "secret", "p1", now.Add(-SessionTTL-SessionGrace-time.Hour), now.Add(-SessionGrace-time.Hour))

		_, err := sessions.Parse(token)

		require.ErrorIs(t, err, apperror.ErrInvalidSession)
	})

	t.Run("Expired tokens with a bad signature are rejected", func(t *testing.T) {
		now := time.Now()
		token := signSession(t, "other", "p1", now.Add(-SessionTTL-time.Hour), now.Add(-time.Hour))

		_, err := sessions.Parse(token)

		require.ErrorIs(t, err, apperror.ErrInvalidSession)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := sessions.Parse("not-a-token")

		require.ErrorIs(t, err, apperror.ErrInvalidSession)
	})
}

func TestSession_NeedsRenewal(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	session := &Session{PlayerID: "p1", IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(SessionTTL)}

	assert.False(t, session.NeedsRenewal(issuedAt.Add(time.Hour)))
	assert.False(t, session.NeedsRenewal(issuedAt.Add(SessionTTL/2-time.Second)))
	assert.True(t, session.NeedsRenewal(issuedAt.Add(SessionTTL/2)))
	assert.True(t, session.NeedsRenewal(issuedAt.Add(SessionTTL+time.Hour)))
}
