package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

const (
	SessionTTL = 24 * time.Hour
	// SessionGrace - how long after expiry a token may still be exchanged for a new one.
	SessionGrace = 7 * 24 * time.Hour
)

// Session - the verified content of a session token.
type Session struct {
	PlayerID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NeedsRenewal - true once half of the token's lifetime has passed, expired tokens included.
func (that *Session) NeedsRenewal(now time.Time) bool {
	halfLife := that.ExpiresAt.Sub(that.IssuedAt) / 2
	return !now.Before(that.IssuedAt.Add(halfLife))
}

type SessionService interface {
	Issue(playerID string) (string, error)
	Parse(token string) (*Session, error)
}

type sessionService struct {
	secretKey []byte
	now       func() time.Time
}

func NewSessionService(secretKey string) SessionService {
	return &sessionService{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

// Issue - signs a session token for playerID.
func (that *sessionService) Issue(playerID string) (string, error) {
	now := that.now()

	claims := jwt.StandardClaims{
		Subject:   playerID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse - verifies the token and returns its session. Tokens that expired less
// than SessionGrace ago still parse so the caller can renew them.
func (that *sessionService) Parse(tokenString string) (*Session, error) {
	var claims jwt.StandardClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return that.secretKey, nil
	})
	if err != nil && !that.renewable(err, claims) {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSession, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperror.ErrInvalidSession)
	}

	return &Session{
		PlayerID:  claims.Subject,
		IssuedAt:  time.Unix(claims.IssuedAt, 0),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// renewable - the signature checked out and expiry is the only problem.
func (that *sessionService) renewable(err error, claims jwt.StandardClaims) bool {
	var validationErr *jwt.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Errors != jwt.ValidationErrorExpired {
		return false
	}

	return that.now().Before(time.Unix(claims.ExpiresAt, 0).Add(SessionGrace))
}
