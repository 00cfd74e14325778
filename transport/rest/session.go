package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
)

const (
	SessionCookieName = "player_session"
	// the cookie outlives the token so expired sessions can still be renewed
	sessionMaxAge = service.SessionTTL + service.SessionGrace
)

type playerCtxKey struct{}

// PlayerFromContext - returns the player resolved by WithSession.
func PlayerFromContext(ctx context.Context) (*entity.Player, bool) {
	player, ok := ctx.Value(playerCtxKey{}).(*entity.Player)
	return player, ok
}

// WithSession - resolves the caller's player from the session cookie. Callers
// without a valid session get a new player and a new cookie.
func (that *Server) WithSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		player, err := that.sessionPlayer(w, r)
		if err != nil {
			that.logger.Error("failed to resolve session", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to resolve session")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), playerCtxKey{}, player)), ps)
	}
}

func (that *Server) sessionPlayer(w http.ResponseWriter, r *http.Request) (*entity.Player, error) {
	log := that.logger.With("method", "sessionPlayer")
	ctx := r.Context()

	var current *service.Session
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		current, err = that.sessions.Parse(cookie.Value)
		if err != nil {
			log.Debug("session cookie rejected", "error", err)
		}
	}

	var playerID string
	if current != nil {
		playerID = current.PlayerID
	}

	player, err := that.players.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.ID != playerID {
		if err = that.setSession(w, player.ID); err != nil {
			return nil, err
		}

		log.Info("new session", "playerID", player.ID)

		return player, nil
	}

	if err = that.players.Touch(ctx, player); err != nil {
		log.Warn("failed to touch player", "playerID", player.ID, "error", err)
	}

	if current.NeedsRenewal(time.Now()) {
		if err = that.setSession(w, player.ID); err != nil {
			log.Warn("failed to renew session", "playerID", player.ID, "error", err)
		}
	}

	return player, nil
}

func (that *Server) setSession(w http.ResponseWriter, playerID string) error {
	token, err := that.sessions.Issue(playerID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
